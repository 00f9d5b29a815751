package recognition

import (
	"fmt"

	"github.com/ironsheep/sudoku-vision/internal/detection"
	"github.com/ironsheep/sudoku-vision/internal/imaging"
)

// Config holds the tunable parameters of every recognition stage.
//
// The defaults were tuned on roughly 450 pixel photos of printed puzzles
// under even lighting. Other capture conditions usually need different
// threshold and size windows rather than code changes.
type Config struct {
	// Binarization
	BlurRadius float64 `mapstructure:"blur_radius" json:"blur_radius"`
	BlockSize  int     `mapstructure:"block_size" json:"block_size"`
	ThresholdC int     `mapstructure:"threshold_c" json:"threshold_c"`

	// Line suppression
	MorphKernelWidth   int `mapstructure:"morph_kernel_width" json:"morph_kernel_width"`
	MorphIterations    int `mapstructure:"morph_iterations" json:"morph_iterations"`
	HoughThreshold     int `mapstructure:"hough_threshold" json:"hough_threshold"`
	HoughMinLineLength int `mapstructure:"hough_min_line_length" json:"hough_min_line_length"`
	HoughMaxLineGap    int `mapstructure:"hough_max_line_gap" json:"hough_max_line_gap"`
	LineStrokeWidth    int `mapstructure:"line_stroke_width" json:"line_stroke_width"`

	// Cell window, exclusive bounds
	CellMinWidth  int `mapstructure:"cell_min_width" json:"cell_min_width"`
	CellMaxWidth  int `mapstructure:"cell_max_width" json:"cell_max_width"`
	CellMinHeight int `mapstructure:"cell_min_height" json:"cell_min_height"`
	CellMaxHeight int `mapstructure:"cell_max_height" json:"cell_max_height"`

	// Glyph window, exclusive bounds
	GlyphMinWidth  int `mapstructure:"glyph_min_width" json:"glyph_min_width"`
	GlyphMinHeight int `mapstructure:"glyph_min_height" json:"glyph_min_height"`
	GlyphMaxHeight int `mapstructure:"glyph_max_height" json:"glyph_max_height"`

	// Classification
	K       int `mapstructure:"k" json:"k"`
	Workers int `mapstructure:"workers" json:"workers"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		BlurRadius: 1,
		BlockSize:  11,
		ThresholdC: 2,

		MorphKernelWidth:   11,
		MorphIterations:    2,
		HoughThreshold:     106,
		HoughMinLineLength: 80,
		HoughMaxLineGap:    10,
		LineStrokeWidth:    3,

		CellMinWidth:  30,
		CellMaxWidth:  70,
		CellMinHeight: 30,
		CellMaxHeight: 60,

		GlyphMinWidth:  7,
		GlyphMinHeight: 10,
		GlyphMaxHeight: 42,

		K:       3,
		Workers: 0,
	}
}

// Validate reports the first parameter that cannot work.
func (c Config) Validate() error {
	switch {
	case c.BlockSize < 3:
		return fmt.Errorf("block_size must be at least 3, got %d", c.BlockSize)
	case c.BlurRadius < 0:
		return fmt.Errorf("blur_radius must not be negative, got %g", c.BlurRadius)
	case c.MorphKernelWidth < 1 || c.MorphIterations < 1:
		return fmt.Errorf("morphology kernel %d×%d iterations is empty", c.MorphKernelWidth, c.MorphIterations)
	case c.HoughThreshold < 1:
		return fmt.Errorf("hough_threshold must be positive, got %d", c.HoughThreshold)
	case c.LineStrokeWidth < 1:
		return fmt.Errorf("line_stroke_width must be positive, got %d", c.LineStrokeWidth)
	case c.CellMinWidth >= c.CellMaxWidth || c.CellMinHeight >= c.CellMaxHeight:
		return fmt.Errorf("cell size window is empty")
	case c.GlyphMinHeight >= c.GlyphMaxHeight:
		return fmt.Errorf("glyph height window is empty")
	case c.K < 1:
		return fmt.Errorf("k must be positive, got %d", c.K)
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// BinarizeOptions returns the thresholding parameters.
func (c Config) BinarizeOptions() imaging.BinarizeOptions {
	return imaging.BinarizeOptions{
		BlurRadius: c.BlurRadius,
		BlockSize:  c.BlockSize,
		C:          c.ThresholdC,
	}
}

// HoughParams returns the line detector parameters.
func (c Config) HoughParams() detection.HoughParams {
	return detection.HoughParams{
		Threshold:     c.HoughThreshold,
		MinLineLength: c.HoughMinLineLength,
		MaxLineGap:    c.HoughMaxLineGap,
	}
}
