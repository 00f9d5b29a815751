// Package config loads runtime settings from defaults, an optional config
// file and SUDOKU_* environment variables, in increasing precedence.
//
// Nested keys map to environment variables with dots replaced by
// underscores: recognition.block_size is SUDOKU_RECOGNITION_BLOCK_SIZE.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/sudoku-vision/internal/recognition"
	"github.com/ironsheep/sudoku-vision/internal/synth"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "SUDOKU"

// Classifier backends.
const (
	ClassifierKNN       = "knn"
	ClassifierTesseract = "tesseract"
)

// Config is the full runtime configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Classifier selects the digit classifier backend.
	Classifier string `mapstructure:"classifier"`

	// DatasetDir holds labelled glyph scans for the kNN classifier. When
	// empty, digits rendered with the built-in font are used instead.
	DatasetDir string `mapstructure:"dataset_dir"`

	// FontSize of the built-in rendered training digits.
	FontSize float64 `mapstructure:"font_size"`

	// Listen is the HTTP service address.
	Listen string `mapstructure:"listen"`

	Tesseract   TesseractConfig    `mapstructure:"tesseract"`
	Recognition recognition.Config `mapstructure:"recognition"`
}

// TesseractConfig configures the Tesseract classifier.
type TesseractConfig struct {
	Language       string `mapstructure:"language"`
	TessdataPrefix string `mapstructure:"tessdata_prefix"`
}

// Load reads the configuration. path may be empty; otherwise the file must
// exist and its format is taken from the extension (yaml, json, toml...).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Classifier {
	case ClassifierKNN, ClassifierTesseract:
	default:
		return fmt.Errorf("unknown classifier %q (want %q or %q)", c.Classifier, ClassifierKNN, ClassifierTesseract)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %g", c.FontSize)
	}
	if err := c.Recognition.Validate(); err != nil {
		return fmt.Errorf("invalid recognition config: %w", err)
	}
	return nil
}

// setDefaults registers every key, which also makes AutomaticEnv see the
// nested ones during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("classifier", ClassifierKNN)
	v.SetDefault("dataset_dir", "")
	v.SetDefault("font_size", synth.DefaultFontSize)
	v.SetDefault("listen", ":8000")
	v.SetDefault("tesseract.language", "eng")
	v.SetDefault("tesseract.tessdata_prefix", "")

	r := recognition.DefaultConfig()
	v.SetDefault("recognition.blur_radius", r.BlurRadius)
	v.SetDefault("recognition.block_size", r.BlockSize)
	v.SetDefault("recognition.threshold_c", r.ThresholdC)
	v.SetDefault("recognition.morph_kernel_width", r.MorphKernelWidth)
	v.SetDefault("recognition.morph_iterations", r.MorphIterations)
	v.SetDefault("recognition.hough_threshold", r.HoughThreshold)
	v.SetDefault("recognition.hough_min_line_length", r.HoughMinLineLength)
	v.SetDefault("recognition.hough_max_line_gap", r.HoughMaxLineGap)
	v.SetDefault("recognition.line_stroke_width", r.LineStrokeWidth)
	v.SetDefault("recognition.cell_min_width", r.CellMinWidth)
	v.SetDefault("recognition.cell_max_width", r.CellMaxWidth)
	v.SetDefault("recognition.cell_min_height", r.CellMinHeight)
	v.SetDefault("recognition.cell_max_height", r.CellMaxHeight)
	v.SetDefault("recognition.glyph_min_width", r.GlyphMinWidth)
	v.SetDefault("recognition.glyph_min_height", r.GlyphMinHeight)
	v.SetDefault("recognition.glyph_max_height", r.GlyphMaxHeight)
	v.SetDefault("recognition.k", r.K)
	v.SetDefault("recognition.workers", r.Workers)
}
