package recognition

import (
	"image"

	"github.com/ironsheep/sudoku-vision/internal/detection"
	"github.com/ironsheep/sudoku-vision/internal/imaging"
)

// LineSuppressor erases printed grid lines from a cropped binary puzzle
// while leaving digit strokes intact.
type LineSuppressor interface {
	Suppress(crop *image.Gray) *image.Gray
}

// MorphologySuppressor removes lines in two passes. A horizontal opening
// isolates long horizontal runs, which are subtracted; Hough segments
// found in what remains are then painted over with background.
type MorphologySuppressor struct {
	KernelWidth int
	Iterations  int
	Hough       detection.HoughParams
	StrokeWidth int
}

// NewMorphologySuppressor configures the suppressor from cfg.
func NewMorphologySuppressor(cfg Config) *MorphologySuppressor {
	return &MorphologySuppressor{
		KernelWidth: cfg.MorphKernelWidth,
		Iterations:  cfg.MorphIterations,
		Hough:       cfg.HoughParams(),
		StrokeWidth: cfg.LineStrokeWidth,
	}
}

// Suppress returns a new image; crop is not modified.
func (s *MorphologySuppressor) Suppress(crop *image.Gray) *image.Gray {
	lines := imaging.OpenHorizontal(crop, s.KernelWidth, s.Iterations)
	out := imaging.Subtract(crop, lines)

	for _, seg := range detection.DetectSegments(out, s.Hough) {
		imaging.DrawLine(out, seg.Start, seg.End, s.StrokeWidth, imaging.Background)
	}
	return out
}
