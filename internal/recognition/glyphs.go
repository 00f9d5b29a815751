package recognition

import (
	"image"

	"github.com/ironsheep/sudoku-vision/internal/detection"
	"github.com/ironsheep/sudoku-vision/internal/glyph"
)

// GlyphExtractor finds digit candidates in the line-suppressed crop and
// cuts them from a reference image of the same geometry.
type GlyphExtractor interface {
	Extract(suppressed, reference *image.Gray) []glyph.Glyph
}

// ContourGlyphExtractor keeps external contours whose box is wider than
// MinWidth and whose height lies strictly between MinHeight and MaxHeight.
// Anything else is noise or a line remnant and is dropped silently.
type ContourGlyphExtractor struct {
	MinWidth  int
	MinHeight int
	MaxHeight int
}

// NewContourGlyphExtractor configures the extractor from cfg.
func NewContourGlyphExtractor(cfg Config) *ContourGlyphExtractor {
	return &ContourGlyphExtractor{
		MinWidth:  cfg.GlyphMinWidth,
		MinHeight: cfg.GlyphMinHeight,
		MaxHeight: cfg.GlyphMaxHeight,
	}
}

// Extract normalizes every accepted box of suppressed, reading pixels from
// reference so that strokes clipped by line suppression are restored.
func (e *ContourGlyphExtractor) Extract(suppressed, reference *image.Gray) []glyph.Glyph {
	boxes := make([]detection.BoundingBox, 0)
	for _, c := range detection.FindExternalContours(suppressed) {
		b := c.Box
		if b.Width > e.MinWidth && b.Height > e.MinHeight && b.Height < e.MaxHeight {
			boxes = append(boxes, b)
		}
	}
	return glyph.Extract(reference, boxes)
}
