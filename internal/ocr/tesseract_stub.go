//go:build !tesseract

package ocr

import "github.com/ironsheep/sudoku-vision/internal/glyph"

// Ready always fails without the tesseract build tag.
func (c *Classifier) Ready() error {
	return ErrUnavailable
}

// Predict always fails without the tesseract build tag.
func (c *Classifier) Predict(glyph.Glyph) (int, error) {
	return 0, ErrUnavailable
}
