// Package glyph defines the canonical digit raster shared by the extractor,
// the classifiers and the training-set adapters.
package glyph

import (
	"image"

	"github.com/ironsheep/sudoku-vision/internal/detection"
)

// Size is the side of the canonical glyph canvas.
const Size = 28

// Glyph is a Size×Size raster believed to depict a single digit, together
// with the box it was cut from.
type Glyph struct {
	// Pix holds Size*Size intensities in row-major order.
	Pix []uint8

	// Source is the region of the cropped puzzle the glyph came from.
	Source detection.BoundingBox
}

// Sample is a labelled glyph used to train a classifier.
type Sample struct {
	Glyph Glyph
	Label int
}

// Normalize copies the box region of img into a new Size×Size canvas.
//
// Regions larger than the canvas are clipped, keeping their top-left part.
// Smaller regions are centred with an offset of (Size-w)/2 on each axis,
// rounded down. Pixels of the box outside img read as 0. Normalizing a
// region that is already Size×Size reproduces it unchanged.
func Normalize(img *image.Gray, box detection.BoundingBox) Glyph {
	g := Glyph{Pix: make([]uint8, Size*Size), Source: box}
	if !box.Valid() {
		return g
	}

	w := min(box.Width, Size)
	h := min(box.Height, Size)
	xStart := (Size - w) / 2
	yStart := (Size - h) / 2
	bounds := img.Bounds()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := image.Point{X: box.X + x, Y: box.Y + y}
			if !p.In(bounds) {
				continue
			}
			g.Pix[(yStart+y)*Size+xStart+x] = img.Pix[img.PixOffset(p.X, p.Y)]
		}
	}

	return g
}

// Image returns the glyph raster as a grayscale image.
func (g Glyph) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, Size, Size))
	copy(img.Pix, g.Pix)
	return img
}

// Vector returns the raster flattened into float64 values, the feature
// space used by the nearest-neighbour classifier.
func (g Glyph) Vector() []float64 {
	v := make([]float64, len(g.Pix))
	for i, p := range g.Pix {
		v[i] = float64(p)
	}
	return v
}

// Extract normalizes every box of img into a glyph, preserving order.
func Extract(img *image.Gray, boxes []detection.BoundingBox) []Glyph {
	glyphs := make([]Glyph, 0, len(boxes))
	for _, b := range boxes {
		glyphs = append(glyphs, Normalize(img, b))
	}
	return glyphs
}
