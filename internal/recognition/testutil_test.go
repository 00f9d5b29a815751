package recognition

import (
	"errors"
	"image"

	"github.com/ironsheep/sudoku-vision/internal/detection"
	"github.com/ironsheep/sudoku-vision/internal/glyph"
)

// newBinary returns an all-background binary image.
func newBinary(w, h int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, w, h))
}

// fillRect sets every pixel of r to v.
func fillRect(img *image.Gray, r image.Rectangle, v uint8) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[img.PixOffset(x, y)] = v
		}
	}
}

const (
	testPitch = 48
	testLine  = 3
)

// binaryGrid draws a foreground 9×9 grid whose outer lines touch the image
// edges, the shape of a cropped puzzle. Cells in filled are painted solid.
func binaryGrid(filled ...[2]int) *image.Gray {
	size := 9*testPitch + testLine
	img := newBinary(size, size)
	for k := 0; k <= 9; k++ {
		p := k * testPitch
		fillRect(img, image.Rect(p, 0, p+testLine, size), 255)
		fillRect(img, image.Rect(0, p, size, p+testLine), 255)
	}
	for _, rc := range filled {
		fillRect(img, testCellRect(rc[0], rc[1]), 255)
	}
	return img
}

// testCellRect is the paper interior of a binaryGrid cell.
func testCellRect(row, col int) image.Rectangle {
	x := col*testPitch + testLine
	y := row*testPitch + testLine
	return image.Rect(x, y, (col+1)*testPitch, (row+1)*testPitch)
}

// regularCells returns a CellGrid matching binaryGrid's geometry.
func regularCells() *CellGrid {
	var g CellGrid
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			g[r][c] = GridCell{Row: r, Col: c, Box: detection.BoxFromRect(testCellRect(r, c))}
		}
	}
	return &g
}

// glyphAt returns a glyph whose source box is r.
func glyphAt(r image.Rectangle) glyph.Glyph {
	return glyph.Glyph{Pix: make([]uint8, glyph.Size*glyph.Size), Source: detection.BoxFromRect(r)}
}

// constClassifier answers every prediction with digit.
type constClassifier struct {
	digit int
	ready error
	err   error
}

func (c constClassifier) Ready() error { return c.ready }

func (c constClassifier) Predict(glyph.Glyph) (int, error) {
	return c.digit, c.err
}

var errBoom = errors.New("boom")

func boxOf(w, h int) detection.BoundingBox {
	return detection.BoundingBox{Width: w, Height: h}
}
