// Package synth renders synthetic Sudoku photos and digit images.
//
// Digits are drawn with the Go Regular typeface at integer pixel positions,
// so the same digit rendered twice with the same face produces identical
// ink regardless of where it is placed. Tests and the built-in training set
// rely on that property.
package synth

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize renders digits roughly half as tall as a default cell.
const DefaultFontSize = 32

// NewFace returns a Go Regular face of the given size in points at 72 DPI,
// so one point is one pixel.
func NewFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go Regular: %w", err)
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// InkBounds returns the pixel bounds of a digit's ink relative to the dot.
func InkBounds(face font.Face, digit int) image.Rectangle {
	b, _ := font.BoundString(face, strconv.Itoa(digit))
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
}

// DrawDigit draws digit in black with its ink box centred on center.
func DrawDigit(dst draw.Image, face font.Face, digit int, center image.Point) {
	ink := InkBounds(face, digit)
	dot := image.Point{
		X: center.X - (ink.Min.X+ink.Max.X)/2,
		Y: center.Y - (ink.Min.Y+ink.Max.Y)/2,
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	d.DrawString(strconv.Itoa(digit))
}

// DigitImage renders a single black digit on white paper with margin
// pixels of paper around its ink box.
func DigitImage(face font.Face, digit, margin int) *image.Gray {
	ink := InkBounds(face, digit)
	w := ink.Dx() + 2*margin
	h := ink.Dy() + 2*margin

	img := Paper(w, h)
	DrawDigit(img, face, digit, image.Pt(w/2, h/2))
	return img
}

// Paper returns a white grayscale canvas with bounds starting at (0,0).
func Paper(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), imaging.New(w, h, color.White), image.Point{}, draw.Src)
	return img
}
