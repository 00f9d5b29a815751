package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/sudoku-vision/internal/glyph"
)

// ErrUnavailable is returned when the binary was built without Tesseract.
var ErrUnavailable = errors.New("tesseract support not compiled in (build with -tags tesseract)")

// Whitelist restricts recognition to the digits a Sudoku can hold.
const Whitelist = "123456789"

// Options configures a Classifier.
type Options struct {
	// Language is the Tesseract language code, "eng" when empty.
	Language string

	// TessdataPrefix overrides the directory holding traineddata files.
	TessdataPrefix string

	// Scale enlarges glyphs before recognition; Tesseract reads characters
	// around 30 pixels tall or more best. Defaults to 3.
	Scale int

	// Padding is the white border added around the scaled glyph, in
	// output pixels. Defaults to 16.
	Padding int
}

// Classifier recognizes glyphs with Tesseract. It is safe for concurrent
// use; every prediction runs on its own engine instance.
type Classifier struct {
	opts Options
}

// New returns a classifier with defaults applied to opts.
func New(opts Options) *Classifier {
	if opts.Language == "" {
		opts.Language = "eng"
	}
	if opts.Scale < 1 {
		opts.Scale = 3
	}
	if opts.Padding <= 0 {
		opts.Padding = 16
	}
	return &Classifier{opts: opts}
}

// Options returns the effective options.
func (c *Classifier) Options() Options {
	return c.opts
}

// renderGlyph turns a binary glyph (ink 255 on 0) into a dark-on-light
// PNG, scaled and padded for recognition.
func renderGlyph(g glyph.Glyph, scale, padding int) ([]byte, error) {
	if len(g.Pix) != glyph.Size*glyph.Size {
		return nil, fmt.Errorf("glyph raster has %d pixels, want %d", len(g.Pix), glyph.Size*glyph.Size)
	}

	inked := image.NewGray(image.Rect(0, 0, glyph.Size, glyph.Size))
	for i, v := range g.Pix {
		inked.Pix[i] = 255 - v
	}

	side := glyph.Size * scale
	scaled := imaging.Resize(inked, side, side, imaging.NearestNeighbor)
	canvas := imaging.New(side+2*padding, side+2*padding, color.White)
	canvas = imaging.Paste(canvas, scaled, image.Pt(padding, padding))

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode glyph: %w", err)
	}
	return buf.Bytes(), nil
}

// parseDigit returns the first whitelisted digit in Tesseract output, or 0.
func parseDigit(text string) int {
	i := strings.IndexAny(text, Whitelist)
	if i < 0 {
		return 0
	}
	return int(text[i] - '0')
}
