package ocr

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/ironsheep/sudoku-vision/internal/glyph"
)

func TestNew_Defaults(t *testing.T) {
	c := New(Options{})
	o := c.Options()
	if o.Language != "eng" || o.Scale != 3 || o.Padding != 16 {
		t.Errorf("defaults: got %+v", o)
	}

	c = New(Options{Language: "deu", Scale: 5, Padding: 4})
	if o := c.Options(); o.Language != "deu" || o.Scale != 5 || o.Padding != 4 {
		t.Errorf("explicit options overridden: %+v", o)
	}
}

func TestParseDigit(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"7", 7},
		{" 3\n", 3},
		{"", 0},
		{"O", 0},
		{"0", 0},
		{"l9", 9},
	}
	for _, tt := range tests {
		if got := parseDigit(tt.text); got != tt.want {
			t.Errorf("parseDigit(%q): got %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestRenderGlyph(t *testing.T) {
	g := glyph.Glyph{Pix: make([]uint8, glyph.Size*glyph.Size)}
	// One ink pixel at (10,12)
	g.Pix[12*glyph.Size+10] = 255

	data, err := renderGlyph(g, 2, 5)
	if err != nil {
		t.Fatalf("renderGlyph: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	side := glyph.Size*2 + 10
	if img.Bounds() != image.Rect(0, 0, side, side) {
		t.Fatalf("bounds: got %v", img.Bounds())
	}

	gray := func(x, y int) uint32 {
		r, _, _, _ := img.At(x, y).RGBA()
		return r >> 8
	}
	if gray(0, 0) != 255 {
		t.Error("padding should be white")
	}
	if gray(5+20, 5+24) != 0 || gray(5+21, 5+25) != 0 {
		t.Error("ink pixel should be black and scaled 2x")
	}
	if gray(5+22, 5+24) != 255 {
		t.Error("paper should be white")
	}
}

func TestRenderGlyph_Malformed(t *testing.T) {
	if _, err := renderGlyph(glyph.Glyph{Pix: make([]uint8, 5)}, 3, 16); err == nil {
		t.Error("expected error for malformed glyph")
	}
}
