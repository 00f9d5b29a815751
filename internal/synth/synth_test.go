package synth

import (
	"image"
	"testing"
)

func TestNewFace(t *testing.T) {
	face, err := NewFace(0)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	for d := 0; d <= 9; d++ {
		ink := InkBounds(face, d)
		if ink.Empty() {
			t.Errorf("digit %d: empty ink bounds", d)
		}
		if ink.Dy() < 15 || ink.Dy() > 30 {
			t.Errorf("digit %d: ink height %d out of range for the default size", d, ink.Dy())
		}
	}
}

func TestDigitImage(t *testing.T) {
	face, err := NewFace(DefaultFontSize)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}

	img := DigitImage(face, 5, 10)
	ink := InkBounds(face, 5)
	if img.Bounds() != image.Rect(0, 0, ink.Dx()+20, ink.Dy()+20) {
		t.Errorf("bounds: got %v", img.Bounds())
	}

	dark := 0
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			v := img.GrayAt(x, y).Y
			if v < 128 {
				dark++
				if x < 8 || y < 8 || x >= img.Bounds().Dx()-8 || y >= img.Bounds().Dy()-8 {
					t.Fatalf("ink at (%d,%d) inside the margin", x, y)
				}
			}
		}
	}
	if dark == 0 {
		t.Error("no ink rendered")
	}
}

func TestDrawDigit_TranslationInvariant(t *testing.T) {
	face, err := NewFace(DefaultFontSize)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}

	a := Paper(60, 60)
	b := Paper(80, 80)
	DrawDigit(a, face, 3, image.Pt(30, 30))
	DrawDigit(b, face, 3, image.Pt(47, 41))

	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if a.GrayAt(x, y) != b.GrayAt(x+17, y+11) {
				t.Fatalf("pixel (%d,%d) differs after translation", x, y)
			}
		}
	}
}

func TestPuzzle_Geometry(t *testing.T) {
	p := DefaultPuzzle(nil)
	if p.LinePos(0) != 9 || p.LinePos(9) != 441 {
		t.Errorf("LinePos: got %d..%d", p.LinePos(0), p.LinePos(9))
	}
	if r := p.CellRect(Cell{0, 0}); r != image.Rect(11, 11, 56, 56) {
		t.Errorf("CellRect(0,0): got %v", r)
	}
	if c := p.CellCenter(Cell{8, 8}); c != image.Pt(417, 417) {
		t.Errorf("CellCenter(8,8): got %v", c)
	}
}

func TestPuzzle_Render(t *testing.T) {
	face, err := NewFace(DefaultFontSize)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	p := DefaultPuzzle(face)
	p.Digits[Cell{1, 1}] = 7
	p.Obscured = []Cell{{3, 3}}
	img := p.Render()

	if img.Bounds() != image.Rect(0, 0, 450, 450) {
		t.Fatalf("bounds: got %v", img.Bounds())
	}
	if img.GrayAt(9, 200).Y != 0 || img.GrayAt(200, 57).Y != 0 {
		t.Error("grid line missing")
	}
	if img.GrayAt(0, 0).Y != 255 || img.GrayAt(449, 449).Y != 255 {
		t.Error("paper outside the grid should be white")
	}
	if img.GrayAt(12, 12).Y != 255 {
		t.Error("empty cell should be white")
	}

	r := p.CellRect(Cell{1, 1})
	dark := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.GrayAt(x, y).Y < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("digit missing from its cell")
	}

	o := p.CellRect(Cell{3, 3})
	if img.GrayAt(o.Min.X+10, o.Min.Y+2).Y != 0 || img.GrayAt(o.Min.X+10, o.Min.Y+6).Y != 255 {
		t.Error("obscured cell stripes missing")
	}
}
