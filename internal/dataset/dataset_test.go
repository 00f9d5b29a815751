package dataset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ironsheep/sudoku-vision/internal/glyph"
	"github.com/ironsheep/sudoku-vision/internal/imaging"
	"github.com/ironsheep/sudoku-vision/internal/synth"
)

// scan returns white paper with a black rectangle for every rect.
func scan(w, h int, rects ...image.Rectangle) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		label int
		ok    bool
	}{
		{"7.png", 7, true},
		{"0_blank.jpg", 0, true},
		{"/data/set/3-17.png", 3, true},
		{"x3.png", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		label, ok := Label(tt.name)
		if label != tt.label || ok != tt.ok {
			t.Errorf("Label(%q): got (%d, %v), want (%d, %v)", tt.name, label, ok, tt.label, tt.ok)
		}
	}
}

func TestFromScan(t *testing.T) {
	img := scan(60, 40, image.Rect(5, 5, 15, 25), image.Rect(30, 10, 40, 30))

	samples := FromScan(img, 4)
	if len(samples) != 2 {
		t.Fatalf("samples: got %d, want 2", len(samples))
	}
	for i, s := range samples {
		if s.Label != 4 {
			t.Errorf("sample %d: label %d, want 4", i, s.Label)
		}
		if s.Glyph.Source.Width != 10 || s.Glyph.Source.Height != 20 {
			t.Errorf("sample %d: source %+v, want 10x20", i, s.Glyph.Source)
		}
		// 10x20 block centred on the canvas
		if s.Glyph.Pix[14*glyph.Size+14] != 255 || s.Glyph.Pix[0] != 0 {
			t.Errorf("sample %d: raster not centred", i)
		}
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "7b.png"), scan(30, 30, image.Rect(10, 5, 20, 25)))
	writePNG(t, filepath.Join(dir, "3_a.png"), scan(30, 30, image.Rect(8, 8, 22, 22)))
	writePNG(t, filepath.Join(dir, "unlabelled.png"), scan(30, 30, image.Rect(8, 8, 22, 22)))
	if err := os.WriteFile(filepath.Join(dir, "9-notes.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	samples, err := LoadDir(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("samples: got %d, want 2", len(samples))
	}
	if samples[0].Label != 3 || samples[1].Label != 7 {
		t.Errorf("labels: got %d,%d, want 3,7 in name order", samples[0].Label, samples[1].Label)
	}
}

func TestLoadDir_Errors(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "missing"), zerolog.Nop()); err == nil {
		t.Error("expected error for missing directory")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "1.png"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir, zerolog.Nop()); err == nil {
		t.Error("expected error for undecodable image")
	}
}

func TestRendered(t *testing.T) {
	face, err := synth.NewFace(synth.DefaultFontSize)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	opts := imaging.BinarizeOptions{BlurRadius: 1, BlockSize: 11, C: 2}

	samples, err := Rendered(face, opts)
	if err != nil {
		t.Fatalf("Rendered: %v", err)
	}
	if len(samples) != 9 {
		t.Fatalf("samples: got %d, want 9", len(samples))
	}

	seen := make(map[string]int)
	for i, s := range samples {
		if s.Label != i+1 {
			t.Errorf("sample %d: label %d, want %d", i, s.Label, i+1)
		}
		ink := 0
		for _, v := range s.Glyph.Pix {
			if v > 127 {
				ink++
			}
		}
		if ink == 0 {
			t.Errorf("digit %d: empty raster", s.Label)
		}
		key := string(s.Glyph.Pix)
		if prev, dup := seen[key]; dup {
			t.Errorf("digits %d and %d rendered identical rasters", prev, s.Label)
		}
		seen[key] = s.Label
	}

	again, _ := Rendered(face, opts)
	for i := range samples {
		if string(again[i].Glyph.Pix) != string(samples[i].Glyph.Pix) {
			t.Errorf("digit %d: rendering not reproducible", i+1)
		}
	}
}
