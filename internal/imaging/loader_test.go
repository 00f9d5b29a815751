package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// createTestImage creates a simple test image file and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.Len() != 0 {
		t.Errorf("new cache should be empty, got %d entries", cache.Len())
	}
}

func TestImageCache_Load(t *testing.T) {
	path := createTestImage(t, 100, 50, color.RGBA{255, 0, 0, 255})
	cache := NewImageCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 100x50", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// Second load should come from the cache, even after the file is gone
	os.Remove(path)
	img2, err := cache.Load(path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if img2 != img {
		t.Error("second Load should return the cached image")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/path/image.png")
	if err == nil {
		t.Fatal("expected error for non-existent file")
	}

	var loadErr *ImageLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *ImageLoadError, got %T", err)
	}
	if loadErr.Path != "/nonexistent/path/image.png" {
		t.Errorf("Path: got %q", loadErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("ImageLoadError should unwrap to os.ErrNotExist")
	}
}

func TestOpen(t *testing.T) {
	path := createTestImage(t, 12, 7, color.White)
	img, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 7 {
		t.Errorf("bounds: got %v", img.Bounds())
	}

	var loadErr *ImageLoadError
	if _, err := Open(filepath.Join(t.TempDir(), "missing.png")); !errors.As(err, &loadErr) {
		t.Errorf("expected *ImageLoadError, got %v", err)
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	cache := NewImageCache()
	_, err := cache.Load(path)

	var loadErr *ImageLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *ImageLoadError, got %v", err)
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error should mention decoding: %v", err)
	}
	if cache.Len() != 0 {
		t.Error("failed loads must not be cached")
	}
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	path := createTestImage(t, 10, 10, color.White)
	cache := NewImageCache()

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(path)
	if cache.Len() != 0 {
		t.Errorf("Evict: cache has %d entries, want 0", cache.Len())
	}

	cache.Evict("/not/cached.png")

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Clear: cache has %d entries, want 0", cache.Len())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	path := createTestImage(t, 20, 20, color.Black)
	cache := NewImageCache()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				t.Errorf("concurrent Load failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Errorf("expected 1 cached image, got %d", cache.Len())
	}
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 7, 3))); err != nil {
		t.Fatalf("encode: %v", err)
	}

	img, err := Decode(&buf, "upload.png")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 7 || img.Bounds().Dy() != 3 {
		t.Errorf("dimensions: got %v", img.Bounds())
	}

	_, err = Decode(strings.NewReader("garbage"), "upload.bin")
	var loadErr *ImageLoadError
	if !errors.As(err, &loadErr) || loadErr.Path != "upload.bin" {
		t.Errorf("expected *ImageLoadError for upload.bin, got %v", err)
	}
}

func TestGetDimensions(t *testing.T) {
	path := createTestImage(t, 64, 32, color.White)
	cache := NewImageCache()

	result, err := GetDimensions(cache, path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if result.Width != 64 || result.Height != 32 {
		t.Errorf("dimensions: got %dx%d, want 64x32", result.Width, result.Height)
	}

	if _, err := GetDimensions(cache, "/nonexistent.png"); err == nil {
		t.Error("expected error for missing file")
	}
}
