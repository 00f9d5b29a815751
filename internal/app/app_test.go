package app

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ironsheep/sudoku-vision/internal/classifier"
	"github.com/ironsheep/sudoku-vision/internal/config"
	"github.com/ironsheep/sudoku-vision/internal/synth"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestNew_RenderedKNN(t *testing.T) {
	var logs bytes.Buffer
	a, err := New(testConfig(t), &logs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !strings.Contains(logs.String(), "knn classifier trained") {
		t.Errorf("missing training log: %s", logs.String())
	}

	face, err := synth.NewFace(a.Config.FontSize)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	puzzle := synth.DefaultPuzzle(face)
	puzzle.Digits[synth.Cell{Row: 4, Col: 7}] = 6

	res, err := a.Pipeline.Recognize(context.Background(), puzzle.Render())
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if res.Grid[4][7] != 6 || res.Grid.Filled() != 1 {
		t.Errorf("grid:\n%s", res.Grid)
	}
}

func TestNewClassifier_EmptyDataset(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatasetDir = t.TempDir()

	var logs bytes.Buffer
	a, err := New(cfg, &logs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !strings.Contains(logs.String(), "classifier not ready") {
		t.Errorf("missing readiness warning: %s", logs.String())
	}

	_, err = a.Pipeline.Recognize(context.Background(), synth.DefaultPuzzle(nil).Render())
	if !errors.Is(err, classifier.ErrUntrained) {
		t.Errorf("got %v, want untrained error", err)
	}
}

func TestNew_DatasetNotCached(t *testing.T) {
	face, err := synth.NewFace(synth.DefaultFontSize)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "7_scan.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, synth.DigitImage(face, 7, 16)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	cfg := testConfig(t)
	cfg.DatasetDir = dir
	a, err := New(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Pipeline.Ready(); err != nil {
		t.Errorf("Ready: %v", err)
	}
	if n := a.Cache.Len(); n != 0 {
		t.Errorf("cache holds %d dataset images, want 0", n)
	}
}

func TestNewClassifier_MissingDataset(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatasetDir = filepath.Join(t.TempDir(), "nope")
	if _, err := New(cfg, &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing dataset directory")
	}
}

func TestNewClassifier_Tesseract(t *testing.T) {
	cfg := testConfig(t)
	cfg.Classifier = config.ClassifierTesseract

	c, err := NewClassifier(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	if c == nil {
		t.Fatal("nil classifier")
	}
}

func TestNew_BadLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogLevel = "chatty"
	if _, err := New(cfg, os.Stderr); err == nil {
		t.Error("expected error for bad log level")
	}
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
