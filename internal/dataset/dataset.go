// Package dataset materializes labelled glyph samples for the classifiers.
package dataset

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"

	"github.com/ironsheep/sudoku-vision/internal/detection"
	"github.com/ironsheep/sudoku-vision/internal/glyph"
	"github.com/ironsheep/sudoku-vision/internal/imaging"
	"github.com/ironsheep/sudoku-vision/internal/synth"
)

// ScanLevel is the global threshold used for dataset scans: after
// inversion, pixels at or above it are ink.
const ScanLevel = 128

// imageExts lists the decodable extensions LoadDir considers.
var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// LoadDir reads a directory of labelled glyph scans.
//
// The label of a file is the leading digit of its name ("7_a.png" is a 7);
// files without one are skipped with a warning. Each image is inverted and
// thresholded globally, and every external contour becomes one sample.
// Files are visited in name order, so the sample order and with it the
// classifier's tie-breaks are stable.
func LoadDir(dir string, log zerolog.Logger) ([]glyph.Sample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	samples := make([]glyph.Sample, 0, len(names))
	for _, name := range names {
		label, ok := Label(name)
		if !ok {
			log.Warn().Str("file", name).Msg("dataset file has no leading digit label, skipped")
			continue
		}

		img, err := imaging.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		samples = append(samples, FromScan(img, label)...)
	}

	log.Info().Str("dir", dir).Int("files", len(names)).Int("samples", len(samples)).Msg("dataset loaded")
	return samples, nil
}

// Label returns the digit a file name starts with.
func Label(name string) (int, bool) {
	base := filepath.Base(name)
	if base == "" || base[0] < '0' || base[0] > '9' {
		return 0, false
	}
	return int(base[0] - '0'), true
}

// FromScan turns every external contour of a dark-on-light scan into a
// sample with the given label.
func FromScan(img image.Image, label int) []glyph.Sample {
	bin := imaging.ThresholdInverted(img, ScanLevel)
	contours := detection.FindExternalContours(bin)

	samples := make([]glyph.Sample, 0, len(contours))
	for _, c := range contours {
		samples = append(samples, glyph.Sample{Glyph: glyph.Normalize(bin, c.Box), Label: label})
	}
	return samples
}

// renderMargin keeps the paper around a rendered digit wide enough that
// the adaptive threshold sees the same neighbourhood as in a puzzle cell.
const renderMargin = 16

// Rendered produces one sample per digit 1..9 drawn with face and
// binarized exactly like a photo, so digits rendered into a synthetic
// puzzle with the same face match their sample pixel for pixel.
func Rendered(face font.Face, opts imaging.BinarizeOptions) ([]glyph.Sample, error) {
	samples := make([]glyph.Sample, 0, 9)
	for digit := 1; digit <= 9; digit++ {
		bin := imaging.Binarize(synth.DigitImage(face, digit, renderMargin), opts)
		contours := detection.FindExternalContours(bin)
		if len(contours) == 0 {
			return nil, fmt.Errorf("digit %d rendered no ink", digit)
		}

		largest := contours[0]
		for _, c := range contours[1:] {
			if c.Area > largest.Area {
				largest = c
			}
		}
		samples = append(samples, glyph.Sample{Glyph: glyph.Normalize(bin, largest.Box), Label: digit})
	}
	return samples, nil
}
