//go:build tesseract

package ocr

import (
	"fmt"
	"slices"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/sudoku-vision/internal/glyph"
)

var (
	languagesOnce sync.Once
	languages     []string
	languagesErr  error
)

// Ready checks that the configured language data is installed.
func (c *Classifier) Ready() error {
	if c.opts.TessdataPrefix != "" {
		// GetAvailableLanguages only searches the default location
		return nil
	}
	languagesOnce.Do(func() {
		languages, languagesErr = gosseract.GetAvailableLanguages()
	})
	if languagesErr != nil {
		return fmt.Errorf("failed to list tesseract languages: %w", languagesErr)
	}
	if !slices.Contains(languages, c.opts.Language) {
		return fmt.Errorf("tesseract language %q not installed", c.opts.Language)
	}
	return nil
}

// Predict recognizes g as a single digit, returning 0 when Tesseract
// finds nothing in the whitelist.
func (c *Classifier) Predict(g glyph.Glyph) (int, error) {
	data, err := renderGlyph(g, c.opts.Scale, c.opts.Padding)
	if err != nil {
		return 0, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if c.opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(c.opts.TessdataPrefix); err != nil {
			return 0, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(c.opts.Language); err != nil {
		return 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		return 0, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetWhitelist(Whitelist); err != nil {
		return 0, fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return 0, fmt.Errorf("OCR failed: %w", err)
	}
	return parseDigit(text), nil
}
