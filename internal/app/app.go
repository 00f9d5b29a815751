// Package app wires configuration, logging, the classifier and the
// recognition pipeline together for the commands.
package app

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ironsheep/sudoku-vision/internal/classifier"
	"github.com/ironsheep/sudoku-vision/internal/config"
	"github.com/ironsheep/sudoku-vision/internal/dataset"
	"github.com/ironsheep/sudoku-vision/internal/glyph"
	"github.com/ironsheep/sudoku-vision/internal/imaging"
	"github.com/ironsheep/sudoku-vision/internal/logging"
	"github.com/ironsheep/sudoku-vision/internal/ocr"
	"github.com/ironsheep/sudoku-vision/internal/recognition"
	"github.com/ironsheep/sudoku-vision/internal/synth"
)

// App holds the long-lived components shared by a command's requests.
type App struct {
	Config   *config.Config
	Log      zerolog.Logger
	Cache    *imaging.ImageCache
	Pipeline *recognition.Pipeline
}

// New builds the application, logging to logOut.
//
// An untrained classifier is not an error here: the commands still serve
// grid location and image metadata, and recognition reports the
// classifier error per request.
func New(cfg *config.Config, logOut io.Writer) (*App, error) {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, logOut)
	if err != nil {
		return nil, err
	}

	cache := imaging.NewImageCache()
	cls, err := NewClassifier(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := cls.Ready(); err != nil {
		log.Warn().Err(err).Str("classifier", cfg.Classifier).Msg("classifier not ready, recognition will fail")
	}

	return &App{
		Config:   cfg,
		Log:      log,
		Cache:    cache,
		Pipeline: recognition.New(cfg.Recognition, cls, recognition.WithLogger(log)),
	}, nil
}

// NewClassifier builds the configured classifier backend.
func NewClassifier(cfg *config.Config, log zerolog.Logger) (recognition.Classifier, error) {
	switch cfg.Classifier {
	case config.ClassifierKNN:
		samples, err := TrainingSamples(cfg, log)
		if err != nil {
			return nil, err
		}
		knn := classifier.NewKNN(cfg.Recognition.K)
		if err := knn.Train(samples); err != nil {
			return nil, fmt.Errorf("failed to train classifier: %w", err)
		}
		log.Info().Int("samples", knn.Len()).Int("k", knn.K()).Msg("knn classifier trained")
		return knn, nil

	case config.ClassifierTesseract:
		return ocr.New(ocr.Options{
			Language:       cfg.Tesseract.Language,
			TessdataPrefix: cfg.Tesseract.TessdataPrefix,
		}), nil

	default:
		return nil, fmt.Errorf("unknown classifier %q", cfg.Classifier)
	}
}

// TrainingSamples loads the dataset directory, or renders the built-in
// digit set when none is configured.
func TrainingSamples(cfg *config.Config, log zerolog.Logger) ([]glyph.Sample, error) {
	if cfg.DatasetDir != "" {
		return dataset.LoadDir(cfg.DatasetDir, log)
	}

	face, err := synth.NewFace(cfg.FontSize)
	if err != nil {
		return nil, err
	}
	samples, err := dataset.Rendered(face, cfg.Recognition.BinarizeOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to render training digits: %w", err)
	}
	log.Debug().Float64("font_size", cfg.FontSize).Msg("using rendered training digits")
	return samples, nil
}
