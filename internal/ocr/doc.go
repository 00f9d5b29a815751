// Package ocr classifies glyphs with the Tesseract OCR engine.
//
// It is an alternative to the k-nearest-neighbour classifier for puzzles
// printed in fonts the training set does not cover. Each glyph is
// re-inked as dark on light, scaled up and padded, then recognized in
// single-character mode with a 1-9 whitelist. Anything Tesseract cannot
// read as one of those digits classifies as 0 (empty).
//
// # Prerequisites
//
// The engine is only compiled in with the "tesseract" build tag, which
// needs cgo and the Tesseract libraries:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Without the tag, Classifier reports ErrUnavailable from Ready and Predict.
package ocr
