// Package recognition turns a photo of a Sudoku puzzle into a 9×9 grid of
// digits.
//
// The pipeline is strictly sequential:
//
//	Loaded → BoundaryFound → LinesSuppressed → CellsBuilt →
//	GlyphsExtracted → GlyphsAssigned → Classified → Done
//
// The photo is binarized with an adaptive mean threshold, the largest
// external contour is taken as the puzzle outline and cropped, grid lines
// are suppressed by a horizontal opening followed by Hough segment
// painting, the unsuppressed crop is segmented into 81 cells, digit-sized
// contours of the suppressed crop become glyphs, each glyph is assigned to
// the cell it overlaps most and finally classified. Only classification
// runs in parallel.
//
// Any failure moves the run to Failed and returns a *StageError; see
// ErrNoGridFound and IncompleteGridError for the geometric failures.
package recognition
