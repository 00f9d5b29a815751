// Package detection finds structure in binary images: connected ink
// regions with their bounding boxes, and straight line segments.
//
// # Contours
//
// FindExternalContours returns the outermost 8-connected foreground
// regions. Regions sitting inside the holes of another region are skipped,
// so a digit drawn inside a closed frame is not reported while the frame
// is. On an inverted Sudoku crop the grid lines become background and
// every cell interior is its own external region.
//
// Contours are returned in scan order of their first pixel (top to bottom,
// then left to right), so results are deterministic for a given image.
//
// # Lines
//
// DetectSegments runs a Hough transform over the foreground pixels and
// traces each accepted line into segments, bridging gaps up to
// HoughParams.MaxLineGap.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
package detection
