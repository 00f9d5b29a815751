package detection

import "image"

// BoundingBox is an axis-aligned rectangle in pixel coordinates.
//
// (X, Y) is the top-left corner (inclusive); the box covers
// [X, X+Width) horizontally and [Y, Y+Height) vertically.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BoxFromRect converts an image.Rectangle into a BoundingBox.
func BoxFromRect(r image.Rectangle) BoundingBox {
	return BoundingBox{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Valid reports whether the box has a positive width and height.
func (b BoundingBox) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// Area returns Width × Height.
func (b BoundingBox) Area() int {
	return b.Width * b.Height
}

// Rect returns the box as an image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Intersection returns the overlap area between two boxes.
//
// The result is positive only when the boxes share interior pixels. Boxes
// that merely touch along an edge give 0, and disjoint boxes give a
// negative value, so callers should treat anything <= 0 as "no overlap".
func (b BoundingBox) Intersection(o BoundingBox) int {
	left := max(b.X, o.X)
	top := max(b.Y, o.Y)
	right := min(b.X+b.Width, o.X+o.Width)
	bottom := min(b.Y+b.Height, o.Y+o.Height)

	if left <= right && top <= bottom {
		return (right - left) * (bottom - top)
	}
	return -1
}
