package recognition

import (
	"image"

	"github.com/ironsheep/sudoku-vision/internal/detection"
	"github.com/ironsheep/sudoku-vision/internal/imaging"
)

// Boundary is the located puzzle outline and the binary image cropped to it.
type Boundary struct {
	// Box is the outline's bounding box in binary image coordinates.
	Box detection.BoundingBox

	// Crop is exactly Box.Width × Box.Height, padded with background where
	// the box leaves the image.
	Crop *image.Gray
}

// BoundaryLocator finds the puzzle outline in a binarized photo.
type BoundaryLocator interface {
	Locate(bin *image.Gray) (Boundary, error)
}

// ContourLocator picks the external contour enclosing the largest area.
type ContourLocator struct{}

// Locate returns ErrNoGridFound when the image has no foreground at all.
// Among contours of equal area the first in scan order wins.
func (ContourLocator) Locate(bin *image.Gray) (Boundary, error) {
	contours := detection.FindExternalContours(bin)
	if len(contours) == 0 {
		return Boundary{}, ErrNoGridFound
	}

	best := contours[0]
	for _, c := range contours[1:] {
		if c.Area > best.Area {
			best = c
		}
	}

	return Boundary{
		Box:  best.Box,
		Crop: imaging.CropPadded(bin, best.Box),
	}, nil
}
