package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/sudoku-vision/internal/detection"
)

// CropPadded extracts box from a grayscale image.
//
// The result is exactly box.Width × box.Height with bounds starting at
// (0,0). Parts of the box that fall outside img are filled with
// Background, so a box hanging over the left or top edge shifts the
// available pixels right or down rather than shrinking the output.
func CropPadded(img *image.Gray, box detection.BoundingBox) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, max(box.Width, 0), max(box.Height, 0)))
	if !box.Valid() {
		return out
	}

	canvas := imaging.New(box.Width, box.Height, color.Black)
	src := box.Rect().Intersect(img.Bounds())
	if !src.Empty() {
		part := imaging.Crop(img, src)
		canvas = imaging.Paste(canvas, part, src.Min.Sub(box.Rect().Min))
	}

	draw.Draw(out, out.Bounds(), canvas, image.Point{}, draw.Src)
	return out
}
