package imaging

import (
	"image"
	"image/draw"
)

// Clone returns a copy of img with bounds starting at (0,0).
func Clone(img *image.Gray) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// DrawLine paints a straight line from a to b into img, in place, using a
// square pen of the given width. Points outside the image are ignored.
func DrawLine(img *image.Gray, a, b image.Point, width int, value uint8) {
	half := max(width, 1) / 2
	lo := -half
	hi := max(width, 1) - half - 1
	bounds := img.Bounds()

	plot := func(x, y int) {
		for dy := lo; dy <= hi; dy++ {
			for dx := lo; dx <= hi; dx++ {
				p := image.Point{X: x + dx, Y: y + dy}
				if p.In(bounds) {
					img.Pix[img.PixOffset(p.X, p.Y)] = value
				}
			}
		}
	}

	// Bresenham
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	errTerm := dx + dy
	x, y := a.X, a.Y
	for {
		plot(x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * errTerm
		if e2 >= dy {
			errTerm += dy
			x += sx
		}
		if e2 <= dx {
			errTerm += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
