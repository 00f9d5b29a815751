package detection

import (
	"image"
	"sort"
)

// Contour is an external connected region of a binary image.
//
// Only the information the recognition stages consume is kept: the
// region's bounding box, the area enclosed by its outer border and the
// border pixels themselves.
type Contour struct {
	// Points lists the region's border pixels in scan order, in image
	// coordinates. A pixel is on the border when one of its 4-neighbours
	// is not part of the region.
	Points []image.Point

	// Box is the tight bounding box of the region.
	Box BoundingBox

	// Area counts the pixels enclosed by the outer border, holes included.
	// A closed rectangular outline therefore has the area of its box.
	Area int

	// PixelCount is the number of foreground pixels in the region.
	PixelCount int
}

// IsForeground reports whether a binary pixel value counts as foreground.
// Binary images in this module use 255 for foreground and 0 for background.
func IsForeground(v uint8) bool {
	return v > 127
}

// FindExternalContours returns the outermost connected regions of a
// binary image, in scan order of their first pixel.
//
// Foreground regions are grouped with 8-connectivity. A region counts as
// external when it touches the image border or the background that is
// 4-connected to the border; regions sitting inside the holes of another
// region (the counter of a "6", a digit inside a closed frame) are skipped.
func FindExternalContours(bin *image.Gray) []Contour {
	bounds := bin.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	mask := binaryMask(bin)
	outside := floodOutside(mask, width, height)
	labels := make([]int, width*height)
	contours := make([]Contour, 0)
	next := 0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !mask[i] || labels[i] != 0 {
				continue
			}
			next++
			region := floodFill(mask, labels, x, y, width, height, next)
			if c, ok := buildContour(region, labels, outside, next, width, height); ok {
				c.Box.X += bounds.Min.X
				c.Box.Y += bounds.Min.Y
				for k := range c.Points {
					c.Points[k] = c.Points[k].Add(bounds.Min)
				}
				contours = append(contours, c)
			}
		}
	}

	return contours
}

// floodFill labels the 8-connected foreground region containing
// (startX, startY) and returns its pixels.
//
// Uses an explicit stack instead of recursion so large regions such as a
// full puzzle outline cannot overflow the goroutine stack.
func floodFill(mask []bool, labels []int, startX, startY, width, height, label int) []image.Point {
	region := make([]image.Point, 0, 64)
	stack := []image.Point{{X: startX, Y: startY}}
	labels[startY*width+startX] = label

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region = append(region, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				j := ny*width + nx
				if mask[j] && labels[j] == 0 {
					labels[j] = label
					stack = append(stack, image.Point{X: nx, Y: ny})
				}
			}
		}
	}

	return region
}

// floodOutside marks the background pixels 4-connected to the image border.
func floodOutside(mask []bool, width, height int) []bool {
	outside := make([]bool, width*height)
	stack := make([]image.Point, 0, 2*(width+height))

	push := func(x, y int) {
		i := y*width + x
		if !mask[i] && !outside[i] {
			outside[i] = true
			stack = append(stack, image.Point{X: x, Y: y})
		}
	}

	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 0; y < height; y++ {
		push(0, y)
		push(width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.X > 0 {
			push(p.X-1, p.Y)
		}
		if p.X < width-1 {
			push(p.X+1, p.Y)
		}
		if p.Y > 0 {
			push(p.X, p.Y-1)
		}
		if p.Y < height-1 {
			push(p.X, p.Y+1)
		}
	}

	return outside
}

var neighbours4 = [4]image.Point{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}

// buildContour summarises a labelled region. ok is false when the region
// is nested inside another region's hole.
func buildContour(region []image.Point, labels []int, outside []bool, label, width, height int) (Contour, bool) {
	minX, minY := width, height
	maxX, maxY := -1, -1
	external := false
	border := make([]image.Point, 0)

	for _, p := range region {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)

		onBorder := false
		for _, d := range neighbours4 {
			nx, ny := p.X+d.X, p.Y+d.Y
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				external = true
				onBorder = true
				continue
			}
			j := ny*width + nx
			if labels[j] != label {
				onBorder = true
				if outside[j] {
					external = true
				}
			}
		}
		if onBorder {
			border = append(border, p)
		}
	}

	if !external {
		return Contour{}, false
	}

	box := BoundingBox{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
	sortScanOrder(border)

	return Contour{
		Points:     border,
		Box:        box,
		Area:       enclosedArea(labels, label, box, width),
		PixelCount: len(region),
	}, true
}

// enclosedArea counts the pixels of box not reachable from outside the box
// without crossing the region with the given label.
func enclosedArea(labels []int, label int, box BoundingBox, width int) int {
	// Work in the box grown by one pixel so the ring is always reachable.
	w := box.Width + 2
	h := box.Height + 2
	wall := func(x, y int) bool {
		if x == 0 || y == 0 || x == w-1 || y == h-1 {
			return false
		}
		return labels[(box.Y+y-1)*width+box.X+x-1] == label
	}

	seen := make([]bool, w*h)
	seen[0] = true
	stack := []image.Point{{}}
	reached := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		reached++
		for _, d := range neighbours4 {
			nx, ny := p.X+d.X, p.Y+d.Y
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			j := ny*w + nx
			if seen[j] || wall(nx, ny) {
				continue
			}
			seen[j] = true
			stack = append(stack, image.Point{X: nx, Y: ny})
		}
	}

	return w*h - reached
}

// sortScanOrder orders points top-to-bottom, then left-to-right.
func sortScanOrder(points []image.Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
}
