package imaging

import "image"

// OpenHorizontal performs a morphological opening of a binary image with a
// 1×kernelWidth horizontal structuring element.
//
// The image is eroded iterations times and then dilated iterations times,
// so only horizontal foreground runs at least
// iterations*(kernelWidth-1)+1 pixels long survive. The result isolates
// near-horizontal line structure; text strokes and vertical lines vanish.
func OpenHorizontal(bin *image.Gray, kernelWidth, iterations int) *image.Gray {
	radius := kernelWidth / 2
	out := Clone(bin)
	for i := 0; i < iterations; i++ {
		out = erodeHorizontal(out, radius)
	}
	for i := 0; i < iterations; i++ {
		out = dilateHorizontal(out, radius)
	}
	return out
}

// Subtract returns a with every foreground pixel of b cleared.
// Both images must have the same size.
func Subtract(a, b *image.Gray) *image.Gray {
	out := Clone(a)
	ab := a.Bounds()
	bb := b.Bounds()
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			if b.Pix[b.PixOffset(bb.Min.X+x, bb.Min.Y+y)] > 127 {
				out.Pix[y*out.Stride+x] = Background
			}
		}
	}
	return out
}

// erodeHorizontal keeps a pixel only if every pixel within radius on its
// row is foreground. Pixels beyond the image edge count as foreground.
func erodeHorizontal(bin *image.Gray, radius int) *image.Gray {
	return slideHorizontal(bin, radius, func(fgInWindow, windowLen int) bool {
		return fgInWindow == windowLen
	})
}

// dilateHorizontal sets a pixel if any pixel within radius on its row is
// foreground. Pixels beyond the image edge count as background.
func dilateHorizontal(bin *image.Gray, radius int) *image.Gray {
	return slideHorizontal(bin, radius, func(fgInWindow, windowLen int) bool {
		return fgInWindow > 0
	})
}

// slideHorizontal evaluates keep for every pixel using a per-row prefix sum
// of foreground counts over the clipped window [x-radius, x+radius].
func slideHorizontal(bin *image.Gray, radius int, keep func(fgInWindow, windowLen int) bool) *image.Gray {
	bounds := bin.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))
	prefix := make([]int, width+1)

	for y := 0; y < height; y++ {
		row := bin.Pix[bin.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < width; x++ {
			prefix[x+1] = prefix[x]
			if row[x] > 127 {
				prefix[x+1]++
			}
		}
		for x := 0; x < width; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius+1, width)
			if keep(prefix[x1]-prefix[x0], x1-x0) {
				out.Pix[y*out.Stride+x] = Foreground
			}
		}
	}
	return out
}
