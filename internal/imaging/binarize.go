package imaging

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// Binary images produced by this package store foreground as 255 and
// background as 0, with bounds starting at (0,0).
const (
	Foreground uint8 = 255
	Background uint8 = 0
)

// BinarizeOptions controls the conversion of a photo into a binary image.
type BinarizeOptions struct {
	// BlurRadius is the Gaussian blur radius applied before thresholding.
	// Zero disables the blur.
	BlurRadius float64

	// BlockSize is the side of the square neighbourhood used to compute the
	// local mean. Even values are rounded up to the next odd value.
	BlockSize int

	// C is subtracted from the local mean before comparing.
	C int
}

// Binarize converts an image to a binary image where dark ink on light
// paper becomes foreground.
//
// The pipeline is grayscale → optional Gaussian blur → adaptive mean
// threshold (see AdaptiveThreshold). The result always has bounds starting
// at (0,0) and the same size as img.
func Binarize(img image.Image, opts BinarizeOptions) *image.Gray {
	var src image.Image = effect.Grayscale(img)
	if opts.BlurRadius > 0 {
		src = blur.Gaussian(src, opts.BlurRadius)
	}
	return AdaptiveThreshold(toGray(src), opts.BlockSize, opts.C)
}

// toGray copies img into an *image.Gray with bounds starting at (0,0).
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// AdaptiveThreshold applies a locally-adaptive mean threshold.
//
// A pixel becomes Foreground when its value is at or below the mean of the
// blockSize×blockSize neighbourhood minus c, otherwise Background. Near the
// image border the neighbourhood is clipped to the image. Uniform regions
// are always background, whatever their brightness.
//
// Means come from an integral image, so the cost is independent of
// blockSize.
func AdaptiveThreshold(gray *image.Gray, blockSize, c int) *image.Gray {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	result := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return result
	}

	if blockSize < 3 {
		blockSize = 3
	}
	if blockSize%2 == 0 {
		blockSize++
	}
	radius := blockSize / 2

	// integral[(y)*(width+1)+x] holds the sum of pixels above and left of (x,y)
	stride := width + 1
	integral := make([]int64, stride*(height+1))
	for y := 0; y < height; y++ {
		row := gray.Pix[gray.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		var rowSum int64
		for x := 0; x < width; x++ {
			rowSum += int64(row[x])
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	for y := 0; y < height; y++ {
		y0 := max(y-radius, 0)
		y1 := min(y+radius+1, height)
		row := gray.Pix[gray.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < width; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius+1, width)
			sum := integral[y1*stride+x1] - integral[y0*stride+x1] - integral[y1*stride+x0] + integral[y0*stride+x0]
			n := int64((y1 - y0) * (x1 - x0))

			// src <= sum/n - c, kept in integers
			if int64(row[x])*n <= sum-int64(c)*n {
				result.Pix[y*result.Stride+x] = Foreground
			}
		}
	}

	return result
}

// ThresholdInverted binarizes with a single global level after inverting
// the image, so pixels darker than 255-level become Foreground. It suits
// clean scans of isolated glyphs where adaptive thresholding is not needed.
func ThresholdInverted(img image.Image, level uint8) *image.Gray {
	return segment.Threshold(effect.Invert(img), level)
}

// Invert swaps foreground and background of a binary image.
func Invert(bin *image.Gray) *image.Gray {
	return segment.Threshold(effect.Invert(bin), 128)
}
