package detection

import (
	"image"
	"math"
	"sort"
)

// Segment is a straight line segment found in a binary image.
type Segment struct {
	Start image.Point `json:"start"`
	End   image.Point `json:"end"`

	// Votes is the Hough accumulator count of the line the segment lies on.
	Votes int `json:"votes"`
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	dx := float64(s.End.X - s.Start.X)
	dy := float64(s.End.Y - s.Start.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// HoughParams controls segment detection.
type HoughParams struct {
	// Threshold is the minimum accumulator vote count for a candidate line.
	Threshold int

	// MinLineLength discards segments shorter than this many pixels.
	MinLineLength int

	// MaxLineGap is the largest run of background pixels bridged when
	// following a line; longer gaps split it into separate segments.
	MaxLineGap int
}

const numAngles = 180

// DetectSegments finds line segments in a binary image with a Hough
// transform at 1 pixel / 1 degree resolution.
//
// # Algorithm
//
//  1. Every foreground pixel votes for all (rho, theta) lines through it,
//     with rho = x*cos(theta) + y*sin(theta)
//  2. Accumulator cells with at least Threshold votes that have no strictly
//     larger neighbour within ±2 rho and ±2 degrees become candidate lines;
//     the neighbourhood wraps from 179 to 0 degrees
//  3. Each candidate is walked pixel by pixel across the image; foreground
//     runs separated by at most MaxLineGap pixels are merged into segments
//  4. Segments shorter than MinLineLength are dropped
//
// Candidates are visited by descending vote count, so the result is
// deterministic for a given image. An image without lines yields an empty
// slice, never an error.
func DetectSegments(bin *image.Gray, p HoughParams) []Segment {
	bounds := bin.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return []Segment{}
	}

	mask := binaryMask(bin)

	maxDist := int(math.Ceil(math.Hypot(float64(width), float64(height))))
	numRho := 2*maxDist + 1
	accumulator := make([]int, numRho*numAngles)

	cosT := make([]float64, numAngles)
	sinT := make([]float64, numAngles)
	for theta := 0; theta < numAngles; theta++ {
		angle := float64(theta) * math.Pi / 180.0
		cosT[theta] = math.Cos(angle)
		sinT[theta] = math.Sin(angle)
	}

	// Vote in Hough space
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !mask[y*width+x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				rho := int(math.Round(float64(x)*cosT[theta] + float64(y)*sinT[theta]))
				accumulator[(rho+maxDist)*numAngles+theta]++
			}
		}
	}

	type peak struct {
		rho   int
		theta int
		votes int
	}
	peaks := make([]peak, 0)
	threshold := max(p.Threshold, 1)

	for rhoIdx := 0; rhoIdx < numRho; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			votes := accumulator[rhoIdx*numAngles+theta]
			if votes < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					nrho, nt := rhoIdx-maxDist+dr, theta+dt
					// theta wraps at 180 degrees with the sign of rho flipped
					if nt < 0 {
						nt += numAngles
						nrho = -nrho
					} else if nt >= numAngles {
						nt -= numAngles
						nrho = -nrho
					}
					nr := nrho + maxDist
					if nr < 0 || nr >= numRho {
						continue
					}
					if accumulator[nr*numAngles+nt] > votes {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: theta, votes: votes})
			}
		}
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	segments := make([]Segment, 0)
	for _, pk := range peaks {
		runs := traceLine(mask, width, height, float64(pk.rho), cosT[pk.theta], sinT[pk.theta], maxDist, p.MaxLineGap)
		for _, run := range runs {
			s := Segment{
				Start: run[0].Add(bounds.Min),
				End:   run[1].Add(bounds.Min),
				Votes: pk.votes,
			}
			if s.Length() < float64(p.MinLineLength) {
				continue
			}
			segments = append(segments, s)
		}
	}

	return segments
}

// traceLine walks the line rho = x*cos + y*sin across the image and returns
// the [start, end] points of each foreground run, bridging gaps of up to
// maxGap background pixels.
func traceLine(mask []bool, width, height int, rho, cosA, sinA float64, maxDist, maxGap int) [][2]image.Point {
	runs := make([][2]image.Point, 0)

	// Foot of the normal, then step along the line direction (-sin, cos).
	x0 := rho * cosA
	y0 := rho * sinA

	var start, last image.Point
	inRun := false
	gap := 0

	for t := -maxDist; t <= maxDist; t++ {
		x := int(math.Round(x0 - float64(t)*sinA))
		y := int(math.Round(y0 + float64(t)*cosA))
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}

		if mask[y*width+x] {
			if !inRun {
				start = image.Point{X: x, Y: y}
				inRun = true
			}
			last = image.Point{X: x, Y: y}
			gap = 0
			continue
		}

		if inRun {
			gap++
			if gap > maxGap {
				runs = append(runs, [2]image.Point{start, last})
				inRun = false
			}
		}
	}

	if inRun {
		runs = append(runs, [2]image.Point{start, last})
	}

	return runs
}

// binaryMask flattens a binary image into a row-major foreground mask.
func binaryMask(bin *image.Gray) []bool {
	bounds := bin.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	mask := make([]bool, width*height)
	for y := 0; y < height; y++ {
		row := bin.Pix[bin.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < width; x++ {
			mask[y*width+x] = IsForeground(row[x])
		}
	}
	return mask
}
