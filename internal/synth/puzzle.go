package synth

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Cell addresses one of the 81 puzzle cells.
type Cell struct {
	Row, Col int
}

// Puzzle describes a synthetic Sudoku photo: a square canvas with a 9×9
// grid of dark lines and optional digits.
type Puzzle struct {
	// Size is the side of the square canvas.
	Size int

	// Origin is the centre of the top and left outer grid lines.
	Origin int

	// Pitch is the distance between consecutive grid lines.
	Pitch int

	// LineWidth is the thickness of every grid line.
	LineWidth int

	// Digits maps cells to the digit drawn in them.
	Digits map[Cell]int

	// Obscured cells are covered with dense horizontal ink stripes, so
	// they no longer read as a single cell.
	Obscured []Cell

	// Face renders the digits; required when Digits is not empty.
	Face font.Face
}

// DefaultPuzzle returns a 450×450 puzzle with a clean grid and no digits.
func DefaultPuzzle(face font.Face) Puzzle {
	return Puzzle{
		Size:      450,
		Origin:    9,
		Pitch:     48,
		LineWidth: 3,
		Digits:    map[Cell]int{},
		Face:      face,
	}
}

// LinePos returns the centre coordinate of grid line k, 0 ≤ k ≤ 9.
func (p Puzzle) LinePos(k int) int {
	return p.Origin + k*p.Pitch
}

// CellRect returns the paper region of a cell between its grid lines.
func (p Puzzle) CellRect(c Cell) image.Rectangle {
	half := p.LineWidth / 2
	x0 := p.LinePos(c.Col) - half + p.LineWidth
	y0 := p.LinePos(c.Row) - half + p.LineWidth
	x1 := p.LinePos(c.Col+1) - half
	y1 := p.LinePos(c.Row+1) - half
	return image.Rect(x0, y0, x1, y1)
}

// CellCenter returns the centre of a cell.
func (p Puzzle) CellCenter(c Cell) image.Point {
	r := p.CellRect(c)
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// Render draws the puzzle.
func (p Puzzle) Render() *image.Gray {
	img := Paper(p.Size, p.Size)
	ink := color.Gray{Y: 0}
	half := p.LineWidth / 2
	start := p.LinePos(0) - half
	end := p.LinePos(9) - half + p.LineWidth

	for k := 0; k <= 9; k++ {
		pos := p.LinePos(k) - half
		fill(img, image.Rect(pos, start, pos+p.LineWidth, end), ink)
		fill(img, image.Rect(start, pos, end, pos+p.LineWidth), ink)
	}

	for cell, digit := range p.Digits {
		DrawDigit(img, p.Face, digit, p.CellCenter(cell))
	}

	for _, cell := range p.Obscured {
		r := p.CellRect(cell)
		for y := r.Min.Y + 2; y < r.Max.Y; y += 8 {
			fill(img, image.Rect(r.Min.X, y, r.Max.X, min(y+3, r.Max.Y)), ink)
		}
	}

	return img
}

func fill(img *image.Gray, r image.Rectangle, c color.Gray) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, c)
		}
	}
}
