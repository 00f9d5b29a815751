package recognition

import (
	"image"
	"sort"

	"github.com/ironsheep/sudoku-vision/internal/detection"
	"github.com/ironsheep/sudoku-vision/internal/imaging"
)

// GridCell is one of the 81 puzzle cells.
type GridCell struct {
	Row int                   `json:"row"`
	Col int                   `json:"col"`
	Box detection.BoundingBox `json:"box"`
}

// CellGrid holds the cells indexed by [row][col].
type CellGrid [9][9]GridCell

// Cells returns the cells in row-major order.
func (g *CellGrid) Cells() []GridCell {
	cells := make([]GridCell, 0, 81)
	for row := range g {
		cells = append(cells, g[row][:]...)
	}
	return cells
}

// CellGridBuilder segments the cropped puzzle into 81 ordered cells.
type CellGridBuilder interface {
	Build(crop *image.Gray) (*CellGrid, error)
}

// ContourCellBuilder finds cells as the paper regions enclosed by grid
// lines: the crop is inverted and every external contour whose box falls
// strictly inside the size window is a cell candidate.
type ContourCellBuilder struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// NewContourCellBuilder configures the builder from cfg.
func NewContourCellBuilder(cfg Config) *ContourCellBuilder {
	return &ContourCellBuilder{
		MinWidth:  cfg.CellMinWidth,
		MaxWidth:  cfg.CellMaxWidth,
		MinHeight: cfg.CellMinHeight,
		MaxHeight: cfg.CellMaxHeight,
	}
}

// Build returns an *IncompleteGridError unless exactly 81 candidates are
// found.
//
// Candidates are sorted by top edge and cut into nine consecutive rows of
// nine, then each row is sorted by left edge. Cells of one visual row
// rarely share the exact same top edge, so a single lexicographic sort
// would interleave rows. Both sorts are stable over contour scan order,
// which makes the result identical for identical input.
func (b *ContourCellBuilder) Build(crop *image.Gray) (*CellGrid, error) {
	boxes := make([]detection.BoundingBox, 0, 81)
	for _, c := range detection.FindExternalContours(imaging.Invert(crop)) {
		if b.accept(c.Box) {
			boxes = append(boxes, c.Box)
		}
	}
	if len(boxes) != 81 {
		return nil, &IncompleteGridError{Found: len(boxes)}
	}

	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].Y < boxes[j].Y
	})

	var grid CellGrid
	for row := 0; row < 9; row++ {
		band := boxes[row*9 : (row+1)*9]
		sort.SliceStable(band, func(i, j int) bool {
			return band[i].X < band[j].X
		})
		for col, box := range band {
			grid[row][col] = GridCell{Row: row, Col: col, Box: box}
		}
	}

	return &grid, nil
}

func (b *ContourCellBuilder) accept(box detection.BoundingBox) bool {
	return box.Width > b.MinWidth && box.Width < b.MaxWidth &&
		box.Height > b.MinHeight && box.Height < b.MaxHeight
}
