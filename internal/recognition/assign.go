package recognition

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/ironsheep/sudoku-vision/internal/glyph"
)

// Assignment places one glyph in one cell.
type Assignment struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Glyph int `json:"glyph"`
	Area  int `json:"overlap"`
}

// CellAssigner maps glyphs onto cells.
type CellAssigner interface {
	Assign(cells *CellGrid, glyphs []glyph.Glyph) []Assignment
}

// OverlapAssigner assigns each glyph to the cell its source box overlaps
// most.
//
// Cells are scanned in row-major order and a later cell only replaces the
// current best with a strictly larger positive overlap, so equal overlaps
// go to the earlier cell. Glyphs without positive overlap are dropped.
// When two glyphs pick the same cell the larger overlap keeps it; on equal
// overlap the lower glyph index does. Every such collision is logged as a
// warning.
type OverlapAssigner struct {
	Log zerolog.Logger
}

// best is the running maximum for one glyph.
type best struct {
	cell *GridCell
	area int
}

// Assign returns at most one assignment per cell, sorted row-major.
func (a *OverlapAssigner) Assign(cells *CellGrid, glyphs []glyph.Glyph) []Assignment {
	byCell := make(map[[2]int]Assignment, len(glyphs))

	for gi, g := range glyphs {
		var b best
		for row := range cells {
			for col := range cells[row] {
				cell := &cells[row][col]
				area := cell.Box.Intersection(g.Source)
				if area > 0 && area > b.area {
					b = best{cell: cell, area: area}
				}
			}
		}
		if b.cell == nil {
			a.Log.Debug().Int("glyph", gi).Interface("box", g.Source).Msg("glyph overlaps no cell")
			continue
		}

		key := [2]int{b.cell.Row, b.cell.Col}
		next := Assignment{Row: b.cell.Row, Col: b.cell.Col, Glyph: gi, Area: b.area}
		prev, taken := byCell[key]
		if !taken {
			byCell[key] = next
			continue
		}

		winner := prev
		if next.Area > prev.Area {
			winner = next
		}
		a.Log.Warn().
			Int("row", key[0]).
			Int("col", key[1]).
			Int("kept", winner.Glyph).
			Int("glyph_a", prev.Glyph).
			Int("area_a", prev.Area).
			Int("glyph_b", next.Glyph).
			Int("area_b", next.Area).
			Bool("tie", next.Area == prev.Area).
			Msg("two glyphs claim one cell")
		byCell[key] = winner
	}

	out := make([]Assignment, 0, len(byCell))
	for _, as := range byCell {
		out = append(out, as)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
