package recognition

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/sudoku-vision/internal/detection"
	"github.com/ironsheep/sudoku-vision/internal/glyph"
	"github.com/ironsheep/sudoku-vision/internal/imaging"
)

// Classifier labels a glyph with a digit in 0..9.
//
// Predict must be safe for concurrent use once Ready returns nil.
type Classifier interface {
	Ready() error
	Predict(g glyph.Glyph) (int, error)
}

// SudokuGrid is the recognized puzzle, row 0 at the top and column 0 at
// the left. Zero marks an empty cell.
type SudokuGrid [9][9]int

// Rows returns the grid as nested slices, the shape solvers and JSON
// clients expect.
func (g SudokuGrid) Rows() [][]int {
	rows := make([][]int, 9)
	for r := range g {
		rows[r] = append([]int(nil), g[r][:]...)
	}
	return rows
}

// Filled counts non-empty cells.
func (g SudokuGrid) Filled() int {
	n := 0
	for r := range g {
		for c := range g[r] {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// String renders the grid as nine lines of digits, '.' for empty cells.
func (g SudokuGrid) String() string {
	var sb strings.Builder
	for r := range g {
		for c := range g[r] {
			if g[r][c] == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('0' + g[r][c]))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Result is everything a successful run produced.
type Result struct {
	Grid SudokuGrid `json:"puzzle"`

	// Boundary is the puzzle outline in source image coordinates.
	Boundary detection.BoundingBox `json:"grid_location"`

	Cells       *CellGrid     `json:"-"`
	Glyphs      []glyph.Glyph `json:"-"`
	Assignments []Assignment  `json:"assignments"`
	State       State         `json:"-"`
}

// Pipeline chains the recognition stages. Every stage is an interface so
// callers and tests can substitute their own.
type Pipeline struct {
	cfg        Config
	locator    BoundaryLocator
	suppressor LineSuppressor
	cells      CellGridBuilder
	glyphs     GlyphExtractor
	assigner   CellAssigner
	classifier Classifier
	log        zerolog.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithBoundaryLocator replaces the boundary stage.
func WithBoundaryLocator(l BoundaryLocator) Option {
	return func(p *Pipeline) { p.locator = l }
}

// WithLineSuppressor replaces the line suppression stage.
func WithLineSuppressor(s LineSuppressor) Option {
	return func(p *Pipeline) { p.suppressor = s }
}

// WithCellGridBuilder replaces the cell stage.
func WithCellGridBuilder(b CellGridBuilder) Option {
	return func(p *Pipeline) { p.cells = b }
}

// WithGlyphExtractor replaces the glyph stage.
func WithGlyphExtractor(e GlyphExtractor) Option {
	return func(p *Pipeline) { p.glyphs = e }
}

// WithCellAssigner replaces the assignment stage.
func WithCellAssigner(a CellAssigner) Option {
	return func(p *Pipeline) { p.assigner = a }
}

// New builds a pipeline with the contour-based stages configured from cfg.
func New(cfg Config, classifier Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:        cfg,
		locator:    ContourLocator{},
		suppressor: NewMorphologySuppressor(cfg),
		cells:      NewContourCellBuilder(cfg),
		glyphs:     NewContourGlyphExtractor(cfg),
		classifier: classifier,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.assigner == nil {
		p.assigner = &OverlapAssigner{Log: p.log}
	}
	return p
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Ready reports whether the classifier can predict.
func (p *Pipeline) Ready() error {
	return p.classifier.Ready()
}

// Locate runs only the boundary stage, returning the outline in source
// image coordinates.
func (p *Pipeline) Locate(img image.Image) (detection.BoundingBox, error) {
	if img == nil || img.Bounds().Empty() {
		return detection.BoundingBox{}, &StageError{Stage: StageBinarize, Err: fmt.Errorf("empty image")}
	}
	bin := imaging.Binarize(img, p.cfg.BinarizeOptions())
	b, err := p.locator.Locate(bin)
	if err != nil {
		return detection.BoundingBox{}, &StageError{Stage: StageBoundary, Err: err}
	}
	return offset(b.Box, img.Bounds().Min), nil
}

// Recognize runs every stage in order and returns the recognized grid.
//
// Any fatal condition stops the run and is returned as a *StageError; no
// partial result is returned. ctx is checked between stages and by the
// classification workers.
func (p *Pipeline) Recognize(ctx context.Context, img image.Image) (*Result, error) {
	res := &Result{State: StateLoaded}
	fail := func(stage Stage, err error) (*Result, error) {
		p.log.Error().Err(err).Str("stage", string(stage)).Stringer("state", res.State).Msg("recognition failed")
		res.State = StateFailed
		return nil, &StageError{Stage: stage, Err: err}
	}
	advance := func(next State) {
		res.State = next
		p.log.Debug().Stringer("state", next).Msg("stage complete")
	}

	if img == nil || img.Bounds().Empty() {
		return fail(StageBinarize, fmt.Errorf("empty image"))
	}
	bin := imaging.Binarize(img, p.cfg.BinarizeOptions())

	if err := ctx.Err(); err != nil {
		return fail(StageBoundary, err)
	}
	boundary, err := p.locator.Locate(bin)
	if err != nil {
		return fail(StageBoundary, err)
	}
	res.Boundary = offset(boundary.Box, img.Bounds().Min)
	advance(StateBoundaryFound)

	if err := ctx.Err(); err != nil {
		return fail(StageLines, err)
	}
	suppressed := p.suppressor.Suppress(boundary.Crop)
	advance(StateLinesSuppressed)

	if err := ctx.Err(); err != nil {
		return fail(StageCells, err)
	}
	cells, err := p.cells.Build(boundary.Crop)
	if err != nil {
		return fail(StageCells, err)
	}
	res.Cells = cells
	advance(StateCellsBuilt)

	if err := ctx.Err(); err != nil {
		return fail(StageGlyphs, err)
	}
	res.Glyphs = p.glyphs.Extract(suppressed, boundary.Crop)
	p.log.Debug().Int("glyphs", len(res.Glyphs)).Msg("glyphs extracted")
	advance(StateGlyphsExtracted)

	res.Assignments = p.assigner.Assign(cells, res.Glyphs)
	advance(StateGlyphsAssigned)

	grid, err := p.classify(ctx, res.Glyphs, res.Assignments)
	if err != nil {
		return fail(StageClassify, err)
	}
	res.Grid = grid
	advance(StateClassified)

	advance(StateDone)
	p.log.Info().Int("filled", grid.Filled()).Interface("boundary", res.Boundary).Msg("puzzle recognized")
	return res, nil
}

// classify predicts every assigned glyph on a bounded worker pool. Each
// assignment owns a distinct cell, so workers write the grid without
// locking.
func (p *Pipeline) classify(ctx context.Context, glyphs []glyph.Glyph, assignments []Assignment) (SudokuGrid, error) {
	var grid SudokuGrid
	if p.classifier == nil {
		return grid, fmt.Errorf("no classifier configured")
	}
	if err := p.classifier.Ready(); err != nil {
		return grid, err
	}

	workers := p.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, as := range assignments {
		as := as
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			digit, err := p.classifier.Predict(glyphs[as.Glyph])
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", as.Row, as.Col, err)
			}
			if digit < 0 || digit > 9 {
				return fmt.Errorf("cell (%d,%d): classifier returned %d", as.Row, as.Col, digit)
			}
			grid[as.Row][as.Col] = digit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SudokuGrid{}, err
	}
	return grid, nil
}

func offset(b detection.BoundingBox, origin image.Point) detection.BoundingBox {
	b.X += origin.X
	b.Y += origin.Y
	return b
}
