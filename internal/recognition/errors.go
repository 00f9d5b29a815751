package recognition

import (
	"errors"
	"fmt"
)

// ErrNoGridFound means the binarized photo contained no contour that could
// be the puzzle boundary.
var ErrNoGridFound = errors.New("no grid found")

// IncompleteGridError reports a cell count other than 81.
type IncompleteGridError struct {
	Found int
}

func (e *IncompleteGridError) Error() string {
	return fmt.Sprintf("incomplete grid: found %d cells, want 81", e.Found)
}

// Stage names a pipeline step.
type Stage string

const (
	StageBinarize Stage = "binarize"
	StageBoundary Stage = "boundary"
	StageLines    Stage = "lines"
	StageCells    Stage = "cells"
	StageGlyphs   Stage = "glyphs"
	StageAssign   Stage = "assign"
	StageClassify Stage = "classify"
)

// StageError is returned by Pipeline.Recognize for every fatal failure.
// It names the step that failed and wraps the cause, so callers can use
// errors.Is and errors.As on the underlying error.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("recognition failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// State is a position in the pipeline state machine.
type State int

const (
	StateLoaded State = iota
	StateBoundaryFound
	StateLinesSuppressed
	StateCellsBuilt
	StateGlyphsExtracted
	StateGlyphsAssigned
	StateClassified
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateLoaded:          "Loaded",
	StateBoundaryFound:   "BoundaryFound",
	StateLinesSuppressed: "LinesSuppressed",
	StateCellsBuilt:      "CellsBuilt",
	StateGlyphsExtracted: "GlyphsExtracted",
	StateGlyphsAssigned:  "GlyphsAssigned",
	StateClassified:      "Classified",
	StateDone:            "Done",
	StateFailed:          "Failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}
