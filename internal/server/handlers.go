package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/sudoku-vision/internal/detection"
	"github.com/ironsheep/sudoku-vision/internal/imaging"
	"github.com/ironsheep/sudoku-vision/internal/recognition"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "sudoku_recognize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "sudoku_recognize":
		return s.handleSudokuRecognize(ctx, args)
	case "sudoku_locate_grid":
		return s.handleSudokuLocateGrid(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type pathArgs struct {
	Path string `json:"path"`
}

func parsePathArgs(args json.RawMessage) (string, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.Path == "" {
		return "", errors.New("path is required")
	}
	return a.Path, nil
}

// RecognizeResult is the sudoku_recognize tool output.
type RecognizeResult struct {
	// Puzzle is the grid row by row, 0 for empty cells.
	Puzzle [][]int `json:"puzzle"`

	// GridLocation is the puzzle outline in image pixels.
	GridLocation detection.BoundingBox `json:"grid_location"`

	// Filled counts recognized digits.
	Filled int `json:"filled"`

	// Text is the grid as nine lines with '.' for empty cells.
	Text string `json:"text"`

	Assignments []recognition.Assignment `json:"assignments"`
}

func (s *Server) handleSudokuRecognize(ctx context.Context, args json.RawMessage) (interface{}, error) {
	path, err := parsePathArgs(args)
	if err != nil {
		return nil, err
	}
	if s.pipeline == nil {
		return nil, errors.New("recognition pipeline not configured")
	}

	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := s.pipeline.Recognize(ctx, img)
	if err != nil {
		return nil, err
	}

	return &RecognizeResult{
		Puzzle:       res.Grid.Rows(),
		GridLocation: res.Boundary,
		Filled:       res.Grid.Filled(),
		Text:         res.Grid.String(),
		Assignments:  res.Assignments,
	}, nil
}

// LocateResult is the sudoku_locate_grid tool output.
type LocateResult struct {
	GridLocation detection.BoundingBox `json:"grid_location"`
}

func (s *Server) handleSudokuLocateGrid(args json.RawMessage) (interface{}, error) {
	path, err := parsePathArgs(args)
	if err != nil {
		return nil, err
	}
	if s.pipeline == nil {
		return nil, errors.New("recognition pipeline not configured")
	}

	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	box, err := s.pipeline.Locate(img)
	if err != nil {
		return nil, err
	}
	return &LocateResult{GridLocation: box}, nil
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	path, err := parsePathArgs(args)
	if err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, path)
}
