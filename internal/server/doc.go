// Package server implements the MCP (Model Context Protocol) server that
// exposes Sudoku recognition as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - sudoku_recognize: Recognize the 9×9 digit grid of a puzzle photo
//   - sudoku_locate_grid: Find only the puzzle outline
//   - image_dimensions: Get width and height of an image file
//
// # Image Caching
//
// Images are cached by path and reused across tool calls, so asking for
// the outline and then the digits of one photo decodes it once. The cache
// persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "recognition failed at cells:
//     incomplete grid: found 80 cells, want 81"
//
// # Usage
//
//	srv := server.New(app.Cache, app.Pipeline, app.Log)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
