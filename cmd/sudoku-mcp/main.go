package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/sudoku-vision/internal/app"
	"github.com/ironsheep/sudoku-vision/internal/config"
	"github.com/ironsheep/sudoku-vision/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := os.Getenv("SUDOKU_CONFIG")

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("sudoku-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("sudoku-mcp - MCP server that reads Sudoku puzzles from photos")
			fmt.Println()
			fmt.Println("Usage: sudoku-mcp [config.yaml]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  SUDOKU_CONFIG=path            Configuration file")
			fmt.Println("  SUDOKU_LOG_LEVEL=debug        Enable debug logging")
			fmt.Println("  SUDOKU_CLASSIFIER=knn         knn or tesseract")
			fmt.Println("  SUDOKU_DATASET_DIR=dir        Labelled digit scans for knn")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		default:
			configPath = os.Args[1]
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sudoku-mcp: %v\n", err)
		os.Exit(1)
	}

	// stdout is for MCP protocol
	a, err := app.New(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sudoku-mcp: %v\n", err)
		os.Exit(1)
	}
	a.Log.Debug().Str("version", Version).Str("built", BuildTime).Str("commit", GitCommit).Msg("sudoku MCP server starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(a.Cache, a.Pipeline, a.Log)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		a.Log.Fatal().Err(err).Msg("server error")
	}
}
