package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/sudoku-vision/internal/app"
	"github.com/ironsheep/sudoku-vision/internal/config"
	"github.com/ironsheep/sudoku-vision/internal/httpapi"
)

// Version information - set by ldflags during build
var Version = "dev"

func main() {
	configPath := os.Getenv("SUDOKU_CONFIG")
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("sudoku-cv %s\n", Version)
			return
		case "--help", "-h", "help":
			fmt.Println("sudoku-cv - HTTP service that reads Sudoku puzzles from photos")
			fmt.Println()
			fmt.Println("Usage: sudoku-cv [config.yaml]")
			fmt.Println()
			fmt.Println("  POST /recognize   multipart form, photo in field \"file\"")
			fmt.Println("  GET  /healthz     classifier readiness")
			fmt.Println()
			fmt.Println("Listens on SUDOKU_LISTEN (default :8000).")
			return
		default:
			configPath = os.Args[1]
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sudoku-cv: %v\n", err)
		os.Exit(1)
	}
	a, err := app.New(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sudoku-cv: %v\n", err)
		os.Exit(1)
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           httpapi.NewRouter(a.Pipeline, a.Log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			a.Log.Error().Err(err).Msg("shutdown")
		}
	}()

	a.Log.Info().Str("addr", cfg.Listen).Str("version", Version).Msg("sudoku CV service listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.Log.Fatal().Err(err).Msg("run server")
	}
}
