// Package httpapi serves the recognition pipeline over HTTP.
//
// POST /recognize takes a multipart form with the photo in the "file"
// field and answers with the puzzle and its location in the photo:
//
//	{"puzzle": [[5,0,0,...], ...], "grid_location": {"x":8,"y":8,"width":435,"height":435}}
//
// GET /healthz reports whether the classifier is trained.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ironsheep/sudoku-vision/internal/detection"
	"github.com/ironsheep/sudoku-vision/internal/imaging"
	"github.com/ironsheep/sudoku-vision/internal/recognition"
)

// MaxUploadBytes bounds the multipart memory used per request.
const MaxUploadBytes = 16 << 20

// RecognizeResponse is the body of a successful POST /recognize.
type RecognizeResponse struct {
	Puzzle       [][]int               `json:"puzzle"`
	GridLocation detection.BoundingBox `json:"grid_location"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Stage   string `json:"stage,omitempty"`
}

// Handler serves the recognition endpoints.
type Handler struct {
	pipeline *recognition.Pipeline
	log      zerolog.Logger
}

// NewHandler returns a handler backed by pipeline.
func NewHandler(pipeline *recognition.Pipeline, log zerolog.Logger) *Handler {
	return &Handler{pipeline: pipeline, log: log}
}

// NewRouter builds the gin engine with request logging and panic recovery.
func NewRouter(pipeline *recognition.Pipeline, log zerolog.Logger) *gin.Engine {
	e := gin.New()
	e.MaxMultipartMemory = MaxUploadBytes
	e.Use(gin.Recovery(), requestLogger(log))

	h := NewHandler(pipeline, log)
	e.POST("/recognize", h.Recognize)
	e.GET("/healthz", h.Health)
	return e
}

// Recognize decodes the uploaded photo and runs the pipeline on it.
func (h *Handler) Recognize(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read form file", Message: err.Error()})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to open form file", Message: err.Error()})
		return
	}
	defer f.Close()

	img, err := imaging.Decode(f, file.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to decode image", Message: err.Error()})
		return
	}

	res, err := h.pipeline.Recognize(c.Request.Context(), img)
	if err != nil {
		h.log.Warn().Err(err).Str("file", file.Filename).Msg("recognize image")
		c.JSON(recognizeStatus(err), recognizeError(err))
		return
	}

	c.JSON(http.StatusOK, RecognizeResponse{
		Puzzle:       res.Grid.Rows(),
		GridLocation: res.Boundary,
	})
}

// Health answers 200 when the classifier is ready and 503 otherwise.
func (h *Handler) Health(c *gin.Context) {
	if err := h.pipeline.Ready(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// recognizeStatus maps a pipeline failure to an HTTP status. Problems with
// the photo are 422 and an unusable classifier is 503.
func recognizeStatus(err error) int {
	var se *recognition.StageError
	if !errors.As(err, &se) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusInternalServerError
	}
	if se.Stage == recognition.StageClassify {
		return http.StatusServiceUnavailable
	}
	return http.StatusUnprocessableEntity
}

func recognizeError(err error) ErrorResponse {
	resp := ErrorResponse{Error: "Failed to recognize", Message: err.Error()}
	var se *recognition.StageError
	if errors.As(err, &se) {
		resp.Stage = string(se.Stage)
	}
	return resp
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
