package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Event types streamed to clients
const (
	EventConsole  = "console"
	EventTile     = "tile"
	EventError    = "error"
	EventComplete = "complete"
)

// RenderEvent is one message of a render stream
type RenderEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// TileUpdate represents a single finished tile
type TileUpdate struct {
	TileX          int    `json:"tileX"` // Tile coordinates (not pixel coordinates)
	TileY          int    `json:"tileY"`
	X              int    `json:"x"` // Pixel position of the tile's top-left corner
	Y              int    `json:"y"`
	ImageData      string `json:"imageData"` // Base64 encoded PNG of just this tile
	TilesCompleted int    `json:"tilesCompleted"`
	TotalTiles     int    `json:"totalTiles"`
}

// Stats represents render statistics
type Stats struct {
	Width       int   `json:"width"`
	Height      int   `json:"height"`
	TotalPixels int   `json:"totalPixels"`
	TotalTiles  int   `json:"totalTiles"`
	MaxDepth    int   `json:"maxDepth"`
	Workers     int   `json:"workers"`
	ElapsedMs   int64 `json:"elapsedMs"`
}

// CompleteUpdate carries the final image and statistics
type CompleteUpdate struct {
	Scene     string `json:"scene"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// ErrorUpdate reports a failed render
type ErrorUpdate struct {
	Message string `json:"message"`
}

// startRender validates the request and renders in the background.
// The returned channel is closed after the final complete or error event.
// Cancelling ctx stops the render.
func (s *Server) startRender(ctx context.Context, req *RenderRequest) <-chan RenderEvent {
	events := make(chan RenderEvent, 100)

	send := func(e RenderEvent) {
		select {
		case events <- e:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(events)

		// Setup console logging and streaming
		consoleChan := make(chan ConsoleMessage, 50)
		renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
		logger := NewWebLogger(renderID, consoleChan)
		consoleDone := make(chan struct{})
		go func() {
			defer close(consoleDone)
			for msg := range consoleChan {
				send(RenderEvent{Type: EventConsole, Data: msg})
			}
		}()

		complete, err := s.render(ctx, req, logger, func(update TileUpdate) {
			send(RenderEvent{Type: EventTile, Data: update})
		})

		close(consoleChan)
		<-consoleDone

		if err != nil {
			send(RenderEvent{Type: EventError, Data: ErrorUpdate{Message: err.Error()}})
			return
		}
		send(RenderEvent{Type: EventComplete, Data: complete})
	}()

	return events
}

// render runs one render and reports each finished tile
func (s *Server) render(ctx context.Context, req *RenderRequest, logger core.Logger, onTile func(TileUpdate)) (CompleteUpdate, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return CompleteUpdate{}, err
	}
	logger.Printf("Rendering scene %s\n", sceneObj.Name)

	rt := renderer.NewRaytracer(renderer.Config{
		MaxDepth:   req.MaxDepth,
		TileSize:   DefaultTileSize,
		NumWorkers: req.Workers,
	}, logger)

	img, stats, err := rt.RenderWithProgress(ctx, sceneObj.Camera, sceneObj.World, func(result renderer.TileCompletionResult) {
		tileData, err := imageToBase64PNG(result.TileImage)
		if err != nil {
			log.Printf("Error encoding tile image (%d, %d): %v", result.Tile.Column, result.Tile.Row, err)
			return
		}
		onTile(TileUpdate{
			TileX:          result.Tile.Column,
			TileY:          result.Tile.Row,
			X:              result.Tile.Bounds.Min.X,
			Y:              result.Tile.Bounds.Min.Y,
			ImageData:      tileData,
			TilesCompleted: result.TilesCompleted,
			TotalTiles:     result.TotalTiles,
		})
	})
	if err != nil {
		return CompleteUpdate{}, fmt.Errorf("rendering failed: %w", err)
	}

	imageData, err := imageToBase64PNG(img.ToImage())
	if err != nil {
		return CompleteUpdate{}, fmt.Errorf("failed to encode image: %w", err)
	}

	return CompleteUpdate{
		Scene:     sceneObj.Name,
		ImageData: imageData,
		Stats: Stats{
			Width:       stats.Width,
			Height:      stats.Height,
			TotalPixels: stats.TotalPixels,
			TotalTiles:  stats.TotalTiles,
			MaxDepth:    stats.MaxDepth,
			Workers:     stats.Workers,
			ElapsedMs:   stats.Elapsed.Milliseconds(),
		},
	}, nil
}

// handleRender streams a render as Server-Sent Events
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)

	req, err := parseRenderRequest(r)
	if err != nil {
		writeSSEEvent(w, RenderEvent{Type: EventError, Data: ErrorUpdate{Message: fmt.Sprintf("Invalid request: %v", err)}})
		return
	}

	for event := range s.startRender(r.Context(), req) {
		if err := writeSSEEvent(w, event); err != nil {
			// Client disconnected, the request context stops the render
			return
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvent writes one event with a JSON payload and flushes it
func writeSSEEvent(w http.ResponseWriter, event RenderEvent) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
