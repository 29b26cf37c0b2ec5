package renderer

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config contains configuration for rendering
type Config struct {
	MaxDepth   int // Maximum reflection/refraction recursion depth
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:   5,
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	Tile      *Tile
	TileImage *image.RGBA // Image data for just this tile

	// Progress information
	TilesCompleted int // Tiles finished so far, including this one
	TotalTiles     int
}

// Raytracer renders a world through a camera into a canvas
type Raytracer struct {
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a raytracer using the Whitted integrator.
// A nil logger discards output.
func NewRaytracer(config Config, logger core.Logger) *Raytracer {
	defaults := DefaultConfig()
	if config.TileSize <= 0 {
		config.TileSize = defaults.TileSize
	}
	if config.MaxDepth < 0 {
		config.MaxDepth = 0
	}
	if logger == nil {
		logger = discardLogger{}
	}
	return &Raytracer{
		config:     config,
		integrator: integrator.NewWhittedIntegrator(),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// Config returns the effective configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render produces one color per pixel of the camera's image plane.
// The first geometry or transform error aborts the render and is returned
// annotated with the pixel that produced it.
func (rt *Raytracer) Render(ctx context.Context, camera *geometry.Camera, world *scene.World) (*canvas.Canvas, RenderStats, error) {
	return rt.RenderWithProgress(ctx, camera, world, nil)
}

// RenderWithProgress renders like Render and calls onTile after each tile
// completes. Calls to onTile are serialized.
func (rt *Raytracer) RenderWithProgress(ctx context.Context, camera *geometry.Camera, world *scene.World, onTile func(TileCompletionResult)) (*canvas.Canvas, RenderStats, error) {
	if camera == nil {
		return nil, RenderStats{}, fmt.Errorf("render: nil camera")
	}
	if world == nil {
		return nil, RenderStats{}, fmt.Errorf("render: nil world")
	}
	if err := camera.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}

	start := time.Now()
	out := canvas.New(camera.HSize, camera.VSize)
	tiles := NewTileGrid(camera.HSize, camera.VSize, rt.config.TileSize)
	pool := NewWorkerPool(rt.config.NumWorkers)
	tileRenderer := NewTileRenderer(camera, world, rt.integrator, rt.config.MaxDepth)

	stats := RenderStats{
		Width:       camera.HSize,
		Height:      camera.VSize,
		TotalPixels: camera.HSize * camera.VSize,
		TotalTiles:  len(tiles),
		MaxDepth:    rt.config.MaxDepth,
		Workers:     pool.NumWorkers(),
	}

	rt.logger.Printf("Rendering %dx%d in %d tiles with %d workers (max depth %d)\n",
		stats.Width, stats.Height, stats.TotalTiles, stats.Workers, stats.MaxDepth)

	var mu sync.Mutex
	completed := 0
	err := pool.Run(ctx, tiles, func(ctx context.Context, tile *Tile) error {
		if err := tileRenderer.RenderTileBounds(ctx, tile.Bounds, out); err != nil {
			return err
		}
		if onTile == nil {
			return nil
		}
		tileImage := out.RegionImage(tile.Bounds)

		mu.Lock()
		defer mu.Unlock()
		completed++
		onTile(TileCompletionResult{
			Tile:           tile,
			TileImage:      tileImage,
			TilesCompleted: completed,
			TotalTiles:     len(tiles),
		})
		return nil
	})
	stats.Elapsed = time.Since(start)
	if err != nil {
		rt.logger.Printf("Render failed after %v: %v\n", stats.Elapsed, err)
		return nil, stats, err
	}

	rt.logger.Printf("Render complete: %s\n", stats)
	return out, stats, nil
}
