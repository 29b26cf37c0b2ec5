package renderer

import (
	"context"
	"fmt"
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	camera     *geometry.Camera
	world      *scene.World
	integrator integrator.Integrator
	maxDepth   int
}

// NewTileRenderer creates a new tile renderer for one camera and world
func NewTileRenderer(camera *geometry.Camera, world *scene.World, integratorInst integrator.Integrator, maxDepth int) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		maxDepth:   maxDepth,
	}
}

// RenderTileBounds renders pixels within the specified bounds into the canvas.
// Each pixel is written by exactly one tile, so tiles may render concurrently.
// The context is checked between pixels.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, out *canvas.Canvas) error {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := tr.renderPixel(x, y, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func (tr *TileRenderer) renderPixel(x, y int, out *canvas.Canvas) error {
	ray, err := tr.camera.RayForPixel(x, y)
	if err != nil {
		return fmt.Errorf("pixel (%d, %d): %w", x, y, err)
	}
	color, err := tr.integrator.RayColor(ray, tr.world, tr.maxDepth)
	if err != nil {
		return fmt.Errorf("pixel (%d, %d): %w", x, y, err)
	}
	out.WritePixel(x, y, color)
	return nil
}
