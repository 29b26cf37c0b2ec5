package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width       int
	Height      int
	TotalPixels int           // Total number of pixels rendered
	TotalTiles  int           // Number of tiles the image was split into
	MaxDepth    int           // Recursion limit for reflection and refraction
	Workers     int           // Number of tiles rendered concurrently
	Elapsed     time.Duration // Wall time of the render
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Elapsed.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%dx%d, %d tiles, %d workers, depth %d, %v (%.0f px/s)",
		s.Width, s.Height, s.TotalTiles, s.Workers, s.MaxDepth,
		s.Elapsed.Round(time.Millisecond), s.PixelsPerSecond())
}
