package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Canvas is a fixed-size grid of colors. Writes to distinct pixels may
// happen concurrently.
type Canvas struct {
	width  int
	height int
	pixels []core.Color
}

// New creates a black canvas
func New(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
	}
}

// Width returns the canvas width in pixels
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) index(x, y int) int {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		panic(fmt.Sprintf("canvas: pixel (%d, %d) outside %dx%d", x, y, c.width, c.height))
	}
	return y*c.width + x
}

// WritePixel sets the color at column x, row y
func (c *Canvas) WritePixel(x, y int, col core.Color) {
	c.pixels[c.index(x, y)] = col
}

// PixelAt returns the color at column x, row y
func (c *Canvas) PixelAt(x, y int) core.Color {
	return c.pixels[c.index(x, y)]
}

// ToImage converts the canvas to 8-bit RGBA, clamping each channel to [0, 1]
func (c *Canvas) ToImage() *image.RGBA {
	return c.RegionImage(image.Rect(0, 0, c.width, c.height))
}

// RegionImage converts the part of the canvas inside r to an RGBA image whose
// origin is at r.Min. The region is clipped to the canvas.
func (c *Canvas) RegionImage(r image.Rectangle) *image.RGBA {
	r = r.Intersect(image.Rect(0, 0, c.width, c.height))
	img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := c.PixelAt(x, y)
			img.SetRGBA(x-r.Min.X, y-r.Min.Y, color.RGBA{
				R: toByte(p.R),
				G: toByte(p.G),
				B: toByte(p.B),
				A: 255,
			})
		}
	}
	return img
}

// toByte scales a channel to 0..255 with rounding and clamping
func toByte(v float64) uint8 {
	scaled := math.Round(v * 255)
	if scaled < 0 || math.IsNaN(scaled) {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
