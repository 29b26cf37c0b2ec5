package canvas

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// WritePNG encodes the canvas as a PNG image
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.ToImage()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Decode reads a PNG image into a canvas with channels in [0, 1]
func Decode(r io.Reader) (*Canvas, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return fromImage(img), nil
}

// LoadPNG reads a PNG file into a canvas
func LoadPNG(filename string) (*Canvas, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

func fromImage(img image.Image) *Canvas {
	bounds := img.Bounds()
	c := New(bounds.Dx(), bounds.Dy())

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			c.WritePixel(x, y, core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			))
		}
	}
	return c
}
