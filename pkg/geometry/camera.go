package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig describes a camera by its eye position and image size
type CameraConfig struct {
	From        core.Tuple // Eye position
	To          core.Tuple // Point the camera looks at
	Up          core.Tuple // Approximate up direction
	Width       int        // Image width in pixels
	Height      int        // Image height in pixels
	FieldOfView float64    // Horizontal or vertical field of view in radians, whichever is larger
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.From != (core.Tuple{}) {
		result.From = override.From
	}
	if override.To != (core.Tuple{}) {
		result.To = override.To
	}
	if override.Up != (core.Tuple{}) {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.FieldOfView != 0 {
		result.FieldOfView = override.FieldOfView
	}
	return result
}

// Camera maps pixels of a canvas onto rays in world space. The canvas sits
// one unit in front of the eye, which is at the camera-space origin
// looking toward -z.
type Camera struct {
	HSize       int
	VSize       int
	FieldOfView float64

	transform  core.Matrix
	inverse    core.Matrix
	invErr     error
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera with an identity view transform
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		transform:   core.Identity(),
		inverse:     core.Identity(),
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)
	return c
}

// NewCameraFromConfig creates a camera positioned by a view transform
func NewCameraFromConfig(config CameraConfig) *Camera {
	c := NewCamera(config.Width, config.Height, config.FieldOfView)
	c.SetTransform(core.ViewTransform(config.From, config.To, config.Up))
	return c
}

// Transform returns the view transform
func (c *Camera) Transform() core.Matrix { return c.transform }

// SetTransform sets the view transform and caches its inverse
func (c *Camera) SetTransform(m core.Matrix) {
	c.transform = m
	c.inverse, c.invErr = m.Inverse()
}

// PixelSize returns the world-space size of one pixel on the canvas
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// HalfWidth returns half the canvas width in world units
func (c *Camera) HalfWidth() float64 { return c.halfWidth }

// HalfHeight returns half the canvas height in world units
func (c *Camera) HalfHeight() float64 { return c.halfHeight }

// Validate reports whether rays can be generated from this camera
func (c *Camera) Validate() error {
	if c.HSize <= 0 || c.VSize <= 0 {
		return fmt.Errorf("camera size %dx%d must be positive", c.HSize, c.VSize)
	}
	if c.invErr != nil {
		return fmt.Errorf("camera transform: %w", c.invErr)
	}
	return nil
}

// RayForPixel returns the world-space ray through the center of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) (core.Ray, error) {
	if c.invErr != nil {
		return core.Ray{}, fmt.Errorf("camera transform: %w", c.invErr)
	}

	// Offset from the canvas edge to the pixel center
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// Camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.Point(worldX, worldY, -1))
	origin := c.inverse.MultiplyTuple(core.Point(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction), nil
}
