package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Common refractive indices
const (
	IndexVacuum  = 1.0
	IndexAir     = 1.00029
	IndexWater   = 1.333
	IndexGlass   = 1.5
	IndexDiamond = 2.417
)

// Material describes how a surface responds to light using the Phong
// reflection model plus reflection and refraction coefficients
type Material struct {
	Color           core.Color // Base color, ignored when Pattern is set
	Ambient         float64    // Ambient reflection coefficient
	Diffuse         float64    // Diffuse reflection coefficient
	Specular        float64    // Specular reflection coefficient
	Shininess       float64    // Specular exponent
	Reflective      float64    // 0 = matte, 1 = perfect mirror
	Transparency    float64    // 0 = opaque, 1 = fully transparent
	RefractiveIndex float64    // Index of the medium inside the surface
	Pattern         *Pattern   // Optional procedural color, nil for flat color
}

// DefaultMaterial returns a white, moderately shiny, opaque material
func DefaultMaterial() Material {
	return Material{
		Color:           core.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: IndexVacuum,
	}
}

// NewGlass returns a fully transparent material with the refractive index of glass
func NewGlass() Material {
	m := DefaultMaterial()
	m.Transparency = 1
	m.RefractiveIndex = IndexGlass
	return m
}

// IsReflective reports whether the material contributes reflected light
func (m Material) IsReflective() bool {
	return m.Reflective > 0
}

// IsTransparent reports whether the material contributes refracted light
func (m Material) IsTransparent() bool {
	return m.Transparency > 0
}
