package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along a ray, following at most
	// depth reflective or refractive bounces
	RayColor(ray core.Ray, world *scene.World, depth int) (core.Color, error)
}
