package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedIntegrator implements recursive ray tracing with Phong local
// illumination, hard shadows, mirror reflection and refraction
type WhittedIntegrator struct{}

// NewWhittedIntegrator creates a Whitted integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// RayColor implements Integrator
func (wi *WhittedIntegrator) RayColor(ray core.Ray, world *scene.World, depth int) (core.Color, error) {
	return wi.ColorAt(world, ray, depth)
}

// ColorAt returns the color of the nearest visible surface along the ray,
// or black when nothing is hit
func (wi *WhittedIntegrator) ColorAt(world *scene.World, ray core.Ray, remaining int) (core.Color, error) {
	xs, err := world.Intersect(ray)
	if err != nil {
		return core.Color{}, err
	}

	hit, ok := xs.Hit()
	if !ok {
		return core.Black, nil
	}

	comps, err := geometry.PrepareComputations(hit, ray, xs)
	if err != nil {
		return core.Color{}, err
	}
	return wi.ShadeHit(world, comps, remaining)
}

// ShadeHit combines local illumination at a hit with its reflected and
// refracted contributions. Surfaces that both reflect and refract are
// blended by their Fresnel reflectance.
func (wi *WhittedIntegrator) ShadeHit(world *scene.World, comps geometry.Computations, remaining int) (core.Color, error) {
	surface, err := wi.localColor(world, comps)
	if err != nil {
		return core.Color{}, err
	}

	reflected, err := wi.ReflectedColor(world, comps, remaining)
	if err != nil {
		return core.Color{}, err
	}
	refracted, err := wi.RefractedColor(world, comps, remaining)
	if err != nil {
		return core.Color{}, err
	}

	m := comps.Object.Material()
	if m.IsReflective() && m.IsTransparent() {
		reflectance := comps.Schlick()
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance)), nil
	}
	return surface.Add(reflected).Add(refracted), nil
}

// localColor evaluates Phong lighting at the over point. Without a light
// only the ambient term of the surface color remains.
func (wi *WhittedIntegrator) localColor(world *scene.World, comps geometry.Computations) (core.Color, error) {
	m := comps.Object.Material()

	if world.Light == nil {
		color, err := geometry.SurfaceColor(comps.Object, comps.OverPoint)
		if err != nil {
			return core.Color{}, err
		}
		return color.Multiply(m.Ambient), nil
	}

	shadowed, err := world.IsShadowed(comps.OverPoint)
	if err != nil {
		return core.Color{}, err
	}
	return lights.Lighting(m, comps.Object, world.Light, comps.OverPoint, comps.EyeV, comps.NormalV, shadowed)
}

// ReflectedColor traces the mirror reflection from the over point
func (wi *WhittedIntegrator) ReflectedColor(world *scene.World, comps geometry.Computations, remaining int) (core.Color, error) {
	m := comps.Object.Material()
	if remaining <= 0 || !m.IsReflective() {
		return core.Black, nil
	}

	reflectRay := core.NewRay(comps.OverPoint, comps.ReflectV)
	color, err := wi.ColorAt(world, reflectRay, remaining-1)
	if err != nil {
		return core.Color{}, err
	}
	return color.Multiply(m.Reflective), nil
}

// RefractedColor traces the transmitted ray from the under point using
// Snell's law. Total internal reflection yields black.
func (wi *WhittedIntegrator) RefractedColor(world *scene.World, comps geometry.Computations, remaining int) (core.Color, error) {
	m := comps.Object.Material()
	if remaining <= 0 || !m.IsTransparent() {
		return core.Black, nil
	}

	nRatio := comps.N1 / comps.N2
	cosI := comps.EyeV.Dot(comps.NormalV)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black, nil
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.NormalV.Multiply(nRatio*cosI - cosT).Subtract(comps.EyeV.Multiply(nRatio))
	refractRay := core.NewRay(comps.UnderPoint, direction)

	color, err := wi.ColorAt(world, refractRay, remaining-1)
	if err != nil {
		return core.Color{}, err
	}
	return color.Multiply(m.Transparency), nil
}
