package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrNoObjects is returned when validating a world with nothing to render
var ErrNoObjects = errors.New("world has no objects")

// World is the set of objects and the light a camera renders
type World struct {
	Objects []geometry.Shape
	Light   *lights.PointLight // nil for an unlit world
}

// NewWorld creates an empty world with no light
func NewWorld() *World {
	return &World{}
}

// DefaultWorld creates the two-sphere world lit from the upper left
func DefaultWorld() *World {
	outer := geometry.NewSphere()
	m := material.DefaultMaterial()
	m.Color = core.NewColor(0.8, 1.0, 0.6)
	m.Diffuse = 0.7
	m.Specular = 0.2
	outer.SetMaterial(m)

	inner := geometry.NewSphere()
	inner.SetTransform(core.Scaling(0.5, 0.5, 0.5))

	return &World{
		Objects: []geometry.Shape{outer, inner},
		Light:   lights.NewPointLight(core.Point(-10, 10, -10), core.White),
	}
}

// Add appends top-level objects
func (w *World) Add(shapes ...geometry.Shape) {
	w.Objects = append(w.Objects, shapes...)
}

// Contains reports whether a shape is in the world, either at the top level
// or inside one of its groups
func (w *World) Contains(s geometry.Shape) bool {
	for _, object := range w.Objects {
		if containsShape(object, s) {
			return true
		}
	}
	return false
}

func containsShape(root, s geometry.Shape) bool {
	if root == s {
		return true
	}
	if g, ok := root.(*geometry.Group); ok {
		for _, child := range g.Children() {
			if containsShape(child, s) {
				return true
			}
		}
	}
	return false
}

// Intersect returns every intersection of the ray with the world, sorted by t
func (w *World) Intersect(ray core.Ray) (geometry.Intersections, error) {
	var xs geometry.Intersections
	for _, object := range w.Objects {
		objectXs, err := geometry.Intersect(object, ray)
		if err != nil {
			return nil, err
		}
		xs = append(xs, objectXs...)
	}
	xs.Sort()
	return xs, nil
}

// IsShadowed reports whether an object lies between point and the light
func (w *World) IsShadowed(point core.Tuple) (bool, error) {
	if w.Light == nil {
		return false, nil
	}

	v := w.Light.Position.Subtract(point)
	distance := v.Magnitude()
	ray := core.NewRay(point, v.Normalize())

	xs, err := w.Intersect(ray)
	if err != nil {
		return false, err
	}
	hit, ok := xs.Hit()
	return ok && hit.T < distance, nil
}

// Validate checks that the world has objects and that every shape and
// pattern transform in the scene graph can be inverted
func (w *World) Validate() error {
	if len(w.Objects) == 0 {
		return ErrNoObjects
	}
	for i, object := range w.Objects {
		if err := validateShape(object); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	return nil
}

func validateShape(s geometry.Shape) error {
	origin := core.Point(0, 0, 0)

	// Walks the parent chain, so one call covers every ancestor transform
	if _, err := geometry.WorldToObject(s, origin); err != nil {
		return fmt.Errorf("%T: %w", s, err)
	}
	if p := s.Material().Pattern; p != nil {
		if _, err := p.ColorAt(origin); err != nil {
			return fmt.Errorf("%T material: %w", s, err)
		}
	}

	if g, ok := s.(*geometry.Group); ok {
		for i, child := range g.Children() {
			if err := validateShape(child); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
		}
	}
	return nil
}
