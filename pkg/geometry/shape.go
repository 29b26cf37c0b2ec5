package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrGroupNormal is returned when a surface normal is requested for a Group
var ErrGroupNormal = errors.New("groups have no surface normal")

// Shape is the capability shared by every primitive and by Group.
// Local methods work in object space; use Intersect and NormalAt for world space.
// The set of implementations is closed to this package.
type Shape interface {
	Transform() core.Matrix
	SetTransform(m core.Matrix)
	Material() material.Material
	SetMaterial(m material.Material)
	Parent() *Group

	// LocalIntersect returns the intersections of an object-space ray, sorted by t
	LocalIntersect(ray core.Ray) (Intersections, error)
	// LocalNormalAt returns the object-space normal at an object-space point
	LocalNormalAt(point core.Tuple) core.Tuple

	base() *shapeBase
}

// shapeBase holds the state common to all shapes
type shapeBase struct {
	transform core.Matrix
	inverse   core.Matrix
	invErr    error
	material  material.Material
	parent    *Group // lookup only, the group owns the child
}

func newShapeBase() shapeBase {
	return shapeBase{
		transform: core.Identity(),
		inverse:   core.Identity(),
		material:  material.DefaultMaterial(),
	}
}

func (b *shapeBase) base() *shapeBase { return b }

// Transform returns the object-to-parent transform
func (b *shapeBase) Transform() core.Matrix { return b.transform }

// SetTransform sets the transform and caches its inverse. A singular
// transform is not rejected here; it is reported by every operation that
// needs the inverse.
func (b *shapeBase) SetTransform(m core.Matrix) {
	b.transform = m
	b.inverse, b.invErr = m.Inverse()
}

// Material returns the surface material
func (b *shapeBase) Material() material.Material { return b.material }

// SetMaterial replaces the surface material
func (b *shapeBase) SetMaterial(m material.Material) { b.material = m }

// Parent returns the owning group, or nil for a top-level shape
func (b *shapeBase) Parent() *Group { return b.parent }

func (b *shapeBase) inverseTransform() (core.Matrix, error) {
	if b.invErr != nil {
		return core.Matrix{}, fmt.Errorf("shape transform %v: %w", b.transform, b.invErr)
	}
	return b.inverse, nil
}

// Intersect converts a world ray into the shape's object space and
// intersects it with the shape
func Intersect(s Shape, ray core.Ray) (Intersections, error) {
	inv, err := s.base().inverseTransform()
	if err != nil {
		return nil, err
	}
	return s.LocalIntersect(ray.Transform(inv))
}

// WorldToObject converts a world-space point into the shape's object space,
// applying every ancestor's inverse transform from the root down
func WorldToObject(s Shape, point core.Tuple) (core.Tuple, error) {
	if parent := s.Parent(); parent != nil {
		var err error
		if point, err = WorldToObject(parent, point); err != nil {
			return core.Tuple{}, err
		}
	}
	inv, err := s.base().inverseTransform()
	if err != nil {
		return core.Tuple{}, err
	}
	return inv.MultiplyTuple(point), nil
}

// NormalToWorld converts an object-space normal into world space using the
// inverse transpose of each transform from the shape up to the root
func NormalToWorld(s Shape, normal core.Tuple) (core.Tuple, error) {
	inv, err := s.base().inverseTransform()
	if err != nil {
		return core.Tuple{}, err
	}
	normal = inv.Transpose().MultiplyTuple(normal)
	normal.W = 0
	normal = normal.Normalize()

	if parent := s.Parent(); parent != nil {
		return NormalToWorld(parent, normal)
	}
	return normal, nil
}

// NormalAt returns the world-space surface normal at a world-space point
func NormalAt(s Shape, worldPoint core.Tuple) (core.Tuple, error) {
	if _, ok := s.(*Group); ok {
		return core.Tuple{}, ErrGroupNormal
	}
	localPoint, err := WorldToObject(s, worldPoint)
	if err != nil {
		return core.Tuple{}, err
	}
	return NormalToWorld(s, s.LocalNormalAt(localPoint))
}

// PatternAtShape samples a pattern at a world-space point on a shape.
// The point passes through the shape's transforms and then the pattern's own.
func PatternAtShape(pattern *material.Pattern, s Shape, worldPoint core.Tuple) (core.Color, error) {
	objectPoint, err := WorldToObject(s, worldPoint)
	if err != nil {
		return core.Color{}, err
	}
	return pattern.ColorAt(objectPoint)
}

// SurfaceColor returns the pattern color at a world-space point when the
// shape's material has a pattern, otherwise the flat material color
func SurfaceColor(s Shape, worldPoint core.Tuple) (core.Color, error) {
	m := s.Material()
	if m.Pattern == nil {
		return m.Color, nil
	}
	return PatternAtShape(m.Pattern, s, worldPoint)
}
