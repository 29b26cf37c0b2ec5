package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite xz plane at y=0 in object space
type Plane struct {
	shapeBase
}

// NewPlane creates a plane with an identity transform and the default material
func NewPlane() *Plane {
	return &Plane{shapeBase: newShapeBase()}
}

// LocalIntersect returns at most one hit. Parallel and coplanar rays miss.
func (p *Plane) LocalIntersect(ray core.Ray) (Intersections, error) {
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil, nil
	}

	t := -ray.Origin.Y / ray.Direction.Y
	return Intersections{NewIntersection(t, p)}, nil
}

// LocalNormalAt is constant across the plane
func (p *Plane) LocalNormalAt(point core.Tuple) core.Tuple {
	return core.Vector(0, 1, 0)
}
