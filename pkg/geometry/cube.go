package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube is the axis-aligned cube spanning [-1,1] on every object-space axis
type Cube struct {
	shapeBase
}

// NewCube creates a cube with an identity transform and the default material
func NewCube() *Cube {
	return &Cube{shapeBase: newShapeBase()}
}

// LocalIntersect intersects the three axis slabs and keeps the overlap
func (c *Cube) LocalIntersect(ray core.Ray) (Intersections, error) {
	xtMin, xtMax := checkAxis(ray.Origin.X, ray.Direction.X)
	ytMin, ytMax := checkAxis(ray.Origin.Y, ray.Direction.Y)
	ztMin, ztMax := checkAxis(ray.Origin.Z, ray.Direction.Z)

	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))
	if tMin > tMax {
		return nil, nil
	}

	return Intersections{NewIntersection(tMin, c), NewIntersection(tMax, c)}, nil
}

// checkAxis returns the entry and exit t of a ray against the slab [-1,1]
// on one axis. A near-zero direction yields infinite bounds signed by the
// numerator.
func checkAxis(origin, direction float64) (float64, float64) {
	tMinNumerator := -1 - origin
	tMaxNumerator := 1 - origin

	var tMin, tMax float64
	if math.Abs(direction) >= core.Epsilon {
		tMin = tMinNumerator / direction
		tMax = tMaxNumerator / direction
	} else {
		tMin = signedInf(tMinNumerator)
		tMax = signedInf(tMaxNumerator)
	}

	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	return tMin, tMax
}

func signedInf(numerator float64) float64 {
	if numerator < 0 {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// LocalNormalAt picks the face whose axis has the largest absolute component
func (c *Cube) LocalNormalAt(point core.Tuple) core.Tuple {
	absX, absY, absZ := math.Abs(point.X), math.Abs(point.Y), math.Abs(point.Z)
	maxc := math.Max(absX, math.Max(absY, absZ))

	switch maxc {
	case absX:
		return core.Vector(point.X, 0, 0)
	case absY:
		return core.Vector(0, point.Y, 0)
	default:
		return core.Vector(0, 0, point.Z)
	}
}
