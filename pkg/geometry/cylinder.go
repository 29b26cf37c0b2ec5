package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a unit-radius cylinder around the object-space y axis,
// optionally truncated to (Minimum, Maximum) and optionally capped
type Cylinder struct {
	shapeBase
	Minimum float64 // Exclusive lower y bound, -Inf when unbounded
	Maximum float64 // Exclusive upper y bound, +Inf when unbounded
	Closed  bool    // Whether the ends are capped by unit disks
}

// NewCylinder creates an infinite open cylinder
func NewCylinder() *Cylinder {
	return NewBoundedCylinder(math.Inf(-1), math.Inf(1), false)
}

// NewBoundedCylinder creates a cylinder truncated to the given y range
func NewBoundedCylinder(minimum, maximum float64, closed bool) *Cylinder {
	return &Cylinder{
		shapeBase: newShapeBase(),
		Minimum:   minimum,
		Maximum:   maximum,
		Closed:    closed,
	}
}

// LocalIntersect intersects the curved wall and, when closed, the end caps
func (c *Cylinder) LocalIntersect(ray core.Ray) (Intersections, error) {
	var xs Intersections
	o, d := ray.Origin, ray.Direction

	a := d.X*d.X + d.Z*d.Z
	// A ray parallel to the axis can only meet the caps
	if math.Abs(a) >= core.Epsilon {
		b := 2*o.X*d.X + 2*o.Z*d.Z
		cc := o.X*o.X + o.Z*o.Z - 1

		discriminant := b*b - 4*a*cc
		if discriminant < 0 {
			return nil, nil
		}

		sqrtD := math.Sqrt(discriminant)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		for _, t := range [2]float64{t0, t1} {
			if y := o.Y + t*d.Y; c.Minimum < y && y < c.Maximum {
				xs = append(xs, NewIntersection(t, c))
			}
		}
	}

	if c.Closed {
		xs = intersectCaps(c, ray, c.Minimum, c.Maximum, 1, 1, xs)
	}
	xs.Sort()
	return xs, nil
}

// LocalNormalAt returns the cap normal near a closed end, otherwise the radial vector
func (c *Cylinder) LocalNormalAt(point core.Tuple) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z

	if c.Closed && dist < 1 {
		if point.Y >= c.Maximum-core.OffsetEpsilon {
			return core.Vector(0, 1, 0)
		}
		if point.Y <= c.Minimum+core.OffsetEpsilon {
			return core.Vector(0, -1, 0)
		}
	}
	return core.Vector(point.X, 0, point.Z)
}

// intersectCaps appends hits against the disks at y=minimum and y=maximum
// with the given radii
func intersectCaps(s Shape, ray core.Ray, minimum, maximum, minRadius, maxRadius float64, xs Intersections) Intersections {
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}

	// An unbounded end has no cap
	if !math.IsInf(minimum, 0) {
		if t := (minimum - ray.Origin.Y) / ray.Direction.Y; checkCap(ray, t, minRadius) {
			xs = append(xs, NewIntersection(t, s))
		}
	}
	if !math.IsInf(maximum, 0) {
		if t := (maximum - ray.Origin.Y) / ray.Direction.Y; checkCap(ray, t, maxRadius) {
			xs = append(xs, NewIntersection(t, s))
		}
	}
	return xs
}

// checkCap reports whether the ray at t lies within radius of the y axis
func checkCap(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= radius*radius
}
