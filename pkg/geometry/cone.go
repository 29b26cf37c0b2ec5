package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone is a double-napped cone with its apex at the object-space origin and
// unit slope about the y axis, optionally truncated and capped
type Cone struct {
	shapeBase
	Minimum float64 // Exclusive lower y bound, -Inf when unbounded
	Maximum float64 // Exclusive upper y bound, +Inf when unbounded
	Closed  bool    // Whether the ends are capped by disks of radius |y|
}

// NewCone creates an infinite open cone
func NewCone() *Cone {
	return NewBoundedCone(math.Inf(-1), math.Inf(1), false)
}

// NewBoundedCone creates a cone truncated to the given y range
func NewBoundedCone(minimum, maximum float64, closed bool) *Cone {
	return &Cone{
		shapeBase: newShapeBase(),
		Minimum:   minimum,
		Maximum:   maximum,
		Closed:    closed,
	}
}

// LocalIntersect intersects the conical wall and, when closed, the end caps
func (c *Cone) LocalIntersect(ray core.Ray) (Intersections, error) {
	var xs Intersections
	o, d := ray.Origin, ray.Direction

	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2 * (o.X*d.X - o.Y*d.Y + o.Z*d.Z)
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	switch {
	case math.Abs(a) < core.Epsilon:
		// Ray parallel to one half of the cone: a single wall hit
		if math.Abs(b) >= core.Epsilon {
			xs = c.appendInBounds(xs, ray, -cc/(2*b))
		}
	default:
		discriminant := b*b - 4*a*cc
		if discriminant >= 0 {
			sqrtD := math.Sqrt(discriminant)
			t0 := (-b - sqrtD) / (2 * a)
			t1 := (-b + sqrtD) / (2 * a)
			if t0 > t1 {
				t0, t1 = t1, t0
			}
			xs = c.appendInBounds(xs, ray, t0)
			xs = c.appendInBounds(xs, ray, t1)
		}
	}

	if c.Closed {
		xs = intersectCaps(c, ray, c.Minimum, c.Maximum, math.Abs(c.Minimum), math.Abs(c.Maximum), xs)
	}
	xs.Sort()
	return xs, nil
}

func (c *Cone) appendInBounds(xs Intersections, ray core.Ray, t float64) Intersections {
	if y := ray.Origin.Y + t*ray.Direction.Y; c.Minimum < y && y < c.Maximum {
		return append(xs, NewIntersection(t, c))
	}
	return xs
}

// LocalNormalAt returns the cap normal near a closed end, otherwise the wall
// normal pointing away from the axis
func (c *Cone) LocalNormalAt(point core.Tuple) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z

	if c.Closed {
		if point.Y >= c.Maximum-core.OffsetEpsilon && dist < c.Maximum*c.Maximum {
			return core.Vector(0, 1, 0)
		}
		if point.Y <= c.Minimum+core.OffsetEpsilon && dist < c.Minimum*c.Minimum {
			return core.Vector(0, -1, 0)
		}
	}

	y := math.Sqrt(dist)
	if point.Y > 0 {
		y = -y
	}
	return core.Vector(point.X, y, point.Z)
}
