package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Computations is the per-hit state consumed by shading
type Computations struct {
	T      float64
	Object Shape

	Point      core.Tuple // World-space hit point
	OverPoint  core.Tuple // Point nudged along the normal, origin for shadow and reflection rays
	UnderPoint core.Tuple // Point nudged against the normal, origin for refraction rays
	EyeV       core.Tuple // Unit vector toward the eye
	NormalV    core.Tuple // Unit surface normal facing the eye
	ReflectV   core.Tuple // Ray direction reflected about the normal
	Inside     bool       // Whether the hit is on the inside of the surface

	N1 float64 // Refractive index of the medium being left
	N2 float64 // Refractive index of the medium being entered
}

// PrepareComputations derives the shading state for hit. xs is the full,
// sorted intersection list of the ray and is used to find the refractive
// indices on either side of the surface.
func PrepareComputations(hit Intersection, ray core.Ray, xs Intersections) (Computations, error) {
	comps := Computations{
		T:      hit.T,
		Object: hit.Object,
		Point:  ray.At(hit.T),
		EyeV:   ray.Direction.Negate(),
	}

	normal, err := NormalAt(hit.Object, comps.Point)
	if err != nil {
		return Computations{}, err
	}
	if normal.Dot(comps.EyeV) < 0 {
		comps.Inside = true
		normal = normal.Negate()
	}
	comps.NormalV = normal

	offset := normal.Multiply(core.OffsetEpsilon)
	comps.OverPoint = comps.Point.Add(offset)
	comps.UnderPoint = comps.Point.Subtract(offset)
	comps.ReflectV = ray.Direction.Reflect(normal)

	comps.N1, comps.N2 = refractiveIndices(hit, xs)
	return comps, nil
}

// refractiveIndices walks the intersections in order, tracking which
// objects the ray is currently inside
func refractiveIndices(hit Intersection, xs Intersections) (n1, n2 float64) {
	n1, n2 = 1.0, 1.0
	var containers []Shape

	for _, x := range xs {
		isHit := x.T == hit.T && x.Object == hit.Object
		if isHit && len(containers) > 0 {
			n1 = containers[len(containers)-1].Material().RefractiveIndex
		}

		if i := indexOfShape(containers, x.Object); i >= 0 {
			containers = append(containers[:i], containers[i+1:]...)
		} else {
			containers = append(containers, x.Object)
		}

		if isHit {
			if len(containers) > 0 {
				n2 = containers[len(containers)-1].Material().RefractiveIndex
			}
			break
		}
	}
	return n1, n2
}

func indexOfShape(shapes []Shape, s Shape) int {
	for i, candidate := range shapes {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Schlick approximates the Fresnel reflectance at the hit
func (c Computations) Schlick() float64 {
	cos := c.EyeV.Dot(c.NormalV)

	if c.N1 > c.N2 {
		n := c.N1 / c.N2
		sin2T := n * n * (1 - cos*cos)
		if sin2T > 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2T)
	}

	r0 := (c.N1 - c.N2) / (c.N1 + c.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
