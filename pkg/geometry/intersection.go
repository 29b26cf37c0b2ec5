package geometry

import "sort"

// Intersection records a ray parameter t at which a ray meets a shape
type Intersection struct {
	T      float64
	Object Shape
}

// NewIntersection creates an intersection
func NewIntersection(t float64, object Shape) Intersection {
	return Intersection{T: t, Object: object}
}

// Intersections is a list of intersections, kept in ascending t order
type Intersections []Intersection

// NewIntersections returns the given intersections sorted by t
func NewIntersections(xs ...Intersection) Intersections {
	result := make(Intersections, len(xs))
	copy(result, xs)
	result.Sort()
	return result
}

// Sort orders the list by ascending t
func (xs Intersections) Sort() {
	sort.SliceStable(xs, func(i, j int) bool { return xs[i].T < xs[j].T })
}

// Hit returns the intersection with the smallest non-negative t.
// The list need not be sorted; on ties the earliest entry wins.
func (xs Intersections) Hit() (Intersection, bool) {
	var hit Intersection
	found := false
	for _, x := range xs {
		if x.T >= 0 && (!found || x.T < hit.T) {
			hit, found = x, true
		}
	}
	return hit, found
}
