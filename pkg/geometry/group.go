package geometry

import (
	"errors"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrGroupCycle is returned when adding a shape would make a group its own ancestor
var ErrGroupCycle = errors.New("group cannot contain itself")

// Group is a transformed collection of shapes. Its transform applies to
// every child on top of the child's own transform.
type Group struct {
	shapeBase
	children []Shape
}

// NewGroup creates an empty group with an identity transform
func NewGroup() *Group {
	return &Group{shapeBase: newShapeBase()}
}

// AddChild appends a shape and sets its parent to this group. A shape that
// already belongs to another group is moved.
func (g *Group) AddChild(s Shape) error {
	if child, ok := s.(*Group); ok {
		for ancestor := g; ancestor != nil; ancestor = ancestor.parent {
			if ancestor == child {
				return ErrGroupCycle
			}
		}
	}

	if old := s.Parent(); old != nil {
		old.RemoveChild(s)
	}
	s.base().parent = g
	g.children = append(g.children, s)
	return nil
}

// RemoveChild detaches a shape from the group and reports whether it was a child
func (g *Group) RemoveChild(s Shape) bool {
	for i, child := range g.children {
		if child == s {
			g.children = slices.Delete(g.children, i, i+1)
			s.base().parent = nil
			return true
		}
	}
	return false
}

// Children returns a copy of the group's children in insertion order
func (g *Group) Children() []Shape {
	return slices.Clone(g.children)
}

// IsEmpty reports whether the group has no children
func (g *Group) IsEmpty() bool {
	return len(g.children) == 0
}

// LocalIntersect dispatches the group-space ray to every child and merges
// the results by t
func (g *Group) LocalIntersect(ray core.Ray) (Intersections, error) {
	var xs Intersections
	for _, child := range g.children {
		childXs, err := Intersect(child, ray)
		if err != nil {
			return nil, err
		}
		xs = append(xs, childXs...)
	}
	xs.Sort()
	return xs, nil
}

// LocalNormalAt panics: a ray never hits a group itself, only its children
func (g *Group) LocalNormalAt(point core.Tuple) core.Tuple {
	panic("geometry: LocalNormalAt called on a group")
}
