package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// TestShape is an inert shape that records the last object-space ray it
// was intersected with. It is used to observe transform handling.
type TestShape struct {
	shapeBase
	SavedRay core.Ray
}

// NewTestShape creates a test shape with an identity transform
func NewTestShape() *TestShape {
	return &TestShape{shapeBase: newShapeBase()}
}

// LocalIntersect saves the ray and reports no hits
func (s *TestShape) LocalIntersect(ray core.Ray) (Intersections, error) {
	s.SavedRay = ray
	return nil, nil
}

// LocalNormalAt returns the object-space point as a vector
func (s *TestShape) LocalNormalAt(point core.Tuple) core.Tuple {
	return core.Vector(point.X, point.Y, point.Z)
}
