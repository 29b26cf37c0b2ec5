package geometry

import "testing"

func TestIntersections_Hit(t *testing.T) {
	s := NewSphere()
	i1 := NewIntersection(1, s)
	i2 := NewIntersection(2, s)
	i3 := NewIntersection(-3, s)
	i4 := NewIntersection(2, s)
	i5 := NewIntersection(7, s)
	i6 := NewIntersection(-1, s)
	plane := NewPlane()

	tests := []struct {
		name     string
		xs       Intersections
		expected Intersection
		found    bool
	}{
		{"empty", NewIntersections(), Intersection{}, false},
		{"all positive", NewIntersections(i2, i1), i1, true},
		{"some negative", NewIntersections(i2, i6), i2, true},
		{"all negative", NewIntersections(NewIntersection(-2, s), i6), Intersection{}, false},
		{"lowest nonnegative", NewIntersections(NewIntersection(5, s), i5, i3, i4), i4, true},
		{"zero counts", NewIntersections(i6, NewIntersection(0, s)), NewIntersection(0, s), true},
		{"unsorted literal", Intersections{NewIntersection(5, s), i5, i3, i4}, i4, true},
		{"unsorted tie keeps first", Intersections{i5, NewIntersection(2, plane), i6, i4}, NewIntersection(2, plane), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.xs.Hit()
			if ok != tt.found {
				t.Fatalf("Expected found=%v, got %v", tt.found, ok)
			}
			if hit != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, hit)
			}
		})
	}
}

func TestNewIntersections_Sorts(t *testing.T) {
	s := NewSphere()
	xs := NewIntersections(NewIntersection(5, s), NewIntersection(-1, s), NewIntersection(2, s))

	for i := 1; i < len(xs); i++ {
		if xs[i-1].T > xs[i].T {
			t.Fatalf("Expected ascending order, got %v", ts(xs))
		}
	}
}
