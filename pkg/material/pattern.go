package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PatternKind identifies the color function of a Pattern
type PatternKind int

const (
	Stripe PatternKind = iota
	Gradient
	Ring
	Checker
	Radial
	// Test returns the pattern-space point as a color and is used to
	// verify transform composition
	Test
)

var patternKindNames = map[PatternKind]string{
	Stripe:   "stripe",
	Gradient: "gradient",
	Ring:     "ring",
	Checker:  "checker",
	Radial:   "radial",
	Test:     "test",
}

func (k PatternKind) String() string {
	if name, ok := patternKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PatternKind(%d)", int(k))
}

// ParsePatternKind maps a pattern name to its kind
func ParsePatternKind(name string) (PatternKind, error) {
	for kind, n := range patternKindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown pattern type %q", name)
}

// Pattern is a procedural color function over two colors with its own transform
type Pattern struct {
	Kind PatternKind
	A, B core.Color

	transform core.Matrix
	inverse   core.Matrix
	invErr    error
}

// NewPattern creates a pattern of the given kind with an identity transform
func NewPattern(kind PatternKind, a, b core.Color) *Pattern {
	return &Pattern{
		Kind:      kind,
		A:         a,
		B:         b,
		transform: core.Identity(),
		inverse:   core.Identity(),
	}
}

// NewStripePattern alternates a and b along x
func NewStripePattern(a, b core.Color) *Pattern { return NewPattern(Stripe, a, b) }

// NewGradientPattern blends linearly from a to b along x
func NewGradientPattern(a, b core.Color) *Pattern { return NewPattern(Gradient, a, b) }

// NewRingPattern alternates a and b in concentric rings in the xz plane
func NewRingPattern(a, b core.Color) *Pattern { return NewPattern(Ring, a, b) }

// NewCheckerPattern alternates a and b in unit cubes
func NewCheckerPattern(a, b core.Color) *Pattern { return NewPattern(Checker, a, b) }

// NewRadialPattern blends from a to b with distance from the y axis
func NewRadialPattern(a, b core.Color) *Pattern { return NewPattern(Radial, a, b) }

// NewTestPattern returns the pattern-space point as a color
func NewTestPattern() *Pattern { return NewPattern(Test, core.White, core.Black) }

// Transform returns the pattern's transform
func (p *Pattern) Transform() core.Matrix {
	return p.transform
}

// SetTransform sets the pattern's transform and caches its inverse.
// A singular transform is reported by ColorAt.
func (p *Pattern) SetTransform(m core.Matrix) {
	p.transform = m
	p.inverse, p.invErr = m.Inverse()
}

// ColorAt converts an object-space point into pattern space and samples the pattern
func (p *Pattern) ColorAt(objectPoint core.Tuple) (core.Color, error) {
	if p.invErr != nil {
		return core.Color{}, fmt.Errorf("%s pattern transform: %w", p.Kind, p.invErr)
	}
	return p.LocalColorAt(p.inverse.MultiplyTuple(objectPoint)), nil
}

// LocalColorAt evaluates the color function at a pattern-space point
func (p *Pattern) LocalColorAt(point core.Tuple) core.Color {
	switch p.Kind {
	case Stripe:
		if isEven(math.Floor(point.X)) {
			return p.A
		}
		return p.B
	case Gradient:
		fraction := point.X - math.Floor(point.X)
		return p.A.Add(p.B.Subtract(p.A).Multiply(fraction))
	case Ring:
		if isEven(math.Floor(math.Hypot(point.X, point.Z))) {
			return p.A
		}
		return p.B
	case Checker:
		if isEven(math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)) {
			return p.A
		}
		return p.B
	case Radial:
		distance := math.Hypot(point.X, point.Z)
		fraction := distance - math.Floor(distance)
		return p.A.Add(p.B.Subtract(p.A).Multiply(fraction))
	case Test:
		return core.NewColor(point.X, point.Y, point.Z)
	default:
		panic(fmt.Sprintf("material: unhandled pattern kind %v", p.Kind))
	}
}

// isEven reports whether an integral float is even, including negatives
func isEven(f float64) bool {
	return math.Mod(f, 2) == 0
}
