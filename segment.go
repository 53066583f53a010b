package svgpath

import (
	"fmt"
	"math"
)

// DefaultTolerance is the default distance below which two points are
// considered equal.
const DefaultTolerance = 1e-9

// Segment is a parametric curve over t ∈ [0, 1]. It is implemented by exactly
// four types: [Line], [QuadBez], [CubicBez] and [Arc].
//
// Segments are immutable values. Operations that produce new geometry, such
// as [Reversed] or [Cropped], return new segments.
type Segment interface {
	// Eval returns the point at parameter t. Eval(0) is exactly Start() and
	// Eval(1) is exactly End().
	Eval(t float64) Point
	Start() Point
	End() Point
	// Deriv returns the n-th derivative with respect to t. It panics if n
	// is less than 1.
	Deriv(t float64, n int) Vec2
	// UnitTangent returns the direction of travel at t. Where the derivative
	// vanishes, it returns the one-sided limit of the direction. It returns
	// ErrUndefinedOperation if the segment is a single point.
	UnitTangent(t float64) (Vec2, error)
	// Normal returns the unit tangent rotated by -90°, that is ⟨y, -x⟩ for
	// a tangent ⟨x, y⟩.
	Normal(t float64) (Vec2, error)
	// Curvature returns the signed curvature at t.
	Curvature(t float64) (float64, error)
	// Arclen returns the length of the segment between t0 and t1. If t0 >
	// t1, the result is negative.
	Arclen(t0, t1 float64, opts ArclenOptions) (float64, error)
	// SolveForArclen returns the parameter t at which the length of the
	// segment from 0 to t is s.
	SolveForArclen(s float64, opts ArclenOptions) (float64, error)
	// BoundingBox returns the smallest axis-aligned rectangle enclosing
	// the segment.
	BoundingBox() Rect

	segment()
}

// Polynomial is implemented by segments that have a polynomial
// representation, which is every segment but [Arc].
type Polynomial interface {
	Segment
	Poly() PolyCurve
}

var (
	_ Polynomial = Line{}
	_ Polynomial = QuadBez{}
	_ Polynomial = CubicBez{}
	_ Segment    = Arc{}
)

func (Line) segment()     {}
func (QuadBez) segment()  {}
func (CubicBez) segment() {}
func (Arc) segment()      {}

// PolyOf returns the polynomial representation of seg. Arcs have none and
// return ErrUndefinedOperation.
func PolyOf(seg Segment) (PolyCurve, error) {
	if p, ok := seg.(Polynomial); ok {
		return p.Poly(), nil
	}
	return PolyCurve{}, fmt.Errorf("polynomial of %T: %w", seg, ErrUndefinedOperation)
}

// Reversed returns the segment traversed in the opposite direction, so that
// Reversed(seg).Eval(t) is seg.Eval(1-t).
func Reversed(seg Segment) Segment {
	switch seg := seg.(type) {
	case Line:
		return seg.Reverse()
	case QuadBez:
		return seg.Reverse()
	case CubicBez:
		return seg.Reverse()
	case Arc:
		return seg.Reverse()
	default:
		panic(fmt.Sprintf("unhandled segment type %T", seg))
	}
}

// Translated returns the segment moved by v.
func Translated(seg Segment, v Vec2) Segment {
	switch seg := seg.(type) {
	case Line:
		return seg.Translate(v)
	case QuadBez:
		return seg.Translate(v)
	case CubicBez:
		return seg.Translate(v)
	case Arc:
		return seg.Translate(v)
	default:
		panic(fmt.Sprintf("unhandled segment type %T", seg))
	}
}

// Rotated returns the segment rotated by deg degrees about origin. In SVG's
// y-down coordinate system, positive angles rotate clockwise.
func Rotated(seg Segment, deg float64, origin Point) Segment {
	switch seg := seg.(type) {
	case Line:
		return seg.Transform(RotateDegAbout(deg, origin))
	case QuadBez:
		return seg.Transform(RotateDegAbout(deg, origin))
	case CubicBez:
		return seg.Transform(RotateDegAbout(deg, origin))
	case Arc:
		return seg.Rotate(deg, origin)
	default:
		panic(fmt.Sprintf("unhandled segment type %T", seg))
	}
}

// Cropped returns the part of seg between t0 and t1, reparametrized to [0, 1].
// If t0 > t1, the part is traversed backwards. Parameters outside [0, 1]
// return ErrOutOfDomain.
func Cropped(seg Segment, t0, t1 float64) (Segment, error) {
	if err := checkUnit(t0); err != nil {
		return nil, err
	}
	if err := checkUnit(t1); err != nil {
		return nil, err
	}
	if t0 > t1 {
		out, err := Cropped(seg, t1, t0)
		if err != nil {
			return nil, err
		}
		return Reversed(out), nil
	}
	switch seg := seg.(type) {
	case Line:
		return seg.Subsegment(t0, t1), nil
	case QuadBez:
		return seg.Subsegment(t0, t1), nil
	case CubicBez:
		return seg.Subsegment(t0, t1), nil
	case Arc:
		return seg.Subsegment(t0, t1)
	default:
		panic(fmt.Sprintf("unhandled segment type %T", seg))
	}
}

// Split divides seg at t into the parts before and after t.
func Split(seg Segment, t float64) (Segment, Segment, error) {
	a, err := Cropped(seg, 0, t)
	if err != nil {
		return nil, nil, err
	}
	b, err := Cropped(seg, t, 1)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// Equal reports whether a and b are the same kind of segment with defining
// parameters within tol of each other. Arc rotations are compared in degrees,
// modulo 360.
func Equal(a, b Segment, tol float64) bool {
	switch a := a.(type) {
	case Line:
		b, ok := b.(Line)
		return ok && a.P0.Near(b.P0, tol) && a.P1.Near(b.P1, tol)
	case QuadBez:
		b, ok := b.(QuadBez)
		return ok && a.P0.Near(b.P0, tol) && a.P1.Near(b.P1, tol) && a.P2.Near(b.P2, tol)
	case CubicBez:
		b, ok := b.(CubicBez)
		return ok &&
			a.P0.Near(b.P0, tol) &&
			a.P1.Near(b.P1, tol) &&
			a.P2.Near(b.P2, tol) &&
			a.P3.Near(b.P3, tol)
	case Arc:
		b, ok := b.(Arc)
		return ok &&
			a.start.Near(b.start, tol) &&
			a.end.Near(b.end, tol) &&
			math.Abs(a.radii.X-b.radii.X) <= tol &&
			math.Abs(a.radii.Y-b.radii.Y) <= tol &&
			math.Abs(math.Remainder(a.rotation-b.rotation, 360)) <= tol &&
			a.large == b.large &&
			a.sweep == b.sweep
	default:
		return false
	}
}

func checkDerivOrder(n int) {
	if n < 1 {
		panic(fmt.Sprintf("invalid derivative order %d", n))
	}
}

// normalOf rotates a unit tangent into the normal.
func normalOf(tan Vec2, err error) (Vec2, error) {
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{X: tan.Y, Y: -tan.X}, nil
}

// curvatureOf computes the signed curvature from the first two derivatives.
func curvatureOf(seg Segment, t float64) (float64, error) {
	d1 := seg.Deriv(t, 1)
	d2 := seg.Deriv(t, 2)
	speed := d1.Hypot()
	if speed == 0 {
		return 0, fmt.Errorf("curvature at %g: %w", t, ErrUndefinedOperation)
	}
	return d1.Cross(d2) / (speed * speed * speed), nil
}
