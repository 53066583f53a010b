package svgpath

import "fmt"

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) Deriv(t float64, n int) Vec2 {
	checkDerivOrder(n)
	if n == 1 {
		return l.P1.Sub(l.P0)
	}
	return Vec2{}
}

func (l Line) UnitTangent(t float64) (Vec2, error) {
	if l.P0 == l.P1 {
		return Vec2{}, fmt.Errorf("tangent of point-like line: %w", ErrUndefinedOperation)
	}
	return l.P1.Sub(l.P0).Normalize(), nil
}

func (l Line) Normal(t float64) (Vec2, error) {
	return normalOf(l.UnitTangent(t))
}

// Curvature returns zero, or ErrUndefinedOperation if the line is a point.
func (l Line) Curvature(t float64) (float64, error) {
	return curvatureOf(l, t)
}

// Arclen returns the length of the part of the line between t0 and t1.
// Options are ignored, the result is exact.
func (l Line) Arclen(t0, t1 float64, _ ArclenOptions) (float64, error) {
	if _, _, _, err := arclenRange(t0, t1); err != nil {
		return 0, err
	}
	return l.Length() * (t1 - t0), nil
}

func (l Line) SolveForArclen(s float64, opts ArclenOptions) (float64, error) {
	length := l.Length()
	s, err := checkArclenTarget(s, length, opts)
	if err != nil {
		return 0, err
	}
	if length == 0 {
		return 0, nil
	}
	return min(s/length, 1), nil
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

// Poly returns the line as P0 + (P1 - P0) t.
func (l Line) Poly() PolyCurve {
	d := l.P1.Sub(l.P0)
	return PolyCurve{
		X: Poly{l.P0.X, d.X},
		Y: Poly{l.P0.Y, d.Y},
	}
}

func (l Line) Reverse() Line {
	return Line{l.P1, l.P0}
}

func (l Line) Translate(v Vec2) Line {
	return Line{
		P0: l.P0.Translate(v),
		P1: l.P1.Translate(v),
	}
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

func (l Line) Subsegment(start, end float64) Line {
	return Line{l.Eval(start), l.Eval(end)}
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross. It reports false for parallel lines.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if pcd == 0 {
		return Point{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / pcd
	return o.P0.Translate(cd.Mul(h)), true
}
