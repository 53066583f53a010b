package svgpath

import "math"

// QuadBez is a quadratic Bézier segment.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

func (q QuadBez) Start() Point { return q.P0 }
func (q QuadBez) End() Point   { return q.P2 }

func (q QuadBez) Deriv(t float64, n int) Vec2 {
	checkDerivOrder(n)
	switch n {
	case 1:
		return q.P1.Sub(q.P0).Lerp(q.P2.Sub(q.P1), t).Mul(2)
	case 2:
		return q.P2.Sub(q.P1).Sub(q.P1.Sub(q.P0)).Mul(2)
	default:
		return Vec2{}
	}
}

func (q QuadBez) UnitTangent(t float64) (Vec2, error) {
	return polyUnitTangent(q, t)
}

func (q QuadBez) Normal(t float64) (Vec2, error) {
	return normalOf(q.UnitTangent(t))
}

func (q QuadBez) Curvature(t float64) (float64, error) {
	return curvatureOf(q, t)
}

// Arclen returns the length of the part of the segment between t0 and t1.
//
// This computation is based on an analytical formula. Since that formula
// suffers from numerical instability when the curve is very close to a straight
// line, we detect that case and fall back to numerical integration.
func (q QuadBez) Arclen(t0, t1 float64, opts ArclenOptions) (float64, error) {
	lo, hi, sign, err := arclenRange(t0, t1)
	if err != nil {
		return 0, err
	}
	if lo == hi {
		return 0, nil
	}
	sub := q
	if lo != 0 || hi != 1 {
		sub = q.Subsegment(lo, hi)
	}
	l, ok := sub.analyticArclen()
	if !ok {
		return numericArclen(q, t0, t1, opts)
	}
	return sign * l, nil
}

// analyticArclen computes the length in closed form. It reports false for
// nearly straight segments.
func (q QuadBez) analyticArclen() (float64, bool) {
	d2 := Vec2(q.P0).Sub(Vec2(q.P1).Mul(2)).Add(Vec2(q.P2))
	a := d2.Hypot2()
	d1 := q.P1.Sub(q.P0)
	c := d1.Hypot2()
	if a < 5e-4*c || a == 0 {
		return 0, false
	}
	b := 2.0 * d2.Dot(d1)

	sabc := math.Sqrt(a + b + c)
	a2 := math.Pow(a, -0.5)
	a32 := a2 * a2 * a2
	c2 := 2.0 * math.Sqrt(c)
	baC2 := b*a2 + c2

	v0 := 0.25*a2*a2*b*(2.0*sabc-c2) + sabc
	if baC2 < 1e-13 {
		// This case happens for Béziers with a sharp kink.
		return v0, true
	}
	return v0 + 0.25*a32*(4.0*c*a-b*b)*math.Log(((2.0*a+b)*a2+2.0*sabc)/baC2), true
}

func (q QuadBez) SolveForArclen(s float64, opts ArclenOptions) (float64, error) {
	return solveForArclen(q, s, opts)
}

func (q QuadBez) BoundingBox() Rect {
	bbox := NewRectFromPoints(q.P0, q.P2)
	ex, n := q.extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(q.Eval(t))
	}
	return bbox
}

// extrema returns the parameters in (0, 1) where the derivative of either
// coordinate vanishes, in increasing order.
func (q QuadBez) extrema() ([2]float64, int) {
	var out [2]float64
	var outN int
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)
	if dd.X != 0.0 {
		t := -d0.X / dd.X
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
		}
	}
	if dd.Y != 0 {
		t := -d0.Y / dd.Y
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
			if outN == 2 && out[0] > t {
				out[0], out[1] = out[1], out[0]
			}
		}
	}
	return out, outN
}

// Poly returns the segment as P0 + 2(P1 - P0) t + (P0 - 2 P1 + P2) t².
func (q QuadBez) Poly() PolyCurve {
	c1 := q.P1.Sub(q.P0).Mul(2)
	c2 := q.P2.Sub(q.P1).Sub(q.P1.Sub(q.P0))
	return PolyCurve{
		X: Poly{q.P0.X, c1.X, c2.X},
		Y: Poly{q.P0.Y, c1.Y, c2.Y},
	}
}

// Raise returns a cubic Bézier segment that exactly represents this quadratic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

func (q QuadBez) Reverse() QuadBez {
	return QuadBez{q.P2, q.P1, q.P0}
}

func (q QuadBez) Translate(v Vec2) QuadBez {
	return QuadBez{
		P0: q.P0.Translate(v),
		P1: q.P1.Translate(v),
		P2: q.P2.Translate(v),
	}
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return QuadBez{
		P0: q.P0.Transform(aff),
		P1: q.P1.Transform(aff),
		P2: q.P2.Transform(aff),
	}
}

func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	pm := q.Eval(0.5)
	return QuadBez{q.P0, q.P0.Midpoint(q.P1), pm},
		QuadBez{pm, q.P1.Midpoint(q.P2), q.P2}
}

func (q QuadBez) Subsegment(t0 float64, t1 float64) QuadBez {
	p0 := q.Eval(t0)
	p2 := q.Eval(t1)
	p1 := p0.Translate(q.P1.Sub(q.P0).Lerp(q.P2.Sub(q.P1), t0).Mul(t1 - t0))
	return QuadBez{p0, p1, p2}
}
