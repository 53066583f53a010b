package svgpath

import "sort"

// CubicBez is a cubic Bézier segment.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

func (c CubicBez) Start() Point { return c.P0 }
func (c CubicBez) End() Point   { return c.P3 }

func (c CubicBez) Deriv(t float64, n int) Vec2 {
	checkDerivOrder(n)
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	switch n {
	case 1:
		mt := 1 - t
		return d0.Mul(3 * mt * mt).Add(d1.Mul(6 * mt * t)).Add(d2.Mul(3 * t * t))
	case 2:
		return d1.Sub(d0).Lerp(d2.Sub(d1), t).Mul(6)
	case 3:
		return d2.Sub(d1.Mul(2)).Add(d0).Mul(6)
	default:
		return Vec2{}
	}
}

func (c CubicBez) UnitTangent(t float64) (Vec2, error) {
	return polyUnitTangent(c, t)
}

func (c CubicBez) Normal(t float64) (Vec2, error) {
	return normalOf(c.UnitTangent(t))
}

func (c CubicBez) Curvature(t float64) (float64, error) {
	return curvatureOf(c, t)
}

// Arclen returns the length of the part of the segment between t0 and t1,
// using adaptive Legendre-Gauss quadrature.
func (c CubicBez) Arclen(t0, t1 float64, opts ArclenOptions) (float64, error) {
	return numericArclen(c, t0, t1, opts)
}

func (c CubicBez) SolveForArclen(s float64, opts ArclenOptions) (float64, error) {
	return solveForArclen(c, s, opts)
}

func (c CubicBez) BoundingBox() Rect {
	bbox := NewRectFromPoints(c.P0, c.P3)
	ex, n := c.extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(c.Eval(t))
	}
	return bbox
}

// extrema returns the parameters in (0, 1) where the derivative of either
// coordinate vanishes, in increasing order.
func (c CubicBez) extrema() ([4]float64, int) {
	// two calls to oneCoord, up to 2 roots per call, for a total of 4 possible values.
	var out [4]float64
	var outN int
	oneCoord := func(d0, d1, d2 float64) {
		a := d0 - 2*d1 + d2
		b := 2 * (d1 - d0)
		c := d0
		roots, n := SolveQuadratic(c, b, a)
		for _, t := range roots[:n] {
			if t > 0.0 && t < 1.0 {
				out[outN] = t
				outN++
			}
		}
	}

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	oneCoord(d0.X, d1.X, d2.X)
	oneCoord(d0.Y, d1.Y, d2.Y)
	sort.Float64s(out[:outN])
	return out, outN
}

// Poly returns the standard form expansion of the Bernstein polynomials.
func (c CubicBez) Poly() PolyCurve {
	px0, px1, px2, px3 := cubicBezCoefficients(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	py0, py1, py2, py3 := cubicBezCoefficients(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	return PolyCurve{
		X: Poly{px0, px1, px2, px3},
		Y: Poly{py0, py1, py2, py3},
	}
}

// Return polynomial coefficients given cubic bezier coordinates.
func cubicBezCoefficients(x0, x1, x2, x3 float64) (_, _, _, _ float64) {
	p0 := x0
	p1 := 3.0*x1 - 3.0*x0
	p2 := 3.0*x2 - 6.0*x1 + 3.0*x0
	p3 := x3 - 3.0*x2 + 3.0*x1 - x0
	return p0, p1, p2, p3
}

func (c CubicBez) Reverse() CubicBez {
	return CubicBez{c.P3, c.P2, c.P1, c.P0}
}

func (c CubicBez) Translate(v Vec2) CubicBez {
	return CubicBez{
		P0: c.P0.Translate(v),
		P1: c.P1.Translate(v),
		P2: c.P2.Translate(v),
		P3: c.P3.Translate(v),
	}
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point(Vec2(c.P0).Add(Vec2(c.P1).Mul(2.0)).Add(Vec2(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point(Vec2(c.P1).Add(Vec2(c.P2).Mul(2.0)).Add(Vec2(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(c.Deriv(t0, 1).Mul(scale))
	p2 := p3.Translate(c.Deriv(t1, 1).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}
