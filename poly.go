package svgpath

import (
	"fmt"
	"math"
)

// Poly is a polynomial with real coefficients in ascending order of degree,
// so that Poly{c0, c1, c2} is c0 + c1 x + c2 x².
//
// Polynomials are values. No method modifies its receiver.
type Poly []float64

// Eval evaluates the polynomial at x.
func (p Poly) Eval(x float64) float64 {
	var v float64
	for i := len(p) - 1; i >= 0; i-- {
		v = v*x + p[i]
	}
	return v
}

// vanishesAt reports whether p(x) is zero relative to the size of the terms
// of p near x.
func (p Poly) vanishesAt(x float64) bool {
	ax := max(1, math.Abs(x))
	xi := 1.0
	var scale float64
	for _, c := range p {
		scale = max(scale, math.Abs(c)*xi)
		xi *= ax
	}
	return math.Abs(p.Eval(x)) <= limitEpsilon*scale
}

func (p Poly) maxAbs() float64 {
	var m float64
	for _, c := range p {
		m = max(m, math.Abs(c))
	}
	return m
}

// Deriv returns the derivative of p.
func (p Poly) Deriv() Poly {
	if len(p) <= 1 {
		return Poly{}
	}
	out := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = float64(i) * p[i]
	}
	return out
}

func (p Poly) Add(q Poly) Poly {
	out := make(Poly, max(len(p), len(q)))
	copy(out, p)
	for i, c := range q {
		out[i] += c
	}
	return out
}

func (p Poly) Sub(q Poly) Poly {
	out := make(Poly, max(len(p), len(q)))
	copy(out, p)
	for i, c := range q {
		out[i] -= c
	}
	return out
}

func (p Poly) Mul(q Poly) Poly {
	if len(p) == 0 || len(q) == 0 {
		return Poly{}
	}
	out := make(Poly, len(p)+len(q)-1)
	for i, a := range p {
		for j, b := range q {
			out[i+j] += a * b
		}
	}
	return out
}

func (p Poly) Scale(f float64) Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = c * f
	}
	return out
}

// Trim returns p without trailing zero coefficients.
func (p Poly) Trim() Poly {
	n := len(p)
	for n > 0 && p[n-1] == 0 {
		n--
	}
	return p[:n:n]
}

// Degree returns the degree of the polynomial, ignoring trailing zero
// coefficients. The zero polynomial has degree -1.
func (p Poly) Degree() int {
	return len(p.Trim()) - 1
}

// Roots returns the real roots of p in increasing order, possibly with
// repetitions.
//
// Only polynomials of degree at most 3 are supported. The zero polynomial,
// which vanishes everywhere, and polynomials of higher degree return
// ErrUndefinedOperation.
func (p Poly) Roots() ([]float64, error) {
	q := p.Trim()
	switch len(q) {
	case 0:
		return nil, fmt.Errorf("roots of the zero polynomial: %w", ErrUndefinedOperation)
	case 1:
		return nil, nil
	case 2:
		return []float64{-q[0] / q[1]}, nil
	case 3:
		roots, n := SolveQuadratic(q[0], q[1], q[2])
		return roots[:n:n], nil
	case 4:
		roots, n := SolveCubic(q[0], q[1], q[2], q[3])
		out := roots[:n:n]
		for i := range out {
			out[i] = polishRoot(out[i], q[0], q[1], q[2], q[3])
		}
		sortFloats(out)
		return out, nil
	default:
		return nil, fmt.Errorf("roots of degree %d polynomial: %w", len(q)-1, ErrUndefinedOperation)
	}
}

func sortFloats(s []float64) {
	// At most three elements.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// limitEpsilon is the relative size below which a polynomial value is
// treated as zero when taking limits.
const limitEpsilon = 1e-10

// RationalLimit computes the limit of num(x)/den(x) as x approaches x0.
//
// Where both polynomials vanish at x0, the limit is taken by L'Hôpital's rule,
// differentiating both until the denominator no longer vanishes. A value is
// considered to vanish when it is zero up to the rounding error of evaluating
// it. If the limit is infinite, or both polynomials vanish identically, it
// returns ErrUndefinedOperation.
func RationalLimit(num, den Poly, x0 float64) (float64, error) {
	steps := max(len(num), len(den))
	for range steps + 1 {
		if den.Degree() < 0 {
			break
		}
		if !den.vanishesAt(x0) {
			return num.Eval(x0) / den.Eval(x0), nil
		}
		if !num.vanishesAt(x0) {
			return 0, fmt.Errorf("limit at %g is infinite: %w", x0, ErrUndefinedOperation)
		}
		num, den = num.Deriv(), den.Deriv()
	}
	return 0, fmt.Errorf("limit at %g does not exist: %w", x0, ErrUndefinedOperation)
}

// PolyCurve is a planar curve whose coordinates are polynomials of the
// parameter.
type PolyCurve struct {
	X, Y Poly
}

// Eval evaluates the curve at t.
func (pc PolyCurve) Eval(t float64) Point {
	return Point{X: pc.X.Eval(t), Y: pc.Y.Eval(t)}
}

// Deriv returns the derivative of the curve.
func (pc PolyCurve) Deriv() PolyCurve {
	return PolyCurve{X: pc.X.Deriv(), Y: pc.Y.Deriv()}
}

// Degree returns the larger of the degrees of the coordinate polynomials.
func (pc PolyCurve) Degree() int {
	return max(pc.X.Degree(), pc.Y.Degree())
}

func (pc PolyCurve) coeff(i int) Vec2 {
	var v Vec2
	if i < len(pc.X) {
		v.X = pc.X[i]
	}
	if i < len(pc.Y) {
		v.Y = pc.Y[i]
	}
	return v
}

// Bezier converts the curve back to control point form.
//
// The kind of segment follows the number of coefficients rather than the
// trimmed degree, so that converting the Poly of a cubic Bézier always yields
// a cubic Bézier. One or two coefficients produce a [Line], three a
// [QuadBez] and four a [CubicBez]. Longer polynomials return
// ErrUndefinedOperation.
func (pc PolyCurve) Bezier() (Segment, error) {
	c0 := Point(pc.coeff(0))
	c1 := pc.coeff(1)
	c2 := pc.coeff(2)
	c3 := pc.coeff(3)
	switch n := max(len(pc.X), len(pc.Y)); n {
	case 0, 1, 2:
		return Line{c0, c0.Translate(c1)}, nil
	case 3:
		return QuadBez{
			c0,
			c0.Translate(c1.Mul(0.5)),
			c0.Translate(c1.Add(c2)),
		}, nil
	case 4:
		return CubicBez{
			c0,
			c0.Translate(c1.Mul(1.0 / 3.0)),
			c0.Translate(c1.Mul(2.0 / 3.0).Add(c2.Mul(1.0 / 3.0))),
			c0.Translate(c1.Add(c2).Add(c3)),
		}, nil
	default:
		return nil, fmt.Errorf("Bézier of %d coefficients: %w", n, ErrUndefinedOperation)
	}
}
