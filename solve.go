package svgpath

import "math"

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0
//
// If the equation is nearly linear, it returns the root ignoring the quadratic
// term; the other root might be out of representable range. In the degenerate
// case where all coefficients are zero, so that all values of x satisfy the
// equation, a single 0.0 is returned.
//
// Roots are reported in increasing order.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || math.IsNaN(sc0) || math.IsNaN(sc1) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		if !math.IsInf(root, 0) && !math.IsNaN(root) {
			return [2]float64{root}, 1
		} else if c0 == 0.0 && c1 == 0.0 {
			return [2]float64{0}, 1
		} else {
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// sc1 * sc1 overflowed. Find one root using sc1 x + x² = 0, the
		// other as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) || math.IsNaN(root2) {
		return [2]float64{root1}, 1
	}
	if root2 > root1 {
		return [2]float64{root1, root2}, 2
	}
	return [2]float64{root2, root1}, 2
}

// SolveCubic finds real roots of cubic equations.
//
// It handles the case where c3 is zero by solving the quadratic equation.
//
// See: https://momentsingraphics.de/CubicRoots.html, which is in turn based on
// Jim Blinn's "How to Solve a Cubic Equation".
//
// Returns values of x for which c0 + c1 x + c2 x² + c3 x³ = 0.0. The second
// return value states how many roots were found.
func SolveCubic(c0, c1, c2, c3 float64) ([3]float64, int) {
	c3Recip := 1.0 / c3
	scaledC2 := c2 * (1.0 / 3.0 * c3Recip)
	scaledC1 := c1 * (1.0 / 3.0 * c3Recip)
	scaledC0 := c0 * c3Recip
	if math.IsInf(scaledC0, 0) || math.IsInf(scaledC1, 0) || math.IsInf(scaledC2, 0) ||
		math.IsNaN(scaledC0) || math.IsNaN(scaledC1) || math.IsNaN(scaledC2) {
		// cubic coefficient is zero or nearly so.
		roots, n := SolveQuadratic(c0, c1, c2)
		return [3]float64{roots[0], roots[1]}, n
	}
	c0, c1, c2 = scaledC0, scaledC1, scaledC2
	// (d0, d1, d2) is called "Delta" in the article
	d0 := math.FMA(-c2, c2, c1)
	d1 := math.FMA(-c1, c2, c0)
	d2 := c2*c0 - c1*c1
	d := 4.0*d0*d2 - d1*d1
	de := math.FMA(-2.0*c2, d0, d1)
	if d < 0.0 {
		sq := math.Sqrt(-0.25 * d)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return [3]float64{t1 - c2}, 1
	} else if d == 0.0 {
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return [3]float64{t1 - c2, -2.0*t1 - c2}, 2
	} else {
		th := math.Atan2(math.Sqrt(d), -de) * (1.0 / 3.0)
		thSin, thCos := math.Sincos(th)
		r0 := thCos
		ss3 := thSin * math.Sqrt(3.0)
		r1 := 0.5 * (-thCos + ss3)
		r2 := 0.5 * (-thCos - ss3)
		t := 2.0 * math.Sqrt(-d0)
		return [3]float64{
			math.FMA(t, r0, -c2),
			math.FMA(t, r1, -c2),
			math.FMA(t, r2, -c2),
		}, 3
	}
}

// polishRoot improves a root of c0 + c1 x + c2 x² + c3 x³ with a few Newton
// steps, keeping the original if a step makes things worse.
func polishRoot(x, c0, c1, c2, c3 float64) float64 {
	f := func(x float64) float64 { return ((c3*x+c2)*x+c1)*x + c0 }
	fx := f(x)
	for range 4 {
		df := (3*c3*x+2*c2)*x + c1
		if df == 0 {
			break
		}
		nx := x - fx/df
		nfx := f(nx)
		if math.Abs(nfx) >= math.Abs(fx) {
			break
		}
		x, fx = nx, nfx
	}
	return x
}

// solveITP finds a zero-crossing of f in [a, b] with the ITP method.
//
// ya and yb are f(a) and f(b), with ya < 0 < yb. k2 is hardwired to 2. Errors
// returned by f abort the search. The search returns ErrNonConvergence if it
// doesn't narrow the bracket to 2·epsilon within the method's worst-case
// iteration count.
//
// See https://en.wikipedia.org/wiki/ITP_Method.
func solveITP(
	f func(float64) (float64, error),
	a float64,
	b float64,
	epsilon float64,
	n0 int,
	k1 float64,
	ya float64,
	yb float64,
) (float64, error) {
	n1_2 := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1.0, 0.0))
	nmax := n0 + n1_2
	scaledEpsilon := math.Ldexp(epsilon, nmax)
	for i := 0; b-a > 2.0*epsilon; i++ {
		if i > nmax+1 {
			Logger().Debug("ITP iteration limit reached", "a", a, "b", b, "epsilon", epsilon)
			return 0.5 * (a + b), ErrNonConvergence
		}
		x1_2 := 0.5 * (a + b)
		r := scaledEpsilon - 0.5*(b-a)
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := x1_2 - xf
		delta := k1 * ((b - a) * (b - a))
		var xt float64
		if delta <= math.Abs(x1_2-xf) {
			xt = xf + math.Copysign(delta, sigma)
		} else {
			xt = x1_2
		}
		var xitp float64
		if math.Abs(xt-x1_2) <= r {
			xitp = xt
		} else {
			xitp = x1_2 - math.Copysign(r, sigma)
		}
		yitp, err := f(xitp)
		if err != nil {
			return 0, err
		}
		if yitp > 0.0 {
			b = xitp
			yb = yitp
		} else if yitp < 0.0 {
			a = xitp
			ya = yitp
		} else {
			return xitp, nil
		}
		scaledEpsilon *= 0.5
	}
	return 0.5 * (a + b), nil
}
