package svgpath

import (
	"fmt"
	"math"
)

const (
	// DefaultArclenAccuracy is the default absolute accuracy of arc length
	// computations.
	DefaultArclenAccuracy = 1e-12
	// DefaultMinDepth is the default minimum number of times the parameter
	// range is halved before numerical integration may stop.
	DefaultMinDepth = 5
	// DefaultMaxDepth is the default maximum subdivision depth of numerical
	// integration.
	DefaultMaxDepth = 48
)

// ArclenOptions specifies optional settings for arc length computations.
// The zero value uses the defaults.
type ArclenOptions struct {
	// Accuracy is the absolute error allowed per integration interval.
	// Zero means DefaultArclenAccuracy.
	Accuracy float64
	// MinDepth is the minimum subdivision depth. Zero means
	// DefaultMinDepth; use a negative value for no minimum.
	MinDepth int
	// MaxDepth is the maximum subdivision depth. Zero means
	// DefaultMaxDepth.
	MaxDepth int
}

func (opts ArclenOptions) withDefaults() ArclenOptions {
	if opts.Accuracy <= 0 {
		opts.Accuracy = DefaultArclenAccuracy
	}
	if opts.MinDepth == 0 {
		opts.MinDepth = DefaultMinDepth
	} else if opts.MinDepth < 0 {
		opts.MinDepth = 0
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxDepth < opts.MinDepth {
		opts.MaxDepth = opts.MinDepth
	}
	return opts
}

// gaussLegendre evaluates the integral of f over [a, b] with the given
// Gauss-Legendre weights and abscissae.
func gaussLegendre(coeffs [][2]float64, f func(float64) float64, a, b float64) float64 {
	half := 0.5 * (b - a)
	mid := 0.5 * (a + b)
	var sum float64
	for _, coeff := range coeffs {
		sum += coeff[0] * f(mid+half*coeff[1])
	}
	return sum * half
}

// integrate computes the integral of f over [a, b] by adaptive Gauss-Legendre
// quadrature, comparing the 8 and 16 point rules on each interval and halving
// intervals where they disagree.
func integrate(f func(float64) float64, a, b float64, opts ArclenOptions) (float64, error) {
	opts = opts.withDefaults()
	var rec func(a, b, coarse float64, depth int) (float64, error)
	rec = func(a, b, coarse float64, depth int) (float64, error) {
		fine := gaussLegendre(gaussLegendreCoeffs16[:], f, a, b)
		// Rounding in the sums puts a floor under the achievable accuracy.
		floor := 64 * 0x1p-52 * math.Abs(fine)
		if depth >= opts.MinDepth && math.Abs(fine-coarse) <= opts.Accuracy+floor {
			return fine, nil
		}
		if depth >= opts.MaxDepth {
			Logger().Debug("quadrature depth limit reached", "a", a, "b", b, "depth", depth)
			return fine, fmt.Errorf("arc length on [%g, %g]: %w", a, b, ErrNonConvergence)
		}
		mid := 0.5 * (a + b)
		if mid <= a || mid >= b {
			// The interval can't be split any further.
			return fine, nil
		}
		l, err := rec(a, mid, gaussLegendre(gaussLegendreCoeffs8[:], f, a, mid), depth+1)
		if err != nil {
			return 0, err
		}
		r, err := rec(mid, b, gaussLegendre(gaussLegendreCoeffs8[:], f, mid, b), depth+1)
		if err != nil {
			return 0, err
		}
		return l + r, nil
	}
	return rec(a, b, gaussLegendre(gaussLegendreCoeffs8[:], f, a, b), 0)
}

func checkUnit(t float64) error {
	if !(t >= 0 && t <= 1) {
		return fmt.Errorf("parameter %g not in [0, 1]: %w", t, ErrOutOfDomain)
	}
	return nil
}

// arclenRange validates t0 and t1 and normalizes them to t0 ≤ t1. sign is -1
// if they were swapped.
func arclenRange(t0, t1 float64) (lo, hi, sign float64, err error) {
	if err := checkUnit(t0); err != nil {
		return 0, 0, 0, err
	}
	if err := checkUnit(t1); err != nil {
		return 0, 0, 0, err
	}
	if t0 > t1 {
		return t1, t0, -1, nil
	}
	return t0, t1, 1, nil
}

// numericArclen integrates the speed of a segment over [t0, t1].
func numericArclen(seg Segment, t0, t1 float64, opts ArclenOptions) (float64, error) {
	lo, hi, sign, err := arclenRange(t0, t1)
	if err != nil {
		return 0, err
	}
	if lo == hi {
		return 0, nil
	}
	speed := func(t float64) float64 { return seg.Deriv(t, 1).Hypot() }
	l, err := integrate(speed, lo, hi, opts)
	return sign * l, err
}

// checkArclenTarget validates a target length against the total length of a
// segment, clamping values within the accuracy to [0, total].
func checkArclenTarget(s, total float64, opts ArclenOptions) (float64, error) {
	opts = opts.withDefaults()
	tol := opts.Accuracy + 64*0x1p-52*total
	if !(s >= -tol && s <= total+tol) {
		return 0, fmt.Errorf("length %g not in [0, %g]: %w", s, total, ErrOutOfDomain)
	}
	return min(max(s, 0), total), nil
}

// solveForArclen finds the parameter t at which the length of seg from 0 to t
// is s, using the ITP method on the incremental arc length.
func solveForArclen(seg Segment, s float64, opts ArclenOptions) (float64, error) {
	opts = opts.withDefaults()
	total, err := seg.Arclen(0, 1, opts)
	if err != nil {
		return 0, err
	}
	s, err = checkArclenTarget(s, total, opts)
	if err != nil {
		return 0, err
	}
	if s <= 0 {
		return 0, nil
	}
	if s >= total {
		return 1, nil
	}
	tLast := 0.0
	arclenLast := 0.0
	f := func(t float64) (float64, error) {
		l, err := seg.Arclen(tLast, t, opts)
		if err != nil {
			return 0, err
		}
		arclenLast += l
		tLast = t
		return arclenLast - s, nil
	}
	epsilon := max(opts.Accuracy/total, 0x1p-50)
	t, err := solveITP(f, 0, 1, epsilon, 1, 0.2, -s, total-s)
	if err != nil {
		return t, fmt.Errorf("inverse arc length of %g: %w", s, err)
	}
	return t, nil
}

// Tables of Legendre-Gauss quadrature coefficients, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>

var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs16 = [...][2]float64{
	{0.1894506104550685, -0.0950125098376374},
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, -0.2816035507792589},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, -0.4580167776572274},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, -0.6178762444026438},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, -0.7554044083550030},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, -0.8656312023878318},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, -0.9445750230732326},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, -0.9894009349916499},
	{0.0271524594117541, 0.9894009349916499},
}
