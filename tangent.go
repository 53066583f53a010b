package svgpath

import (
	"fmt"
	"math/cmplx"
)

// polyUnitTangent computes the unit tangent of a polynomial segment.
//
// Where the derivative vanishes, the direction is the limit of d/|d|. With
// d = x' + iy', that limit is the square root of lim d²/|d|², which is a
// rational function of t. The sign of the root is chosen to agree with the
// first higher derivative that doesn't vanish, approached from inside the
// segment.
func polyUnitTangent(seg Polynomial, t float64) (Vec2, error) {
	pc := seg.Poly()
	n := max(len(pc.X), len(pc.Y)) - 1
	derivs := make([]Vec2, n)
	var scale float64
	for k := 1; k <= n; k++ {
		derivs[k-1] = seg.Deriv(t, k)
		scale = max(scale, derivs[k-1].Hypot())
	}
	if scale == 0 {
		return Vec2{}, fmt.Errorf("tangent of point-like segment: %w", ErrUndefinedOperation)
	}
	if d := derivs[0]; d.Hypot() > limitEpsilon*scale {
		return d.Normalize(), nil
	}

	// Taylor expansion of the derivative about t, in powers of s = t' - t,
	// without the constant term, which vanishes.
	dx := make(Poly, n)
	dy := make(Poly, n)
	fact := 1.0
	for k := 2; k <= n; k++ {
		fact *= float64(k - 1)
		dx[k-1] = derivs[k-1].X / fact
		dy[k-1] = derivs[k-1].Y / fact
	}
	den := dx.Mul(dx).Add(dy.Mul(dy))
	re, err := RationalLimit(dx.Mul(dx).Sub(dy.Mul(dy)), den, 0)
	if err != nil {
		return Vec2{}, fmt.Errorf("tangent at %g: %w", t, err)
	}
	im, err := RationalLimit(dx.Mul(dy).Scale(2), den, 0)
	if err != nil {
		return Vec2{}, fmt.Errorf("tangent at %g: %w", t, err)
	}
	z := cmplx.Sqrt(complex(re, im))
	tan := Vec2{X: real(z), Y: imag(z)}

	for k := 2; k <= n; k++ {
		dk := derivs[k-1]
		if dk.Hypot() <= limitEpsilon*scale {
			continue
		}
		// Near t, d ≈ dk sᵏ⁻¹. At the end of the segment s is negative.
		if t >= 1 && k%2 == 0 {
			dk = dk.Negate()
		}
		if tan.Dot(dk) < 0 {
			tan = tan.Negate()
		}
		break
	}
	return tan.Normalize(), nil
}
