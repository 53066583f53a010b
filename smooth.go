package svgpath

import (
	"fmt"
	"math"
)

// DefaultSmoothTolerance is the default tolerance for comparing unit tangents
// at joints.
const DefaultSmoothTolerance = 1e-8

// SmoothOptions specifies optional settings for [Smoothed]. The zero value
// uses the defaults.
type SmoothOptions struct {
	// MaxJointSize limits the length of path replaced at each joint. Zero
	// means 3.
	MaxJointSize float64
	// Tightness controls how sharply the inserted curves turn. It must lie
	// in (0, 2); larger values hug the original corner more closely. Zero
	// means 1.99.
	Tightness float64
	// Tolerance is how close the dot product of the unit tangents on both
	// sides of a joint must be to 1 for the joint to count as smooth. Zero
	// means DefaultSmoothTolerance.
	Tolerance float64
	// IgnoreUnfixable suppresses the error for joints at which the path
	// reverses direction.
	IgnoreUnfixable bool
}

func (opts SmoothOptions) withDefaults() SmoothOptions {
	if opts.MaxJointSize == 0 {
		opts.MaxJointSize = 3
	}
	if opts.Tightness == 0 {
		opts.Tightness = 1.99
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultSmoothTolerance
	}
	return opts
}

// Kinks returns the indices of segments that start at a joint where the path
// isn't differentiable. The first segment only counts if the path is closed.
// Joints at which a tangent is undefined count as kinks.
func Kinks(p *Path, tol float64) []int {
	if tol <= 0 {
		tol = DefaultSmoothTolerance
	}
	closed := p.IsClosed()
	var out []int
	n := p.Len()
	for i := range n {
		if i == 0 && !closed {
			continue
		}
		u, err0 := p.segs[(i-1+n)%n].UnitTangent(1)
		v, err1 := p.segs[i].UnitTangent(0)
		if err0 != nil || err1 != nil || math.Abs(u.Dot(v)-1) > tol {
			out = append(out, i)
		}
	}
	return out
}

// IsSmooth reports whether the path has no kinks.
func IsSmooth(p *Path, tol float64) bool {
	return len(Kinks(p, tol)) == 0
}

// Smoothed returns a copy of p in which every kink has been replaced by a
// cubic Bézier that joins the adjacent segments with matching tangents. The
// segments on either side of a kink are shortened to make room.
//
// Joints at which the path turns back on itself by 180° can't be smoothed
// this way. They are left as they are and reported with an
// [*UnfixableKinksError], unless opts.IgnoreUnfixable is set. Along with that
// error, Smoothed still returns the path with all other joints smoothed.
//
// The path must be continuous, otherwise ErrUndefinedOperation is returned.
func Smoothed(p *Path, opts SmoothOptions) (*Path, error) {
	opts = opts.withDefaults()
	if !(opts.Tightness > 0 && opts.Tightness < 2) {
		return nil, fmt.Errorf("tightness %g not in (0, 2): %w", opts.Tightness, ErrOutOfDomain)
	}
	if !(opts.MaxJointSize > 0) {
		return nil, fmt.Errorf("joint size %g not positive: %w", opts.MaxJointSize, ErrOutOfDomain)
	}
	if p.Len() <= 1 {
		return p.Clone(), nil
	}
	if !p.IsContinuous() {
		return nil, fmt.Errorf("smoothing discontinuous path: %w", ErrUndefinedOperation)
	}

	n := p.Len()
	closed := p.IsClosed()
	out := []Segment{p.segs[0]}
	var sharp []int
	for i := range n {
		last := i == n-1
		var seg1 Segment
		if last {
			if !closed {
				break
			}
			seg1 = out[0]
		} else {
			seg1 = p.segs[i+1]
		}
		seg0 := out[len(out)-1]
		kink := (i + 1) % n

		u, err := seg0.UnitTangent(1)
		if err != nil {
			return nil, fmt.Errorf("joint before segment %d: %w", kink, err)
		}
		v, err := seg1.UnitTangent(0)
		if err != nil {
			return nil, fmt.Errorf("joint before segment %d: %w", kink, err)
		}
		dot := u.Dot(v)
		switch {
		case math.Abs(dot-1) <= opts.Tolerance:
			if !last {
				out = append(out, seg1)
			}
		case math.Abs(dot+1) <= opts.Tolerance:
			sharp = append(sharp, kink)
			if !last {
				out = append(out, seg1)
			}
		default:
			new0, elbow, new1, err := smoothJoint(seg0, seg1, opts, p.opts)
			if err != nil {
				return nil, fmt.Errorf("joint before segment %d: %w", kink, err)
			}
			out[len(out)-1] = new0
			out = append(out, elbow)
			if last {
				out[0] = new1
			} else {
				out = append(out, new1)
			}
		}
	}

	res := p.derive(out)
	if len(sharp) > 0 {
		Logger().Warn("path has joints that can't be smoothed", "segments", sharp)
		if !opts.IgnoreUnfixable {
			return res, &UnfixableKinksError{Indices: sharp}
		}
	}
	return res, nil
}

// smoothJoint replaces the corner at which seg0 ends and seg1 starts. It
// returns the shortened segments and the cubic Bézier joining them.
//
// With v and w the unit tangents on both sides of the corner q, the elbow
// between two lines runs from q - a·v to q + a·w. Next to a curve, it runs from
// the line to q itself, leaving the curve untouched. Between two curves, both
// are cropped by a/2 and joined directly.
func smoothJoint(seg0, seg1 Segment, opts SmoothOptions, aopts ArclenOptions) (Segment, CubicBez, Segment, error) {
	q := seg0.End()
	v, err := seg0.UnitTangent(1)
	if err != nil {
		return nil, CubicBez{}, nil, err
	}
	w, err := seg1.UnitTangent(0)
	if err != nil {
		return nil, CubicBez{}, nil, err
	}
	l0, err := seg0.Arclen(0, 1, aopts)
	if err != nil {
		return nil, CubicBez{}, nil, err
	}
	l1, err := seg1.Arclen(0, 1, aopts)
	if err != nil {
		return nil, CubicBez{}, nil, err
	}
	a := min(opts.MaxJointSize/2, min(l0, l1)/20)

	_, line0 := seg0.(Line)
	_, line1 := seg1.(Line)
	switch {
	case line0 && line1:
		b := (2 - opts.Tightness) * a
		elbow := CubicBez{
			q.Translate(v.Mul(-a)),
			q.Translate(v.Mul(-(a - b/3))),
			q.Translate(w.Mul(a - b/3)),
			q.Translate(w.Mul(a)),
		}
		return Line{seg0.Start(), elbow.P0}, elbow, Line{elbow.P3, seg1.End()}, nil
	case line0:
		b := (4 - opts.Tightness) * a
		elbow := CubicBez{
			q.Translate(v.Mul(-a)),
			q.Translate(v.Mul(b/3 - a)),
			q.Translate(w.Mul(-b / 3)),
			q,
		}
		return Line{seg0.Start(), elbow.P0}, elbow, seg1, nil
	case line1:
		r1, relbow, r0, err := smoothJoint(Reversed(seg1), Reversed(seg0), opts, aopts)
		if err != nil {
			return nil, CubicBez{}, nil, err
		}
		return Reversed(r0), relbow.Reverse(), Reversed(r1), nil
	default:
		t0, err := seg0.SolveForArclen(l0-a/2, aopts)
		if err != nil {
			return nil, CubicBez{}, nil, err
		}
		t1, err := seg1.SolveForArclen(a/2, aopts)
		if err != nil {
			return nil, CubicBez{}, nil, err
		}
		c0, err := Cropped(seg0, 0, t0)
		if err != nil {
			return nil, CubicBez{}, nil, err
		}
		c1, err := Cropped(seg1, t1, 1)
		if err != nil {
			return nil, CubicBez{}, nil, err
		}
		v0, err := c0.UnitTangent(1)
		if err != nil {
			return nil, CubicBez{}, nil, err
		}
		w1, err := c1.UnitTangent(0)
		if err != nil {
			return nil, CubicBez{}, nil, err
		}
		k := (2 - opts.Tightness) * a / 6
		elbow := CubicBez{
			c0.End(),
			c0.End().Translate(v0.Mul(k)),
			c1.Start().Translate(w1.Mul(-k)),
			c1.Start(),
		}
		return c0, elbow, c1, nil
	}
}
