package svgpath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Arc is an elliptical arc, described the way SVG's "A" command does: by its
// end points, radii, the rotation of the ellipse and two flags selecting one
// of the four arcs that satisfy these constraints.
//
// The center and angular span are derived when the arc is constructed, see
// [NewArc]. The zero value is not a valid arc.
type Arc struct {
	start    Point
	end      Point
	radii    Vec2
	rotation float64
	large    bool
	sweep    bool

	center Point
	// Start angle and signed angular span in the ellipse's own frame, in
	// degrees.
	theta float64
	delta float64
	// Rotation of the ellipse's axes.
	rot mgl64.Mat2
}

// NewArc returns the elliptical arc from start to end.
//
// rotation is the angle of the ellipse's x axis in degrees. If large is set,
// the arc spanning more than 180° is chosen. If sweep is set, the arc is
// traversed in the direction of positive angles.
//
// Negative radii are replaced by their absolute values. If the radii are too
// small for an ellipse to pass through both end points, they are scaled up
// uniformly to the smallest size that does. Zero radii, identical end points
// and infinite or NaN arguments return ErrMalformedSegment.
func NewArc(start Point, radii Vec2, rotation float64, large, sweep bool, end Point) (Arc, error) {
	if !start.isFinite() || !end.isFinite() || radii.IsInf() || radii.IsNaN() ||
		math.IsInf(rotation, 0) || math.IsNaN(rotation) {
		return Arc{}, fmt.Errorf("arc with non-finite parameters: %w", ErrMalformedSegment)
	}
	rx := math.Abs(radii.X)
	ry := math.Abs(radii.Y)
	if rx == 0 || ry == 0 {
		return Arc{}, fmt.Errorf("arc with zero radius: %w", ErrMalformedSegment)
	}
	if start == end {
		return Arc{}, fmt.Errorf("arc with identical end points: %w", ErrMalformedSegment)
	}

	psi := radians(rotation)
	toFrame := mgl64.Rotate2D(-psi)
	mid := toFrame.Mul2x1(glVec(start.Sub(end).Mul(0.5)))
	lambda := mid.X()*mid.X()/(rx*rx) + mid.Y()*mid.Y()/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Find the center in the frame where the ellipse is the unit circle.
	toUnit := mgl64.Diag2(mgl64.Vec2{1 / rx, 1 / ry}).Mul2(toFrame)
	p1 := toUnit.Mul2x1(glVec(Vec2(start)))
	p2 := toUnit.Mul2x1(glVec(Vec2(end)))
	d := p2.Sub(p1)
	scale := math.Sqrt(max(1/d.Dot(d)-0.25, 0))
	if math.IsInf(scale, 0) || math.IsNaN(scale) {
		return Arc{}, fmt.Errorf("arc with degenerate chord: %w", ErrMalformedSegment)
	}
	if sweep == large {
		scale = -scale
	}
	d = d.Mul(scale)
	c := p1.Add(p2).Mul(0.5).Add(mgl64.Vec2{-d.Y(), d.X()})

	theta1 := math.Atan2(p1.Y()-c.Y(), p1.X()-c.X())
	theta2 := math.Atan2(p2.Y()-c.Y(), p2.X()-c.X())
	dtheta := theta2 - theta1
	if dtheta < 0 && sweep {
		dtheta += 2 * math.Pi
	} else if dtheta > 0 && !sweep {
		dtheta -= 2 * math.Pi
	}

	rot := mgl64.Rotate2D(psi)
	center := rot.Mul2(mgl64.Diag2(mgl64.Vec2{rx, ry})).Mul2x1(c)
	return Arc{
		start:    start,
		end:      end,
		radii:    Vec2{rx, ry},
		rotation: rotation,
		large:    large,
		sweep:    sweep,
		center:   Point{center.X(), center.Y()},
		theta:    degrees(theta1),
		delta:    degrees(dtheta),
		rot:      rot,
	}, nil
}

func radians(deg float64) float64 { return deg * (math.Pi / 180) }
func degrees(rad float64) float64 { return rad * (180 / math.Pi) }

func glVec(v Vec2) mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

// Center returns the center of the ellipse.
func (a Arc) Center() Point { return a.center }

// Radii returns the radii, after correction for radii that were too small.
func (a Arc) Radii() Vec2 { return a.radii }

// Rotation returns the rotation of the ellipse in degrees.
func (a Arc) Rotation() float64 { return a.rotation }

func (a Arc) LargeArc() bool { return a.large }
func (a Arc) Sweep() bool    { return a.sweep }

// Theta returns the angle in degrees, in the ellipse's frame, at which the
// arc starts.
func (a Arc) Theta() float64 { return a.theta }

// Delta returns the signed angle in degrees spanned by the arc. It is
// positive if the sweep flag is set.
func (a Arc) Delta() float64 { return a.delta }

func (a Arc) Start() Point { return a.start }
func (a Arc) End() Point   { return a.end }

// sampleEllipse returns the offset from the center to the point at angle phi,
// in radians.
func (a Arc) sampleEllipse(phi float64) Vec2 {
	sin, cos := math.Sincos(phi)
	v := a.rot.Mul2x1(mgl64.Vec2{a.radii.X * cos, a.radii.Y * sin})
	return Vec2{v.X(), v.Y()}
}

func (a Arc) Eval(t float64) Point {
	switch t {
	case 0:
		return a.start
	case 1:
		return a.end
	default:
		return a.center.Translate(a.sampleEllipse(radians(a.theta + t*a.delta)))
	}
}

// Deriv differentiates the parametrization center + R(ψ)·(rx cos φ, ry sin φ)
// with φ linear in t. The n-th derivative of cos and sin is a phase shift by
// n·π/2.
func (a Arc) Deriv(t float64, n int) Vec2 {
	checkDerivOrder(n)
	dr := radians(a.delta)
	phi := radians(a.theta+t*a.delta) + float64(n)*math.Pi/2
	return a.sampleEllipse(phi).Mul(math.Pow(dr, float64(n)))
}

func (a Arc) UnitTangent(t float64) (Vec2, error) {
	return a.Deriv(t, 1).Normalize(), nil
}

func (a Arc) Normal(t float64) (Vec2, error) {
	return normalOf(a.UnitTangent(t))
}

func (a Arc) Curvature(t float64) (float64, error) {
	return curvatureOf(a, t)
}

func (a Arc) isCircular() bool {
	return a.radii.X == a.radii.Y
}

// Arclen returns the length of the part of the arc between t0 and t1. It is
// exact for circular arcs and uses numerical integration otherwise.
func (a Arc) Arclen(t0, t1 float64, opts ArclenOptions) (float64, error) {
	if !a.isCircular() {
		return numericArclen(a, t0, t1, opts)
	}
	if _, _, _, err := arclenRange(t0, t1); err != nil {
		return 0, err
	}
	return a.radii.X * math.Abs(radians(a.delta)) * (t1 - t0), nil
}

func (a Arc) SolveForArclen(s float64, opts ArclenOptions) (float64, error) {
	if !a.isCircular() {
		return solveForArclen(a, s, opts)
	}
	total := a.radii.X * math.Abs(radians(a.delta))
	s, err := checkArclenTarget(s, total, opts)
	if err != nil {
		return 0, err
	}
	return min(s/total, 1), nil
}

// paramOf returns the parameter at which the arc passes through the angle phi,
// in degrees. It reports false if that angle isn't inside the arc.
func (a Arc) paramOf(phi float64) (float64, bool) {
	var u float64
	if a.delta > 0 {
		u = math.Mod(phi-a.theta, 360)
	} else {
		u = math.Mod(a.theta-phi, 360)
	}
	if u < 0 {
		u += 360
	}
	t := u / math.Abs(a.delta)
	return t, t >= 0 && t <= 1
}

// BoundingBox includes the end points and the extrema of the ellipse that
// lie within the arc.
func (a Arc) BoundingBox() Rect {
	bbox := NewRectFromPoints(a.start, a.end)
	sin, cos := math.Sincos(radians(a.rotation))
	rx, ry := a.radii.X, a.radii.Y
	phiX := degrees(math.Atan2(-ry*sin, rx*cos))
	phiY := degrees(math.Atan2(ry*cos, rx*sin))
	for _, phi := range [...]float64{phiX, phiX + 180, phiY, phiY + 180} {
		if t, ok := a.paramOf(phi); ok {
			bbox = bbox.UnionPoint(a.Eval(t))
		}
	}
	return bbox
}

// Reverse returns the arc traversed from end to start.
func (a Arc) Reverse() Arc {
	a.start, a.end = a.end, a.start
	a.sweep = !a.sweep
	a.theta += a.delta
	a.delta = -a.delta
	return a
}

func (a Arc) Translate(v Vec2) Arc {
	a.start = a.start.Translate(v)
	a.end = a.end.Translate(v)
	a.center = a.center.Translate(v)
	return a
}

// Rotate rotates the arc by deg degrees about origin. The ellipse's rotation
// changes by the same amount.
func (a Arc) Rotate(deg float64, origin Point) Arc {
	aff := RotateDegAbout(deg, origin)
	a.start = a.start.Transform(aff)
	a.end = a.end.Transform(aff)
	a.center = a.center.Transform(aff)
	a.rotation += deg
	a.rot = mgl64.Rotate2D(radians(a.rotation))
	return a
}

// Subsegment returns the part of the arc between t0 and t1 as an arc on the
// same ellipse. It returns ErrMalformedSegment if t0 == t1.
func (a Arc) Subsegment(t0, t1 float64) (Arc, error) {
	if t0 == t1 {
		return Arc{}, fmt.Errorf("empty arc subsegment at %g: %w", t0, ErrMalformedSegment)
	}
	out := a
	out.start = a.Eval(t0)
	out.end = a.Eval(t1)
	out.theta = a.theta + t0*a.delta
	out.delta = (t1 - t0) * a.delta
	out.sweep = out.delta > 0
	out.large = math.Abs(out.delta) > 180
	return out, nil
}
