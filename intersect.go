package svgpath

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Intersection is a point where two segments meet, described by the
// parameter on each segment.
type Intersection struct {
	// Parameter on the first segment.
	T1 float64
	// Parameter on the second segment.
	T2 float64
}

// IntersectOptions specifies optional settings for [Intersect]. The zero
// value uses the defaults.
//
// Distances are relative to the size of the segments' combined bounding box,
// or absolute if that is smaller than 1.
type IntersectOptions struct {
	// Tolerance is the distance within which two points are considered the
	// same. Zero means 1e-9.
	Tolerance float64
	// BoxTolerance is the bounding box size at which subdivision stops.
	// Zero means 1e-7.
	BoxTolerance float64
	// MinDepth is the minimum number of subdivisions. Zero means 2.
	MinDepth int
	// MaxDepth is the maximum number of subdivisions. Zero means 64.
	MaxDepth int
	// MaxPairs limits the total number of pairs of subsegments examined.
	// Zero means 1<<18.
	MaxPairs int
}

func (opts IntersectOptions) withDefaults() IntersectOptions {
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-9
	}
	if opts.BoxTolerance <= 0 {
		opts.BoxTolerance = 1e-7
	}
	if opts.MinDepth <= 0 {
		opts.MinDepth = 2
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 64
	}
	if opts.MaxPairs <= 0 {
		opts.MaxPairs = 1 << 18
	}
	return opts
}

// Intersect returns the points where a and b cross or touch, sorted by the
// parameter on a.
//
// Lines are intersected with lines, Béziers and arcs in closed form. Other
// combinations use recursive subdivision of both segments, pruned by bounding
// boxes and refined with Newton's method.
//
// If the segments share a piece of curve of non-zero length, there are
// infinitely many intersections, and Intersect returns ErrOverlap.
func Intersect(a, b Segment, opts IntersectOptions) ([]Intersection, error) {
	opts = opts.withDefaults()
	scale := max(1, a.BoundingBox().Union(b.BoundingBox()).MaxSide())
	tol := opts.Tolerance * scale
	if Equal(a, b, tol) || Equal(a, Reversed(b), tol) {
		return nil, fmt.Errorf("identical segments: %w", ErrOverlap)
	}
	if !a.BoundingBox().Inflate(tol, tol).Overlaps(b.BoundingBox()) {
		return nil, nil
	}

	var out []Intersection
	var err error
	la, aIsLine := a.(Line)
	lb, bIsLine := b.(Line)
	switch {
	case aIsLine && bIsLine:
		out, err = intersectLines(la, lb, tol)
	case aIsLine && la.P0 != la.P1:
		out, err = intersectLineCurve(la, b, tol)
	case bIsLine && lb.P0 != lb.P1:
		out, err = intersectLineCurve(lb, a, tol)
		for i, x := range out {
			out[i] = Intersection{x.T2, x.T1}
		}
	default:
		out, err = intersectCurves(a, b, opts, scale)
	}
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(x, y Intersection) int {
		return cmp.Or(cmp.Compare(x.T1, y.T1), cmp.Compare(x.T2, y.T2))
	})
	return slices.CompactFunc(out, func(x, y Intersection) bool {
		return a.Eval(x.T1).Near(a.Eval(y.T1), tol) && b.Eval(x.T2).Near(b.Eval(y.T2), tol)
	}), nil
}

// paramEpsilon is how far outside of [0, 1] a computed parameter may lie and
// still be clamped into the range.
const paramEpsilon = 1e-9

func clampUnit(t float64) (float64, bool) {
	if t < -paramEpsilon || t > 1+paramEpsilon || math.IsNaN(t) {
		return 0, false
	}
	return min(max(t, 0), 1), true
}

// projectOnLine returns the parameter of the point of the infinite line
// through l closest to pt.
func projectOnLine(l Line, pt Point) float64 {
	d := l.P1.Sub(l.P0)
	return pt.Sub(l.P0).Dot(d) / d.Hypot2()
}

func intersectLines(a, b Line, tol float64) ([]Intersection, error) {
	d1 := a.P1.Sub(a.P0)
	d2 := b.P1.Sub(b.P0)
	switch {
	case d1.Hypot2() == 0 && d2.Hypot2() == 0:
		if a.P0.Near(b.P0, tol) {
			return []Intersection{{0, 0}}, nil
		}
		return nil, nil
	case d1.Hypot2() == 0:
		u, ok := clampUnit(projectOnLine(b, a.P0))
		if ok && b.Eval(u).Near(a.P0, tol) {
			return []Intersection{{0, u}}, nil
		}
		return nil, nil
	case d2.Hypot2() == 0:
		t, ok := clampUnit(projectOnLine(a, b.P0))
		if ok && a.Eval(t).Near(b.P0, tol) {
			return []Intersection{{t, 0}}, nil
		}
		return nil, nil
	}

	r := b.P0.Sub(a.P0)
	den := d1.Cross(d2)
	if math.Abs(den) <= 1e-12*d1.Hypot()*d2.Hypot() {
		// Parallel. Only collinear lines can meet.
		if math.Abs(r.Cross(d1)) > tol*d1.Hypot() {
			return nil, nil
		}
		u0 := projectOnLine(a, b.P0)
		u1 := projectOnLine(a, b.P1)
		lo := max(0, min(u0, u1))
		hi := min(1, max(u0, u1))
		eps := tol / d1.Hypot()
		switch {
		case hi-lo > eps:
			return nil, fmt.Errorf("collinear lines: %w", ErrOverlap)
		case hi-lo < -eps:
			return nil, nil
		default:
			// The lines touch end to end.
			t := 0.5 * (lo + hi)
			pt := a.Eval(t)
			u, _ := clampUnit(projectOnLine(b, pt))
			return []Intersection{{t, min(max(u, 0), 1)}}, nil
		}
	}
	t, okT := clampUnit(r.Cross(d2) / den)
	u, okU := clampUnit(r.Cross(d1) / den)
	if !okT || !okU {
		return nil, nil
	}
	return []Intersection{{t, u}}, nil
}

// intersectLineCurve intersects a line of non-zero length with a segment that
// isn't a line. The returned intersections have the line's parameter in T1.
func intersectLineCurve(l Line, seg Segment, tol float64) ([]Intersection, error) {
	if arc, ok := seg.(Arc); ok {
		return intersectLineArc(l, arc, tol), nil
	}
	pc, err := PolyOf(seg)
	if err != nil {
		return nil, err
	}
	// The signed distance of the curve from the line, scaled by the line's
	// length, is a polynomial in t. Its roots are the intersections.
	d := l.P1.Sub(l.P0)
	dist := pc.X.Sub(Poly{l.P0.X}).Scale(d.Y).Sub(pc.Y.Sub(Poly{l.P0.Y}).Scale(d.X))
	if dist.maxAbs() <= tol*d.Hypot() {
		// The curve lies on the line.
		return collinearCurve(l, pc, tol)
	}
	roots, err := dist.Roots()
	if err != nil {
		return nil, err
	}
	// Tangential contacts are double roots, which may be lost to rounding.
	// Look for extrema of the distance that are close enough to zero.
	if crit, err := dist.Deriv().Roots(); err == nil {
		for _, t := range crit {
			if math.Abs(dist.Eval(t)) <= tol*d.Hypot() {
				roots = append(roots, t)
			}
		}
	}
	var out []Intersection
	for _, t := range roots {
		t, ok := clampUnit(t)
		if !ok {
			continue
		}
		pt := seg.Eval(t)
		u, ok := clampUnit(projectOnLine(l, pt))
		if !ok || !l.Eval(u).Near(pt, 16*tol) {
			continue
		}
		out = append(out, Intersection{u, t})
	}
	return out, nil
}

// collinearCurve handles a polynomial curve lying on the infinite line through
// l. The curve's points project to a range of line parameters.
func collinearCurve(l Line, pc PolyCurve, tol float64) ([]Intersection, error) {
	d := l.P1.Sub(l.P0)
	inv := 1 / d.Hypot2()
	// u(t) = (pc(t) - P0)·d / |d|²
	u := pc.X.Sub(Poly{l.P0.X}).Scale(d.X * inv).Add(pc.Y.Sub(Poly{l.P0.Y}).Scale(d.Y * inv))
	lo := min(u.Eval(0), u.Eval(1))
	hi := max(u.Eval(0), u.Eval(1))
	if crit, err := u.Deriv().Roots(); err == nil {
		for _, t := range crit {
			if t > 0 && t < 1 {
				lo = min(lo, u.Eval(t))
				hi = max(hi, u.Eval(t))
			}
		}
	}
	eps := tol / d.Hypot()
	lo, hi = max(lo, 0), min(hi, 1)
	switch {
	case hi-lo > eps:
		return nil, fmt.Errorf("curve lies on line: %w", ErrOverlap)
	case hi-lo < -eps:
		return nil, nil
	}
	// The curve touches the line segment at a single point.
	target := 0.5 * (lo + hi)
	roots, err := u.Sub(Poly{target}).Roots()
	if err != nil {
		return nil, nil
	}
	var out []Intersection
	for _, t := range roots {
		if t, ok := clampUnit(t); ok {
			out = append(out, Intersection{target, t})
		}
	}
	return out, nil
}

// intersectLineArc maps the line into the frame in which the arc's ellipse is
// the unit circle and solves |P0 + u (P1 - P0)|² = 1.
func intersectLineArc(l Line, arc Arc, tol float64) []Intersection {
	toUnit := mgl64.Diag2(mgl64.Vec2{1 / arc.radii.X, 1 / arc.radii.Y}).Mul2(arc.rot.Transpose())
	q0 := toUnit.Mul2x1(glVec(l.P0.Sub(arc.center)))
	q1 := toUnit.Mul2x1(glVec(l.P1.Sub(arc.center)))
	e := q1.Sub(q0)
	a := e.Dot(e)
	b := 2 * q0.Dot(e)
	c := q0.Dot(q0) - 1

	var us []float64
	// A tangent line touches the circle where it comes closest to the
	// center. Rounding may turn that double root into no root at all.
	uMin := -b / (2 * a)
	closest := q0.Add(e.Mul(uMin))
	if math.Abs(closest.Len()-1) <= 1e-12 {
		us = append(us, uMin)
	} else {
		roots, n := SolveQuadratic(c, b, a)
		us = append(us, roots[:n]...)
	}

	angTol := degrees(tol / min(arc.radii.X, arc.radii.Y))
	var out []Intersection
	for _, u := range us {
		u, ok := clampUnit(u)
		if !ok {
			continue
		}
		q := q0.Add(e.Mul(u))
		t, ok := arc.paramNear(degrees(math.Atan2(q.Y(), q.X())), angTol)
		if !ok {
			continue
		}
		if !arc.Eval(t).Near(l.Eval(u), 16*tol) {
			continue
		}
		out = append(out, Intersection{u, t})
	}
	return out
}

// paramNear is like paramOf, but snaps angles within tol degrees of either
// end of the arc to that end.
func (a Arc) paramNear(phi, tol float64) (float64, bool) {
	span := math.Abs(a.delta)
	var u float64
	if a.delta > 0 {
		u = math.Mod(phi-a.theta, 360)
	} else {
		u = math.Mod(a.theta-phi, 360)
	}
	if u < 0 {
		u += 360
	}
	switch {
	case u > 360-tol:
		return 0, true
	case u <= span:
		return u / span, true
	case u-span <= tol:
		return 1, true
	default:
		return 0, false
	}
}

// cell is a pair of parameter intervals, one on each segment.
type cell struct {
	a0, a1 float64
	b0, b1 float64
}

func subBox(seg Segment, t0, t1 float64) Rect {
	if t0 == 0 && t1 == 1 {
		return seg.BoundingBox()
	}
	sub, err := Cropped(seg, t0, t1)
	if err != nil {
		return NewRectFromPoints(seg.Eval(t0), seg.Eval(t1))
	}
	return sub.BoundingBox()
}

// intersectCurves finds intersections by repeatedly halving both parameter
// ranges and discarding pairs of pieces whose bounding boxes don't overlap.
// The surviving small pieces are grouped into connected clusters, each of
// which is refined into one intersection.
func intersectCurves(a, b Segment, opts IntersectOptions, scale float64) ([]Intersection, error) {
	tol := opts.Tolerance * scale
	boxTol := opts.BoxTolerance * scale
	live := []cell{{0, 1, 0, 1}}
	var leaves []cell
	pairs := 1
	for depth := 0; len(live) > 0; depth++ {
		if depth > opts.MaxDepth {
			Logger().Debug("intersection depth limit reached", "depth", depth, "pairs", len(live))
			return nil, fmt.Errorf("intersection exceeded depth %d: %w", opts.MaxDepth, ErrNonConvergence)
		}
		if len(live) > 256 {
			if err := checkOverlap(a, b, live, tol); err != nil {
				return nil, err
			}
		}
		var next []cell
		for _, c := range live {
			boxA := subBox(a, c.a0, c.a1)
			boxB := subBox(b, c.b0, c.b1)
			if !boxA.Inflate(tol, tol).Overlaps(boxB) {
				continue
			}
			if depth >= opts.MinDepth && boxA.MaxSide() <= boxTol && boxB.MaxSide() <= boxTol {
				leaves = append(leaves, c)
				continue
			}
			am := 0.5 * (c.a0 + c.a1)
			bm := 0.5 * (c.b0 + c.b1)
			next = append(next,
				cell{c.a0, am, c.b0, bm},
				cell{c.a0, am, bm, c.b1},
				cell{am, c.a1, c.b0, bm},
				cell{am, c.a1, bm, c.b1},
			)
		}
		pairs += len(next)
		if pairs > opts.MaxPairs {
			Logger().Debug("intersection pair limit reached", "depth", depth, "pairs", pairs)
			return nil, fmt.Errorf("intersection exceeded %d subdivisions: %w", opts.MaxPairs, ErrNonConvergence)
		}
		live = next
	}

	var out []Intersection
	for _, cluster := range clusterCells(leaves) {
		best := cluster[0]
		bestDist := math.Inf(1)
		for _, c := range cluster {
			d := a.Eval(0.5 * (c.a0 + c.a1)).Distance(b.Eval(0.5 * (c.b0 + c.b1)))
			if d < bestDist {
				best, bestDist = c, d
			}
		}
		s, u, dist := refineIntersection(a, b, 0.5*(best.a0+best.a1), 0.5*(best.b0+best.b1))
		if dist > max(tol, 4*boxTol) {
			continue
		}
		out = append(out, Intersection{s, u})
	}
	return out, nil
}

// clusterCells groups cells whose intervals touch on both segments.
func clusterCells(cells []cell) [][]cell {
	parent := make([]int, len(cells))
	for i := range parent {
		parent[i] = i
	}
	var find func(i int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	touches := func(x0, x1, y0, y1 float64) bool { return x0 <= y1 && y0 <= x1 }
	for i := range cells {
		for j := i + 1; j < len(cells); j++ {
			ci, cj := cells[i], cells[j]
			if touches(ci.a0, ci.a1, cj.a0, cj.a1) && touches(ci.b0, ci.b1, cj.b0, cj.b1) {
				parent[find(i)] = find(j)
			}
		}
	}
	groups := map[int][]cell{}
	var order []int
	for i, c := range cells {
		r := find(i)
		if _, ok := groups[r]; !ok {
			order = append(order, r)
		}
		groups[r] = append(groups[r], c)
	}
	out := make([][]cell, 0, len(order))
	for _, r := range order {
		out = append(out, groups[r])
	}
	return out
}

// refineIntersection uses Newton's method on A(s) - B(u) = 0, returning the
// refined parameters and the remaining distance.
func refineIntersection(a, b Segment, s, u float64) (float64, float64, float64) {
	dist := a.Eval(s).Distance(b.Eval(u))
	for range 32 {
		if dist == 0 {
			break
		}
		r := a.Eval(s).Sub(b.Eval(u))
		da := a.Deriv(s, 1)
		db := b.Deriv(u, 1)
		det := -da.Cross(db)
		if det == 0 {
			break
		}
		ns := min(max(s+r.Cross(db)/det, 0), 1)
		nu := min(max(u-da.Cross(r)/det, 0), 1)
		nd := a.Eval(ns).Distance(b.Eval(nu))
		if nd >= dist {
			break
		}
		s, u, dist = ns, nu, nd
	}
	return s, u, dist
}

// checkOverlap looks for stretches along which the two segments coincide.
// Coinciding curves keep every pair of neighboring pieces alive during
// subdivision, so they show up as long contiguous runs of live cells.
func checkOverlap(a, b Segment, live []cell, tol float64) error {
	slices.SortFunc(live, func(x, y cell) int { return cmp.Compare(x.a0, y.a0) })
	runStart := 0
	for i := 1; i <= len(live); i++ {
		if i < len(live) && live[i].a0 <= live[i-1].a1 {
			continue
		}
		run := live[runStart:i]
		runStart = i
		lo, hi := run[0].a0, run[0].a1
		for _, c := range run {
			hi = max(hi, c.a1)
		}
		if hi-lo < 1e-3 {
			continue
		}
		if coincide(a, b, run, lo, hi, tol) {
			return fmt.Errorf("segments coincide for t in [%g, %g]: %w", lo, hi, ErrOverlap)
		}
	}
	return nil
}

// coincide samples a between lo and hi and reports whether every sample lies
// on b, starting the search for the closest point of b in the cells covering
// the sample.
func coincide(a, b Segment, run []cell, lo, hi, tol float64) bool {
	const samples = 9
	for i := range samples {
		s := lo + (hi-lo)*(float64(i)+0.5)/samples
		pt := a.Eval(s)
		found := false
		for _, c := range run {
			if s < c.a0 || s > c.a1 {
				continue
			}
			if _, d := closestParam(b, pt, 0.5*(c.b0+c.b1)); d <= tol {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// closestParam finds a local minimum of the distance between seg and pt with
// Newton's method, starting at u.
func closestParam(seg Segment, pt Point, u float64) (float64, float64) {
	for range 16 {
		r := seg.Eval(u).Sub(pt)
		d1 := seg.Deriv(u, 1)
		d2 := seg.Deriv(u, 2)
		den := d1.Dot(d1) + r.Dot(d2)
		if den == 0 {
			break
		}
		nu := min(max(u-r.Dot(d1)/den, 0), 1)
		if nu == u {
			break
		}
		u = nu
	}
	return u, seg.Eval(u).Distance(pt)
}

// PathIntersection is a point where two paths meet.
type PathIntersection struct {
	A, B PathLocation
}

// Intersect returns the points where p and o meet, sorted by the parameter on
// p and then on o.
//
// If o is p, Intersect finds the self-intersections of p. Each pair of
// distinct segments is considered once, and the junctions at which
// consecutive segments meet don't count as intersections.
func (p *Path) Intersect(o *Path, opts IntersectOptions) ([]PathIntersection, error) {
	opts = opts.withDefaults()
	self := p == o
	closed := self && p.IsClosed()
	var out []PathIntersection
	for i, sa := range p.segs {
		start := 0
		if self {
			start = i + 1
		}
		for j := start; j < len(o.segs); j++ {
			sb := o.segs[j]
			xs, err := Intersect(sa, sb, opts)
			if err != nil {
				return nil, fmt.Errorf("segments %d and %d: %w", i, j, err)
			}
			for _, x := range xs {
				if self && p.isJunction(i, j, x, closed) {
					continue
				}
				TA, err := p.LocalToGlobal(i, x.T1)
				if err != nil {
					return nil, err
				}
				TB, err := o.LocalToGlobal(j, x.T2)
				if err != nil {
					return nil, err
				}
				out = append(out, PathIntersection{
					A: PathLocation{T: TA, Index: i, Local: x.T1},
					B: PathLocation{T: TB, Index: j, Local: x.T2},
				})
			}
		}
	}
	slices.SortFunc(out, func(x, y PathIntersection) int {
		return cmp.Or(cmp.Compare(x.A.T, y.A.T), cmp.Compare(x.B.T, y.B.T))
	})
	// An intersection at the junction of two segments is found on both.
	return slices.CompactFunc(out, func(x, y PathIntersection) bool {
		return math.Abs(x.A.T-y.A.T) <= 1e-9 && math.Abs(x.B.T-y.B.T) <= 1e-9
	}), nil
}

// isJunction reports whether x is the point at which segments i and j of p
// are joined.
func (p *Path) isJunction(i, j int, x Intersection, closed bool) bool {
	const eps = 1e-6
	tol := p.Tolerance()
	if j == i+1 && x.T1 >= 1-eps && x.T2 <= eps && p.segs[i].End().Near(p.segs[j].Start(), tol) {
		return true
	}
	if closed && i == 0 && j == len(p.segs)-1 && x.T1 <= eps && x.T2 >= 1-eps {
		return true
	}
	return false
}
