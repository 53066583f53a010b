package svgpath

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"sync"
)

// Path is a sequence of segments.
//
// The global parameter T of a path runs from 0 to 1 and is proportional to
// the arc length traveled, so that T = 0.5 is halfway along the path. The
// mapping between T and segment parameters uses a table of cumulative segment
// lengths, which is built on first use and discarded by every modification.
//
// Read-only methods may be called concurrently. Modifying methods must not be
// called concurrently with any other method.
type Path struct {
	segs      []Segment
	tolerance float64
	opts      ArclenOptions

	mu sync.Mutex
	// lengths[i] is the length of segs[:i]. nil if stale.
	lengths []float64
}

// NewPath returns a path consisting of segs.
func NewPath(segs ...Segment) *Path {
	return &Path{segs: slices.Clone(segs)}
}

// Len returns the number of segments.
func (p *Path) Len() int {
	return len(p.segs)
}

// At returns the i-th segment. It panics if i is out of range.
func (p *Path) At(i int) Segment {
	return p.segs[i]
}

// Set replaces the i-th segment.
func (p *Path) Set(i int, seg Segment) {
	p.segs[i] = seg
	p.invalidate()
}

// Append adds segments to the end of the path.
func (p *Path) Append(segs ...Segment) {
	p.segs = append(p.segs, segs...)
	p.invalidate()
}

// Insert inserts segments before the i-th segment.
func (p *Path) Insert(i int, segs ...Segment) {
	p.segs = slices.Insert(p.segs, i, segs...)
	p.invalidate()
}

// Delete removes the i-th segment.
func (p *Path) Delete(i int) {
	p.segs = slices.Delete(p.segs, i, i+1)
	p.invalidate()
}

// Segments returns an iterator over the indices and segments of the path.
func (p *Path) Segments() iter.Seq2[int, Segment] {
	return slices.All(p.segs)
}

// Clone returns a copy of the path.
func (p *Path) Clone() *Path {
	return &Path{
		segs:      slices.Clone(p.segs),
		tolerance: p.tolerance,
		opts:      p.opts,
	}
}

// SetTolerance sets the distance below which end points are considered to
// coincide. Zero means DefaultTolerance.
func (p *Path) SetTolerance(tol float64) {
	p.tolerance = tol
}

// Tolerance returns the path's tolerance for comparing end points.
func (p *Path) Tolerance() float64 {
	if p.tolerance <= 0 {
		return DefaultTolerance
	}
	return p.tolerance
}

// SetArclenOptions sets the options used for computing segment lengths.
func (p *Path) SetArclenOptions(opts ArclenOptions) {
	p.opts = opts
	p.invalidate()
}

// ArclenOptions returns the options used for computing segment lengths.
func (p *Path) ArclenOptions() ArclenOptions {
	return p.opts
}

func (p *Path) invalidate() {
	p.mu.Lock()
	p.lengths = nil
	p.mu.Unlock()
}

// table returns the cumulative length table, computing it if necessary.
func (p *Path) table() ([]float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lengths != nil {
		return p.lengths, nil
	}
	if len(p.segs) == 0 {
		return nil, fmt.Errorf("empty path: %w", ErrUndefinedOperation)
	}
	lengths := make([]float64, len(p.segs)+1)
	for i, seg := range p.segs {
		l, err := seg.Arclen(0, 1, p.opts)
		if err != nil {
			return nil, fmt.Errorf("length of segment %d: %w", i, err)
		}
		lengths[i+1] = lengths[i] + l
	}
	p.lengths = lengths
	return lengths, nil
}

// Length returns the length of the path.
func (p *Path) Length() (float64, error) {
	lengths, err := p.table()
	if err != nil {
		return 0, err
	}
	return lengths[len(lengths)-1], nil
}

// Arclen returns the length of the path between T0 and T1. If T0 > T1, the
// result is negative.
func (p *Path) Arclen(T0, T1 float64) (float64, error) {
	if _, _, _, err := arclenRange(T0, T1); err != nil {
		return 0, err
	}
	total, err := p.Length()
	if err != nil {
		return 0, err
	}
	return (T1 - T0) * total, nil
}

// PathLocation identifies a point on a path both by the global parameter T
// and by the index of a segment and the parameter within that segment.
type PathLocation struct {
	T     float64
	Index int
	Local float64
}

// SolveForArclen finds the location at which the length of the path from its
// start is s. It first finds the segment whose range of cumulative lengths
// contains s, then solves for the parameter within that segment.
//
// A length at the junction of two segments resolves to the start of the
// following segment that has a non-zero length. The total length resolves to
// the end of the last segment.
func (p *Path) SolveForArclen(s float64) (PathLocation, error) {
	lengths, err := p.table()
	if err != nil {
		return PathLocation{}, err
	}
	n := len(p.segs)
	total := lengths[n]
	s, err = checkArclenTarget(s, total, p.opts)
	if err != nil {
		return PathLocation{}, err
	}
	if total == 0 {
		return PathLocation{Index: 0}, nil
	}
	T := s / total
	if s >= total {
		return PathLocation{T: 1, Index: n - 1, Local: 1}, nil
	}
	k := sort.Search(n, func(k int) bool { return lengths[k+1] > s })
	if k == n {
		return PathLocation{T: 1, Index: n - 1, Local: 1}, nil
	}
	local := s - lengths[k]
	if local <= 0 {
		return PathLocation{T: T, Index: k, Local: 0}, nil
	}
	t, err := p.segs[k].SolveForArclen(local, p.opts)
	if err != nil {
		return PathLocation{}, fmt.Errorf("segment %d: %w", k, err)
	}
	return PathLocation{T: T, Index: k, Local: t}, nil
}

// GlobalToLocal maps the global parameter T to a segment index and the
// parameter within that segment.
//
// T values at the junction of two segments resolve to t = 0 of the following
// segment with non-zero length, and T = 1 resolves to t = 1 of the last
// segment. If the path has zero length, every T other than 1 resolves to
// segment 0 with t = T.
func (p *Path) GlobalToLocal(T float64) (int, float64, error) {
	if err := checkUnit(T); err != nil {
		return 0, 0, err
	}
	total, err := p.Length()
	if err != nil {
		return 0, 0, err
	}
	if T == 1 {
		return len(p.segs) - 1, 1, nil
	}
	if total == 0 {
		return 0, T, nil
	}
	loc, err := p.SolveForArclen(T * total)
	if err != nil {
		return 0, 0, err
	}
	return loc.Index, loc.Local, nil
}

// LocalToGlobal maps the parameter t of the k-th segment to the global
// parameter T. It panics if k is out of range and returns
// ErrUndefinedOperation for paths of zero length, where T isn't determined
// by the position along the path.
func (p *Path) LocalToGlobal(k int, t float64) (float64, error) {
	seg := p.segs[k]
	if err := checkUnit(t); err != nil {
		return 0, err
	}
	lengths, err := p.table()
	if err != nil {
		return 0, err
	}
	total := lengths[len(lengths)-1]
	if total == 0 {
		return 0, fmt.Errorf("global parameter on zero-length path: %w", ErrUndefinedOperation)
	}
	l, err := seg.Arclen(0, t, p.opts)
	if err != nil {
		return 0, fmt.Errorf("segment %d: %w", k, err)
	}
	return min(max((lengths[k]+l)/total, 0), 1), nil
}

// Eval returns the point at the global parameter T.
func (p *Path) Eval(T float64) (Point, error) {
	k, t, err := p.GlobalToLocal(T)
	if err != nil {
		return Point{}, err
	}
	return p.segs[k].Eval(t), nil
}

// Deriv returns the n-th derivative of the segment at T, with respect to the
// segment's own parameter.
func (p *Path) Deriv(T float64, n int) (Vec2, error) {
	checkDerivOrder(n)
	k, t, err := p.GlobalToLocal(T)
	if err != nil {
		return Vec2{}, err
	}
	return p.segs[k].Deriv(t, n), nil
}

// UnitTangent returns the direction of travel at T.
func (p *Path) UnitTangent(T float64) (Vec2, error) {
	k, t, err := p.GlobalToLocal(T)
	if err != nil {
		return Vec2{}, err
	}
	return p.segs[k].UnitTangent(t)
}

// Normal returns the unit tangent at T rotated by -90°.
func (p *Path) Normal(T float64) (Vec2, error) {
	k, t, err := p.GlobalToLocal(T)
	if err != nil {
		return Vec2{}, err
	}
	return p.segs[k].Normal(t)
}

// Curvature returns the signed curvature at T.
func (p *Path) Curvature(T float64) (float64, error) {
	k, t, err := p.GlobalToLocal(T)
	if err != nil {
		return 0, err
	}
	return p.segs[k].Curvature(t)
}

// Start returns the start point of the first segment. It panics if the path
// is empty.
func (p *Path) Start() Point {
	return p.segs[0].Start()
}

// End returns the end point of the last segment. It panics if the path is
// empty.
func (p *Path) End() Point {
	return p.segs[len(p.segs)-1].End()
}

// IsContinuous reports whether each segment starts where the previous one
// ends.
func (p *Path) IsContinuous() bool {
	tol := p.Tolerance()
	for i := 1; i < len(p.segs); i++ {
		if !p.segs[i-1].End().Near(p.segs[i].Start(), tol) {
			return false
		}
	}
	return true
}

// IsClosed reports whether the path is continuous and ends where it starts.
func (p *Path) IsClosed() bool {
	return len(p.segs) > 0 && p.IsContinuous() && p.End().Near(p.Start(), p.Tolerance())
}

// ContinuousSubpaths returns an iterator over the maximal continuous runs of
// segments.
func (p *Path) ContinuousSubpaths() iter.Seq[*Path] {
	return func(yield func(*Path) bool) {
		tol := p.Tolerance()
		start := 0
		for i := 1; i <= len(p.segs); i++ {
			if i < len(p.segs) && p.segs[i-1].End().Near(p.segs[i].Start(), tol) {
				continue
			}
			sub := &Path{
				segs:      slices.Clone(p.segs[start:i]),
				tolerance: p.tolerance,
				opts:      p.opts,
			}
			if !yield(sub) {
				return
			}
			start = i
		}
	}
}

// derive returns a path with the same settings as p and the given segments.
func (p *Path) derive(segs []Segment) *Path {
	return &Path{
		segs:      segs,
		tolerance: p.tolerance,
		opts:      p.opts,
	}
}

// Reversed returns the path traversed backwards.
func (p *Path) Reversed() *Path {
	segs := make([]Segment, len(p.segs))
	for i, seg := range p.segs {
		segs[len(segs)-1-i] = Reversed(seg)
	}
	return p.derive(segs)
}

// Translated returns the path moved by v.
func (p *Path) Translated(v Vec2) *Path {
	segs := make([]Segment, len(p.segs))
	for i, seg := range p.segs {
		segs[i] = Translated(seg, v)
	}
	return p.derive(segs)
}

// Rotated returns the path rotated by deg degrees about origin.
func (p *Path) Rotated(deg float64, origin Point) *Path {
	segs := make([]Segment, len(p.segs))
	for i, seg := range p.segs {
		segs[i] = Rotated(seg, deg, origin)
	}
	return p.derive(segs)
}

// BoundingBox returns the union of the segments' bounding boxes. It returns
// ErrUndefinedOperation for an empty path.
func (p *Path) BoundingBox() (Rect, error) {
	if len(p.segs) == 0 {
		return Rect{}, fmt.Errorf("bounding box of empty path: %w", ErrUndefinedOperation)
	}
	bbox := p.segs[0].BoundingBox()
	for _, seg := range p.segs[1:] {
		bbox = bbox.Union(seg.BoundingBox())
	}
	return bbox, nil
}

// Cropped returns the part of the path between T0 and T1. T0 must not be
// greater than T1.
func (p *Path) Cropped(T0, T1 float64) (*Path, error) {
	if err := checkUnit(T0); err != nil {
		return nil, err
	}
	if err := checkUnit(T1); err != nil {
		return nil, err
	}
	if T0 > T1 {
		return nil, fmt.Errorf("crop from %g to %g: %w", T0, T1, ErrOutOfDomain)
	}
	k0, t0, err := p.GlobalToLocal(T0)
	if err != nil {
		return nil, err
	}
	k1, t1, err := p.GlobalToLocal(T1)
	if err != nil {
		return nil, err
	}
	var segs []Segment
	for k := k0; k <= k1; k++ {
		lo, hi := 0.0, 1.0
		if k == k0 {
			lo = t0
		}
		if k == k1 {
			hi = t1
		}
		if lo >= hi {
			continue
		}
		if lo == 0 && hi == 1 {
			segs = append(segs, p.segs[k])
			continue
		}
		seg, err := Cropped(p.segs[k], lo, hi)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", k, err)
		}
		segs = append(segs, seg)
	}
	return p.derive(segs), nil
}

// Equal reports whether both paths consist of equal segments, compared with
// [Equal].
func (p *Path) Equal(o *Path, tol float64) bool {
	return slices.EqualFunc(p.segs, o.segs, func(a, b Segment) bool {
		return Equal(a, b, tol)
	})
}
