package svgpath

import (
	"errors"
	"math"
	"testing"
)

// checkIntersections verifies that every intersection is a point on both
// segments.
func checkIntersections(t *testing.T, a, b Segment, xs []Intersection, tol float64) {
	t.Helper()
	for _, x := range xs {
		if x.T1 < 0 || x.T1 > 1 || x.T2 < 0 || x.T2 > 1 {
			t.Errorf("intersection %v out of range", x)
		}
		if pa, pb := a.Eval(x.T1), b.Eval(x.T2); !pa.Near(pb, tol) {
			t.Errorf("intersection %v: %v and %v are %g apart", x, pa, pb, pa.Distance(pb))
		}
	}
}

func TestIntersectLines(t *testing.T) {
	hLine := Line{Pt(0, 0), Pt(100, 0)}
	vLine := Line{Pt(10, -10), Pt(10, 10)}
	xs, err := Intersect(hLine, vLine, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Intersection{{0.1, 0.5}}, xs, approx(1e-12))

	// The order of the arguments determines the order of the parameters.
	xs, err = Intersect(vLine, hLine, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Intersection{{0.5, 0.1}}, xs, approx(1e-12))

	tests := []struct {
		name string
		b    Line
	}{
		{"beyond the start", Line{Pt(-10, -10), Pt(-10, 10)}},
		{"short of the line", Line{Pt(10, 10), Pt(10, 20)}},
		{"parallel", Line{Pt(0, 1), Pt(100, 1)}},
	}
	for _, tt := range tests {
		xs, err := Intersect(hLine, tt.b, IntersectOptions{})
		if err != nil {
			t.Errorf("%s: %s", tt.name, err)
		}
		if len(xs) != 0 {
			t.Errorf("%s: expected no intersections, got %v", tt.name, xs)
		}
	}
}

func TestIntersectLinesTouching(t *testing.T) {
	// end to end on the same line
	a := Line{Pt(0, 0), Pt(1, 0)}
	b := Line{Pt(1, 0), Pt(2, 0)}
	xs, err := Intersect(a, b, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Intersection{{1, 0}}, xs, approx(1e-12))

	// T junction
	c := Line{Pt(0.5, 0), Pt(0.5, 1)}
	xs, err = Intersect(a, c, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Intersection{{0.5, 0}}, xs, approx(1e-12))
}

func TestIntersectOverlap(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 3), Pt(2, -1), Pt(4, 4)}
	sub := c.Subsegment(0.2, 0.9)
	arc := mustArc(t, Pt(0, 0), Vec(2, 2), 0, false, true, Pt(4, 0))
	arcSub, err := arc.Subsegment(0.1, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		a, b Segment
	}{
		{"collinear lines", Line{Pt(0, 0), Pt(2, 0)}, Line{Pt(1, 0), Pt(3, 0)}},
		{"identical", c, c},
		{"reversed", c, c.Reverse()},
		{"cubic piece", c, sub},
		{"arc piece", arc, arcSub},
		{"quad on line", Line{Pt(0, 0), Pt(4, 0)}, QuadBez{Pt(1, 0), Pt(2, 0), Pt(3, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Intersect(tt.a, tt.b, IntersectOptions{}); !errors.Is(err, ErrOverlap) {
				t.Errorf("got error %v, want %v", err, ErrOverlap)
			}
		})
	}
}

func TestIntersectLineCubic(t *testing.T) {
	l := Line{Pt(-1, 0.5), Pt(2, 0.5)}
	// y = 3t(1-t)
	c := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	xs, err := Intersect(l, c, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 2 {
		t.Fatalf("got %d intersections, want 2", len(xs))
	}
	checkIntersections(t, l, c, xs, 1e-9)
	r := math.Sqrt(1.0 / 3.0)
	diff(t, []float64{(1 - r) / 2, (1 + r) / 2}, []float64{xs[0].T2, xs[1].T2}, approx(1e-9))

	// The same with swapped arguments.
	ys, err := Intersect(c, l, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	checkIntersections(t, c, l, ys, 1e-9)
	if len(ys) != 2 {
		t.Fatalf("got %d intersections, want 2", len(ys))
	}
}

func TestIntersectLineQuad(t *testing.T) {
	q := QuadBez{Pt(0, 0), Pt(1, 2), Pt(2, 0)}
	l := Line{Pt(0, 0.5), Pt(2, 0.5)}
	xs, err := Intersect(q, l, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 2 {
		t.Fatalf("got %d intersections, want 2", len(xs))
	}
	checkIntersections(t, q, l, xs, 1e-9)
}

func TestIntersectTangent(t *testing.T) {
	// The line touches the top of the arch.
	c := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	l := Line{Pt(-1, 0.75), Pt(2, 0.75)}
	xs, err := Intersect(l, c, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Intersection{{0.5, 0.5}}, xs, approx(1e-9))

	// Two parabolas touching at their vertices.
	q1 := QuadBez{Pt(0, 0), Pt(1, 2), Pt(2, 0)}
	q2 := QuadBez{Pt(0, 2), Pt(1, 0), Pt(2, 2)}
	xs, err = Intersect(q1, q2, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 1 {
		t.Fatalf("got %v, want one intersection", xs)
	}
	if pt := q1.Eval(xs[0].T1); !pt.Near(Pt(1, 1), 1e-3) {
		t.Errorf("got intersection at %v, want (1, 1)", pt)
	}
}

func TestIntersectLineArc(t *testing.T) {
	arc := mustArc(t, Pt(0, 0), Vec(2, 2), 0, false, true, Pt(4, 0))
	l := Line{Pt(2, -5), Pt(2, 5)}
	xs, err := Intersect(l, arc, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Intersection{{0.3, 0.5}}, xs, approx(1e-9))

	// tangent at the top of the arc
	l = Line{Pt(0, -2), Pt(4, -2)}
	xs, err = Intersect(l, arc, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Intersection{{0.5, 0.5}}, xs, approx(1e-9))

	// through both end points
	l = Line{Pt(-1, 0), Pt(5, 0)}
	xs, err = Intersect(arc, l, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Intersection{{0, 1.0 / 6.0}, {1, 5.0 / 6.0}}, xs, approx(1e-9))
}

func TestIntersectCurves(t *testing.T) {
	// mirror images of each other about y = 0.5
	a := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	b := CubicBez{Pt(0, 1), Pt(0, 0), Pt(1, 0), Pt(1, 1)}
	xs, err := Intersect(a, b, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	checkIntersections(t, a, b, xs, 1e-9)
	r := math.Sqrt(1.0 / 3.0)
	want := []Intersection{{(1 - r) / 2, (1 - r) / 2}, {(1 + r) / 2, (1 + r) / 2}}
	diff(t, want, xs, approx(1e-7))
}

func TestIntersectArcs(t *testing.T) {
	a := mustArc(t, Pt(0, 0), Vec(2, 2), 0, false, true, Pt(4, 0))
	b := a.Translate(Vec(2, 0))
	xs, err := Intersect(a, b, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	checkIntersections(t, a, b, xs, 1e-9)
	diff(t, []Intersection{{2.0 / 3.0, 1.0 / 3.0}}, xs, approx(1e-7))
}

func TestIntersectDisjoint(t *testing.T) {
	a := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	b := a.Translate(Vec(0, 2))
	xs, err := Intersect(a, b, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 0 {
		t.Errorf("expected no intersections, got %v", xs)
	}
}

func TestIntersectLimits(t *testing.T) {
	a := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	b := CubicBez{Pt(0, 1), Pt(0, 0), Pt(1, 0), Pt(1, 1)}
	_, err := Intersect(a, b, IntersectOptions{MaxDepth: 3})
	if !errors.Is(err, ErrNonConvergence) {
		t.Errorf("got error %v, want %v", err, ErrNonConvergence)
	}
	_, err = Intersect(a, b, IntersectOptions{MaxPairs: 10})
	if !errors.Is(err, ErrNonConvergence) {
		t.Errorf("got error %v, want %v", err, ErrNonConvergence)
	}
}

func TestPathIntersect(t *testing.T) {
	sq := squarePath(4)
	cut := NewPath(Line{Pt(2, -1), Pt(2, 5)})
	xs, err := sq.Intersect(cut, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := []PathIntersection{
		{
			A: PathLocation{T: 0.125, Index: 0, Local: 0.5},
			B: PathLocation{T: 1.0 / 6.0, Index: 0, Local: 1.0 / 6.0},
		},
		{
			A: PathLocation{T: 0.625, Index: 2, Local: 0.5},
			B: PathLocation{T: 5.0 / 6.0, Index: 0, Local: 5.0 / 6.0},
		},
	}
	diff(t, want, xs, approx(1e-12))
}

func TestPathIntersectJunction(t *testing.T) {
	// The cutting line passes through a corner of the square, which is
	// found on two segments but reported once.
	sq := squarePath(4)
	cut := NewPath(Line{Pt(-1, 5), Pt(5, -1)})
	xs, err := sq.Intersect(cut, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 2 {
		t.Fatalf("got %v, want two intersections", xs)
	}
	for _, x := range xs {
		a, err := sq.Eval(x.A.T)
		if err != nil {
			t.Fatal(err)
		}
		b, err := cut.Eval(x.B.T)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, a, b, approx(1e-9))
	}
}

func TestPathSelfIntersect(t *testing.T) {
	// a "Z" shape whose first and last strokes cross
	p := NewPath(
		Line{Pt(0, 0), Pt(2, 2)},
		Line{Pt(2, 2), Pt(2, 0)},
		Line{Pt(2, 0), Pt(0, 2)},
	)
	xs, err := p.Intersect(p, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 1 {
		t.Fatalf("got %v, want one intersection", xs)
	}
	x := xs[0]
	if x.A.Index != 0 || x.B.Index != 2 {
		t.Errorf("got segments %d and %d, want 0 and 2", x.A.Index, x.B.Index)
	}
	diff(t, 0.5, x.A.Local, approx(1e-12))
	diff(t, 0.5, x.B.Local, approx(1e-12))

	// The junctions of a closed path don't count.
	sq := squarePath(4)
	xs, err = sq.Intersect(sq, IntersectOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 0 {
		t.Errorf("expected no self-intersections, got %v", xs)
	}
}
