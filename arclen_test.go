package svgpath

import (
	"errors"
	"math"
	"testing"
)

func TestArclenClosedForms(t *testing.T) {
	l := Line{Pt(0, 0), Pt(3, 4)}
	if got, err := l.Arclen(0, 1, ArclenOptions{}); err != nil || got != 5 {
		t.Errorf("got (%g, %v), want (5, nil)", got, err)
	}
	if got, err := l.Arclen(0.75, 0.25, ArclenOptions{}); err != nil || got != -2.5 {
		t.Errorf("got (%g, %v), want (-2.5, nil)", got, err)
	}

	a := mustArc(t, Pt(0, 0), Vec(2, 2), 0, false, true, Pt(4, 0))
	got, err := a.Arclen(0, 1, ArclenOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if d := math.Abs(got - 2*math.Pi); d > 1e-12 {
		t.Errorf("got %g, want %g", got, 2*math.Pi)
	}
	num, err := numericArclen(a, 0.1, 0.8, ArclenOptions{})
	if err != nil {
		t.Fatal(err)
	}
	closed, err := a.Arclen(0.1, 0.8, ArclenOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if d := math.Abs(num - closed); d > 1e-10 {
		t.Errorf("numerical length %g differs from exact length %g", num, closed)
	}
}

func TestQuadBezArclen(t *testing.T) {
	qs := []QuadBez{
		{Pt(0, 0), Pt(1, 2), Pt(3, 1)},
		{Pt(0, 0), Pt(0, 1), Pt(1, 1)},
		// sharp kink
		{Pt(0, 0), Pt(10, 0), Pt(0, 0.01)},
	}
	for _, q := range qs {
		for _, r := range [][2]float64{{0, 1}, {0.2, 0.9}, {0.6, 0.1}} {
			got, err := q.Arclen(r[0], r[1], ArclenOptions{})
			if err != nil {
				t.Fatal(err)
			}
			want, err := numericArclen(q, r[0], r[1], ArclenOptions{})
			if err != nil {
				t.Fatal(err)
			}
			if d := math.Abs(got - want); d > 1e-9 {
				t.Errorf("%v on [%g, %g]: got %g, want %g", q, r[0], r[1], got, want)
			}
		}
	}

	// Nearly straight segments fall back to integration.
	q := QuadBez{Pt(0, 0), Pt(1, 1e-5), Pt(2, 0)}
	got, err := q.Arclen(0, 1, ArclenOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if d := math.Abs(got - 2); d > 1e-8 {
		t.Errorf("got %g, want 2", got)
	}
}

func TestArclenStraightCubic(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}
	got, err := c.Arclen(0, 1, ArclenOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if d := math.Abs(got - 3); d > 1e-12 {
		t.Errorf("got %g, want 3", got)
	}
}

func TestArclenAdditive(t *testing.T) {
	for _, seg := range testSegments(t) {
		whole, err := seg.Arclen(0, 1, ArclenOptions{})
		if err != nil {
			t.Fatal(err)
		}
		a, err := seg.Arclen(0, 0.3, ArclenOptions{})
		if err != nil {
			t.Fatal(err)
		}
		b, err := seg.Arclen(0.3, 1, ArclenOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if d := math.Abs(a + b - whole); d > 1e-10 {
			t.Errorf("%T: %g + %g != %g", seg, a, b, whole)
		}
	}
}

func TestArclenMonotonic(t *testing.T) {
	for _, seg := range testSegments(t) {
		prev := 0.0
		for i := 1; i <= 50; i++ {
			l, err := seg.Arclen(0, float64(i)/50, ArclenOptions{})
			if err != nil {
				t.Fatal(err)
			}
			if l < prev {
				t.Errorf("%T: length decreased from %g to %g", seg, prev, l)
			}
			prev = l
		}
	}
}

func TestArclenOutOfDomain(t *testing.T) {
	for _, seg := range testSegments(t) {
		for _, r := range [][2]float64{{-0.1, 1}, {0, 1.1}, {math.NaN(), 0.5}} {
			if _, err := seg.Arclen(r[0], r[1], ArclenOptions{}); !errors.Is(err, ErrOutOfDomain) {
				t.Errorf("%T on [%g, %g]: got error %v, want %v", seg, r[0], r[1], err, ErrOutOfDomain)
			}
		}
	}
}

func TestArclenNonConvergence(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 1), Pt(0, 1), Pt(1, 0)}
	// Move the cusp away from the points at which intervals are split.
	sub := c.Subsegment(0.1, 1)
	if _, err := sub.Arclen(0, 1, ArclenOptions{MaxDepth: 2, MinDepth: -1}); !errors.Is(err, ErrNonConvergence) {
		t.Errorf("got error %v, want %v", err, ErrNonConvergence)
	}
	l, err := sub.Arclen(0, 1, ArclenOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if chord := sub.P3.Distance(sub.P0); l <= chord {
		t.Errorf("length %g isn't longer than the chord %g", l, chord)
	}
}

func TestSolveForArclen(t *testing.T) {
	for _, seg := range testSegments(t) {
		total, err := seg.Arclen(0, 1, ArclenOptions{})
		if err != nil {
			t.Fatal(err)
		}
		for i := range 11 {
			s := total * float64(i) / 10
			ts, err := seg.SolveForArclen(s, ArclenOptions{})
			if err != nil {
				t.Fatalf("%T: %s", seg, err)
			}
			got, err := seg.Arclen(0, ts, ArclenOptions{})
			if err != nil {
				t.Fatal(err)
			}
			if d := math.Abs(got - s); d > 1e-9 {
				t.Errorf("%T: length at %g is %g, want %g", seg, ts, got, s)
			}
		}

		if ts, err := seg.SolveForArclen(0, ArclenOptions{}); err != nil || ts != 0 {
			t.Errorf("%T: got (%g, %v), want (0, nil)", seg, ts, err)
		}
		if ts, err := seg.SolveForArclen(total, ArclenOptions{}); err != nil || ts != 1 {
			t.Errorf("%T: got (%g, %v), want (1, nil)", seg, ts, err)
		}
		for _, s := range []float64{-1, total + 1} {
			if _, err := seg.SolveForArclen(s, ArclenOptions{}); !errors.Is(err, ErrOutOfDomain) {
				t.Errorf("%T: got error %v, want %v", seg, err, ErrOutOfDomain)
			}
		}
	}
}

func TestArclenOptionsDefaults(t *testing.T) {
	got := ArclenOptions{}.withDefaults()
	want := ArclenOptions{
		Accuracy: DefaultArclenAccuracy,
		MinDepth: DefaultMinDepth,
		MaxDepth: DefaultMaxDepth,
	}
	diff(t, want, got)

	got = ArclenOptions{MinDepth: -1, MaxDepth: 3}.withDefaults()
	want = ArclenOptions{Accuracy: DefaultArclenAccuracy, MinDepth: 0, MaxDepth: 3}
	diff(t, want, got)
}
