package svgpath

import "testing"

func TestLineSolveForArclen(t *testing.T) {
	l := Line{Pt(0, 0), Pt(1, 1)}
	ts, err := l.SolveForArclen(l.Length()/3, ArclenOptions{})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 1.0/3.0, ts, approx(1e-12))

	// A line that is a point has every length at t = 0.
	p := Line{Pt(1, 1), Pt(1, 1)}
	if ts, err := p.SolveForArclen(0, ArclenOptions{}); err != nil || ts != 0 {
		t.Errorf("got (%g, %v), want (0, nil)", ts, err)
	}
}

func TestLineCrossingPoint(t *testing.T) {
	a := Line{Pt(0, 0), Pt(2, 2)}
	b := Line{Pt(0, 2), Pt(2, 0)}
	pt, ok := a.CrossingPoint(b)
	if !ok {
		t.Fatal("lines should cross")
	}
	diff(t, Pt(1, 1), pt, approx(1e-12))

	if _, ok := a.CrossingPoint(a.Translate(Vec(0, 1))); ok {
		t.Error("parallel lines shouldn't cross")
	}
}

func TestLineSubsegment(t *testing.T) {
	l := Line{Pt(0, 0), Pt(4, 8)}
	diff(t, Line{Pt(1, 2), Pt(3, 6)}, l.Subsegment(0.25, 0.75))
}
