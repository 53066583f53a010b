package svgpath

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		c0, c1, c2 float64
		want       []float64
	}{
		{-1, 0, 1, []float64{-1, 1}},
		{2, -3, 1, []float64{1, 2}},
		{1, -2, 1, []float64{1}},
		{1, 0, 1, []float64{}},
		// linear
		{2, -1, 0, []float64{2}},
		// no solutions
		{1, 0, 0, []float64{}},
		// every x is a solution
		{0, 0, 0, []float64{0}},
	}
	for _, tt := range tests {
		roots, n := SolveQuadratic(tt.c0, tt.c1, tt.c2)
		diff(t, tt.want, roots[:n], approx(1e-12))
	}
}

func TestSolveCubic(t *testing.T) {
	tests := []struct {
		c0, c1, c2, c3 float64
		want           []float64
	}{
		// (x-1)(x-2)(x-3)
		{-6, 11, -6, 1, []float64{1, 2, 3}},
		// x³ - 8
		{-8, 0, 0, 1, []float64{2}},
		// degenerates to a quadratic
		{-1, 0, 1, 0, []float64{-1, 1}},
	}
	for _, tt := range tests {
		roots, n := SolveCubic(tt.c0, tt.c1, tt.c2, tt.c3)
		got := slices.Clone(roots[:n])
		slices.Sort(got)
		diff(t, tt.want, got, approx(1e-9))
	}
}

func TestSolveITP(t *testing.T) {
	f := func(x float64) (float64, error) { return x*x - 2, nil }
	got, err := solveITP(f, 0, 2, 1e-12, 1, 0.2, -2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if d := math.Abs(got - math.Sqrt2); d > 2e-12 {
		t.Errorf("got %g, which is off by %g", got, d)
	}
}

func TestSolveITPError(t *testing.T) {
	errBoom := errors.New("boom")
	f := func(x float64) (float64, error) { return 0, errBoom }
	if _, err := solveITP(f, 0, 1, 1e-9, 1, 0.2, -1, 1); !errors.Is(err, errBoom) {
		t.Errorf("got error %v, want %v", err, errBoom)
	}
}
