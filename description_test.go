package svgpath

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescription(t *testing.T) {
	arc := func(start Point, radii Vec2, rotation float64, large, sweep bool, end Point) Segment {
		return mustArc(t, start, radii, rotation, large, sweep, end)
	}
	tests := []struct {
		in   string
		want []Segment
	}{
		{"", nil},
		{" \n\t", nil},
		{"M 10 10 L 20 10 H 30 V 20 Z", []Segment{
			Line{Pt(10, 10), Pt(20, 10)},
			Line{Pt(20, 10), Pt(30, 10)},
			Line{Pt(30, 10), Pt(30, 20)},
			Line{Pt(30, 20), Pt(10, 10)},
		}},
		{"m10,10 l10,0 h10 v10 z", []Segment{
			Line{Pt(10, 10), Pt(20, 10)},
			Line{Pt(20, 10), Pt(30, 10)},
			Line{Pt(30, 10), Pt(30, 20)},
			Line{Pt(30, 20), Pt(10, 10)},
		}},
		{"M0 0 10 0 10 10", []Segment{
			Line{Pt(0, 0), Pt(10, 0)},
			Line{Pt(10, 0), Pt(10, 10)},
		}},
		{"m1 1 1 0 0 1", []Segment{
			Line{Pt(1, 1), Pt(2, 1)},
			Line{Pt(2, 1), Pt(2, 2)},
		}},
		{"M0-1.5L.5.5", []Segment{
			Line{Pt(0, -1.5), Pt(0.5, 0.5)},
		}},
		{"M0,0 L1,0 Z", []Segment{
			Line{Pt(0, 0), Pt(1, 0)},
			Line{Pt(1, 0), Pt(0, 0)},
		}},
		{"M0,0 L1,0 L0,0 Z", []Segment{
			Line{Pt(0, 0), Pt(1, 0)},
			Line{Pt(1, 0), Pt(0, 0)},
		}},
		{"M0,0 L1,0 M5,5 L6,6", []Segment{
			Line{Pt(0, 0), Pt(1, 0)},
			Line{Pt(5, 5), Pt(6, 6)},
		}},
		{"M0 0 C 0 1 1 1 1 0 S 2 -1 2 0", []Segment{
			CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)},
			CubicBez{Pt(1, 0), Pt(1, -1), Pt(2, -1), Pt(2, 0)},
		}},
		{"M0 0 s 1 1 2 0", []Segment{
			CubicBez{Pt(0, 0), Pt(0, 0), Pt(1, 1), Pt(2, 0)},
		}},
		{"M0 0 Q 1 1 2 0 T 4 0", []Segment{
			QuadBez{Pt(0, 0), Pt(1, 1), Pt(2, 0)},
			QuadBez{Pt(2, 0), Pt(3, -1), Pt(4, 0)},
		}},
		{"M0 0 q 1 1 2 0 t 2 0", []Segment{
			QuadBez{Pt(0, 0), Pt(1, 1), Pt(2, 0)},
			QuadBez{Pt(2, 0), Pt(3, -1), Pt(4, 0)},
		}},
		{"M0 0A2 2 0 014 0", []Segment{
			arc(Pt(0, 0), Vec(2, 2), 0, false, true, Pt(4, 0)),
		}},
		{"M1 1 a2 2 0 1 0 4 0", []Segment{
			arc(Pt(1, 1), Vec(2, 2), 0, true, false, Pt(5, 1)),
		}},
		{"M0 0 A0 2 0 0 1 4 0", []Segment{
			Line{Pt(0, 0), Pt(4, 0)},
		}},
		{"M1 1 A2 2 0 0 1 1 1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParseDescription(tt.in)
			require.NoError(t, err)
			got := make([]Segment, 0, p.Len())
			for _, seg := range p.Segments() {
				got = append(got, seg)
			}
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.True(t, Equal(got[i], tt.want[i], 1e-12), "segment %d: got %v, want %v", i, got[i], tt.want[i])
			}
		})
	}
}

func TestParseDescriptionErrors(t *testing.T) {
	tests := []struct {
		in     string
		offset int
	}{
		{"L 1 2", 0},
		{"  L 1 2", 2},
		{"M 1", 3},
		{"M 0 0 X 1", 6},
		{"M 0 0 L 1", 9},
		{"M0 0 A2 2 0 2 1 4 0", 12},
		{"M0 0 C 1 1 2 2", 14},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParseDescription(tt.in)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrMalformedDescription)
			var derr *DescriptionError
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, tt.offset, derr.Offset)
		})
	}
}

func TestDescription(t *testing.T) {
	p := NewPath(
		Line{Pt(0, 0), Pt(1, 0)},
		QuadBez{Pt(1, 0), Pt(2, 1), Pt(3, 0)},
	)
	assert.Equal(t, "M0,0 L1,0 Q2,1 3,0", p.Description())

	p.Append(Line{Pt(5, 5), Pt(6, 6)})
	assert.Equal(t, "M0,0 L1,0 Q2,1 3,0 M5,5 L6,6", p.Description())

	p = NewPath(
		CubicBez{Pt(0, 0), Pt(1, 2), Pt(3, 2), Pt(4, 0)},
		mustArc(t, Pt(4, 0), Vec(2, 2), 0, false, true, Pt(8, 0)),
	)
	assert.Equal(t, "M0,0 C1,2 3,2 4,0 A2,2 0 0,1 8,0", p.Description())

	assert.Equal(t, "", NewPath().Description())
}

func TestWriteDescriptionPrecision(t *testing.T) {
	p := NewPath(Line{Pt(0, 0), Pt(1.0/3, 2)})
	var sb strings.Builder
	require.NoError(t, p.WriteDescription(&sb, DescriptionOptions{MaxPrecision: 2}))
	assert.Equal(t, "M0,0 L0.33,2", sb.String())

	assert.Equal(t, "M0,0 L0.3333333333333333,2", p.Description())
}

func TestDescriptionRoundTrip(t *testing.T) {
	p := NewPath(
		Line{Pt(0.1, 0.2), Pt(1.0/3, 2.0/7)},
		QuadBez{Pt(1.0/3, 2.0/7), Pt(1e-7, 3e10), Pt(-4.5, 6)},
		CubicBez{Pt(-4.5, 6), Pt(1, 2), Pt(3, 2), Pt(4, 0)},
		mustArc(t, Pt(4, 0), Vec(3, 1), 30, true, false, Pt(7, 1)),
		Line{Pt(10, 10), Pt(11, 11)},
	)
	got, err := ParseDescription(p.Description())
	require.NoError(t, err)
	assert.True(t, got.Equal(p, 1e-9), "got %s", got.Description())
}
