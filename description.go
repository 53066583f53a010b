package svgpath

import (
	"fmt"
	"io"
	stdstrconv "strconv"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// DescriptionOptions specifies optional settings for
// [Path.WriteDescription].
type DescriptionOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate, which makes descriptions round-trip exactly.
	MaxPrecision int
}

// Description returns the path as SVG path data, see
// [Path.WriteDescription].
func (p *Path) Description() string {
	sb := &strings.Builder{}
	p.WriteDescription(sb, DescriptionOptions{})
	return sb.String()
}

// WriteDescription writes the path as SVG path data to w.
//
// Every segment is written with an absolute command: L for lines, Q and C for
// Béziers and A for arcs. A path starts with M, and so does every segment that
// doesn't begin where the previous one ended. Closing segments are written
// explicitly, never as Z.
func (p *Path) WriteDescription(w io.Writer, opts DescriptionOptions) error {
	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return stdstrconv.FormatFloat(n, 'f', -1, 64)
		}
		s := stdstrconv.FormatFloat(n, 'f', maxPrec, 64)
		s = strings.TrimRight(s, "0")
		return strings.TrimSuffix(s, ".")
	}
	flag := func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	}
	tol := p.Tolerance()
	for i, seg := range p.segs {
		if i == 0 || !p.segs[i-1].End().Near(seg.Start(), tol) {
			if i != 0 {
				writef(" ")
			}
			writef("M%s,%s", format(seg.Start().X), format(seg.Start().Y))
		}
		switch seg := seg.(type) {
		case Line:
			writef(" L%s,%s", format(seg.P1.X), format(seg.P1.Y))
		case QuadBez:
			writef(" Q%s,%s %s,%s",
				format(seg.P1.X), format(seg.P1.Y),
				format(seg.P2.X), format(seg.P2.Y))
		case CubicBez:
			writef(" C%s,%s %s,%s %s,%s",
				format(seg.P1.X), format(seg.P1.Y),
				format(seg.P2.X), format(seg.P2.Y),
				format(seg.P3.X), format(seg.P3.Y))
		case Arc:
			writef(" A%s,%s %s %s,%s %s,%s",
				format(seg.radii.X), format(seg.radii.Y),
				format(seg.rotation),
				flag(seg.large), flag(seg.sweep),
				format(seg.end.X), format(seg.end.Y))
		default:
			panic(fmt.Sprintf("unhandled segment type %T", seg))
		}
	}
	return err
}

func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t' || b[i] == '\f') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// ParseDescription parses SVG path data into a path.
//
// All commands of the SVG path grammar are supported, in their absolute and
// relative forms, with implicit repetition of commands. H and V produce
// lines, S and T reflect the previous control point, and Z adds a line back
// to the start of the subpath unless the current point is already there.
// Following SVG, arcs with a zero radius become lines and arcs that end
// where they start are dropped.
//
// Syntax errors are reported as a [*DescriptionError].
func ParseDescription(s string) (*Path, error) {
	b := []byte(s)
	var segs []Segment
	fail := func(i int, format string, v ...any) (*Path, error) {
		return nil, &DescriptionError{Offset: i, Msg: fmt.Sprintf(format, v...)}
	}
	cmdLens := map[byte]int{
		'M': 2,
		'Z': 0,
		'L': 2,
		'H': 1,
		'V': 1,
		'C': 6,
		'S': 4,
		'Q': 4,
		'T': 2,
		'A': 7,
	}

	i := skipCommaWhitespace(b)
	if i < len(b) && b[i] != 'M' && b[i] != 'm' {
		return fail(i, "path data must start with a moveto command")
	}

	var f [7]float64
	// cur is the current point and start the start of the current subpath.
	// ctrl is the last control point, for reflection by S and T.
	var cur, start, ctrl Point
	prevCmd := byte(0)
	for {
		i += skipCommaWhitespace(b[i:])
		if i >= len(b) {
			break
		}

		cmd := prevCmd
		cmdPos := i
		if cmd == 0 || cmd == 'z' || cmd == 'Z' || !isNumberStart(b[i]) {
			cmd = b[i]
			i++
			i += skipCommaWhitespace(b[i:])
		}
		CMD := cmd
		if 'a' <= cmd && cmd <= 'z' {
			CMD -= 'a' - 'A'
		}
		n, ok := cmdLens[CMD]
		if !ok {
			return fail(cmdPos, "unknown command %q", cmd)
		}
		for j := range n {
			if CMD == 'A' && (j == 3 || j == 4) {
				if i < len(b) && (b[i] == '0' || b[i] == '1') {
					f[j] = float64(b[i] - '0')
					i++
				} else {
					return fail(i, "arc flags must be 0 or 1 in command %q", cmd)
				}
			} else {
				// The lexer finds the extent of the number. Conversion
				// uses the correctly rounded parser, so that formatted
				// coordinates read back exactly.
				_, l := strconv.ParseFloat(b[i:])
				if l == 0 {
					return fail(i, "expected %d numbers after command %q", n, cmd)
				}
				v, err := stdstrconv.ParseFloat(string(b[i:i+l]), 64)
				if err != nil {
					return fail(i, "invalid number %q", b[i:i+l])
				}
				f[j] = v
				i += l
			}
			i += skipCommaWhitespace(b[i:])
		}

		rel := cmd != CMD
		abs := func(x, y float64) Point {
			if rel {
				return Point{cur.X + x, cur.Y + y}
			}
			return Point{x, y}
		}
		prevCubic := prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's'
		prevQuad := prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't'

		switch CMD {
		case 'M':
			cur = abs(f[0], f[1])
			start = cur
			// Further coordinate pairs are implicit lineto commands.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z':
			if cur != start {
				segs = append(segs, Line{cur, start})
			}
			cur = start
		case 'L':
			p1 := abs(f[0], f[1])
			segs = append(segs, Line{cur, p1})
			cur = p1
		case 'H':
			p1 := Point{f[0], cur.Y}
			if rel {
				p1.X += cur.X
			}
			segs = append(segs, Line{cur, p1})
			cur = p1
		case 'V':
			p1 := Point{cur.X, f[0]}
			if rel {
				p1.Y += cur.Y
			}
			segs = append(segs, Line{cur, p1})
			cur = p1
		case 'C':
			cp1 := abs(f[0], f[1])
			cp2 := abs(f[2], f[3])
			p1 := abs(f[4], f[5])
			segs = append(segs, CubicBez{cur, cp1, cp2, p1})
			cur, ctrl = p1, cp2
		case 'S':
			cp1 := cur
			if prevCubic {
				cp1 = cur.Translate(cur.Sub(ctrl))
			}
			cp2 := abs(f[0], f[1])
			p1 := abs(f[2], f[3])
			segs = append(segs, CubicBez{cur, cp1, cp2, p1})
			cur, ctrl = p1, cp2
		case 'Q':
			cp := abs(f[0], f[1])
			p1 := abs(f[2], f[3])
			segs = append(segs, QuadBez{cur, cp, p1})
			cur, ctrl = p1, cp
		case 'T':
			cp := cur
			if prevQuad {
				cp = cur.Translate(cur.Sub(ctrl))
			}
			p1 := abs(f[0], f[1])
			segs = append(segs, QuadBez{cur, cp, p1})
			cur, ctrl = p1, cp
		case 'A':
			p1 := abs(f[5], f[6])
			switch {
			case p1 == cur:
			case f[0] == 0 || f[1] == 0:
				segs = append(segs, Line{cur, p1})
			default:
				arc, err := NewArc(cur, Vec2{f[0], f[1]}, f[2], f[3] == 1, f[4] == 1, p1)
				if err != nil {
					return fail(cmdPos, "%v", err)
				}
				segs = append(segs, arc)
			}
			cur = p1
		}
		prevCmd = cmd
	}
	return NewPath(segs...), nil
}
