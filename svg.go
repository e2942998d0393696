package varstroke

import (
	"fmt"
	"strconv"
	"strings"

	parsestrconv "github.com/tdewolff/parse/v2/strconv"
)

// argCount is the number of numbers each SVG path command takes.
var argCount = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'Q': 4, 'T': 2, 'C': 6, 'S': 4,
	'Z': 0,
}

func skipSeparators(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// ParseSVG parses SVG path data. Absolute and relative move, line,
// horizontal, vertical, quadratic, smooth quadratic, cubic, smooth cubic and
// close commands are supported; arcs are not. Errors wrap ErrPathData.
func ParseSVG(s string) (*Path, error) {
	b := []byte(s)
	p := NewPath()

	var args [6]float64
	var cur, lastQuadCtrl, lastCubicCtrl Point
	var prev byte
	i := skipSeparators(b, 0)
	for i < len(b) {
		cmd := prev
		if !isNumberStart(b[i]) {
			cmd = b[i]
			i = skipSeparators(b, i+1)
		} else if prev == 0 || prev == 'Z' || prev == 'z' {
			return nil, fmt.Errorf("%w: number without command at position %d", ErrPathData, i+1)
		}

		upper := cmd &^ 0x20
		n, ok := argCount[upper]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported command '%c' at position %d", ErrPathData, cmd, i)
		}
		for j := 0; j < n; j++ {
			v, m := parsestrconv.ParseFloat(b[i:])
			if m == 0 {
				return nil, fmt.Errorf("%w: command '%c' needs %d numbers at position %d", ErrPathData, cmd, n, i+1)
			}
			args[j] = v
			i = skipSeparators(b, i+m)
		}

		rel := cmd != upper
		pt := func(k int) Point {
			q := Pt(args[k], args[k+1])
			if rel {
				q = q.Add(cur)
			}
			return q
		}

		switch upper {
		case 'M':
			cur = pt(0)
			p.MoveTo(cur.X, cur.Y)
			// Further coordinate pairs are implicit line commands.
			cmd = 'L' | cmd&0x20
		case 'L':
			cur = pt(0)
			p.LineTo(cur.X, cur.Y)
		case 'H':
			if rel {
				cur.X += args[0]
			} else {
				cur.X = args[0]
			}
			p.LineTo(cur.X, cur.Y)
		case 'V':
			if rel {
				cur.Y += args[0]
			} else {
				cur.Y = args[0]
			}
			p.LineTo(cur.X, cur.Y)
		case 'Q':
			ctrl, end := pt(0), pt(2)
			p.QuadraticTo(ctrl.X, ctrl.Y, end.X, end.Y)
			lastQuadCtrl, cur = ctrl, end
		case 'T':
			ctrl := cur
			if pu := prev &^ 0x20; pu == 'Q' || pu == 'T' {
				ctrl = cur.Mul(2).Sub(lastQuadCtrl)
			}
			end := pt(0)
			p.QuadraticTo(ctrl.X, ctrl.Y, end.X, end.Y)
			lastQuadCtrl, cur = ctrl, end
		case 'C':
			c1, c2, end := pt(0), pt(2), pt(4)
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCubicCtrl, cur = c2, end
		case 'S':
			c1 := cur
			if pu := prev &^ 0x20; pu == 'C' || pu == 'S' {
				c1 = cur.Mul(2).Sub(lastCubicCtrl)
			}
			c2, end := pt(0), pt(2)
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCubicCtrl, cur = c2, end
		case 'Z':
			p.Close()
			cur = p.CurrentPoint()
		}
		prev = cmd
	}
	return p, nil
}

// MustParseSVG is like ParseSVG but panics on malformed data.
func MustParseSVG(s string) *Path {
	p, err := ParseSVG(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the path as SVG path data with absolute commands.
func (p *Path) String() string {
	var sb strings.Builder
	for i, elem := range p.elements {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch e := elem.(type) {
		case MoveTo:
			sb.WriteString("M" + formatPoints(e.Point))
		case LineTo:
			sb.WriteString("L" + formatPoints(e.Point))
		case QuadTo:
			sb.WriteString("Q" + formatPoints(e.Control, e.Point))
		case CubicTo:
			sb.WriteString("C" + formatPoints(e.Control1, e.Control2, e.Point))
		case Close:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

func formatPoints(pts ...Point) string {
	parts := make([]string, 0, 2*len(pts))
	for _, pt := range pts {
		parts = append(parts,
			strconv.FormatFloat(pt.X, 'g', -1, 64),
			strconv.FormatFloat(pt.Y, 'g', -1, 64))
	}
	return strings.Join(parts, " ")
}
