package ipe

import (
	"math"
	"strconv"
	"strings"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/geometry"
	"github.com/cgalab/format-converter/pkg/graph"
)

// ArcSamples is the number of segments a circular arc is split into.
const ArcSamples = 32

// Segment is one straight piece of an interpreted path.
type Segment struct {
	From, To geometry.Vec2
}

// Interpret converts the text of a <path> element into segments.
//
// The first non-blank line must be a move-to "x y m". Every following line
// is one of
//
//	x y l                  line-to
//	h                      close path, only as the last line
//	r 0 0 r cx cy sx sy a  circular arc around (cx, cy) ending at (sx, sy),
//	                       only as the last line and only without a matrix
//
// m, if not nil, maps every coordinate before segments are formed.
//
// Arcs become ArcSamples segments. The swept angle is the angle between
// the start and end vectors, so it never exceeds π and the samples always
// run counterclockwise from the start point. Arcs sweeping more than half a
// circle, or drawn clockwise, are therefore approximated by the short
// counterclockwise arc between the same endpoints.
func Interpret(text string, m *geometry.Affine) ([]Segment, error) {
	lines := pathLines(text)
	if len(lines) < 2 {
		return nil, errors.New(errors.ErrCodeFormat, "path has %d line(s), need at least 2", len(lines))
	}

	move := lines[0]
	if len(move.fields) != 3 || move.fields[2] != "m" {
		return nil, errors.FormatAt(move.num, "path must start with \"x y m\", got %q", move.text)
	}
	first, err := point(move, m)
	if err != nil {
		return nil, err
	}

	var segs []Segment
	cur := first
	for i, l := range lines[1:] {
		last := i == len(lines)-2
		f := l.fields
		switch {
		case len(f) == 1 && f[0] == "h":
			if !last {
				return nil, errors.FormatAt(l.num, "close-path \"h\" is not the last line of the path")
			}
			segs = append(segs, Segment{cur, first})
			cur = first

		case len(f) == 3 && f[2] == "l":
			p, err := point(l, m)
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{cur, p})
			cur = p

		case len(f) == 9 && f[8] == "a":
			if m != nil {
				return nil, errors.FormatAt(l.num, "arcs in transformed paths are not supported")
			}
			if !last {
				return nil, errors.FormatAt(l.num, "arc is not the last line of the path")
			}
			arc, err := arcSegments(l, cur)
			if err != nil {
				return nil, err
			}
			segs = append(segs, arc...)

		default:
			return nil, errors.FormatAt(l.num, "unknown path element %q", l.text)
		}
	}
	return segs, nil
}

// AddPath interprets text and inserts the resulting segments into g. The
// path is parsed completely before g is touched, so a malformed path adds
// nothing.
func AddPath(g *graph.Graph, text string, m *geometry.Affine, opts ...graph.EdgeOption) error {
	segs, err := Interpret(text, m)
	if err != nil {
		return err
	}
	for _, s := range segs {
		if err := g.AddEdgeByVertex(s.From, s.To, opts...); err != nil {
			return err
		}
	}
	return nil
}

// SampleArc returns ArcSamples+1 points on the circle around center,
// starting exactly at from and ending exactly at to. See Interpret for the
// direction and sweep limitations.
func SampleArc(center, from, to geometry.Vec2) ([]geometry.Vec2, error) {
	v0, v1 := from.Sub(center), to.Sub(center)
	l0, l1 := v0.Len(), v1.Len()
	if l0 == 0 || l1 == 0 {
		return nil, errors.New(errors.ErrCodeFormat, "degenerate arc: endpoint coincides with center %s", center)
	}

	// Rounding can push the cosine slightly outside [-1, 1].
	cos := max(-1, min(1, v0.Dot(v1)/(l0*l1)))
	angle := math.Acos(cos)

	pts := make([]geometry.Vec2, 0, ArcSamples+1)
	pts = append(pts, from)
	for i := 1; i < ArcSamples; i++ {
		pts = append(pts, from.Rotate(angle*float64(i)/ArcSamples, center))
	}
	return append(pts, to), nil
}

func arcSegments(l pathLine, cur geometry.Vec2) ([]Segment, error) {
	var v [8]float64
	for i := range v {
		f, err := strconv.ParseFloat(l.fields[i], 64)
		if err != nil {
			return nil, errors.FormatAt(l.num, "invalid number %q in arc", l.fields[i])
		}
		v[i] = f
	}
	if v[0] != v[3] || v[1] != 0 || v[2] != 0 {
		return nil, errors.FormatAt(l.num, "arc is not a circle: %q", l.text)
	}

	center := geometry.V2(v[4], v[5])
	pts, err := SampleArc(center, cur, geometry.V2(v[6], v[7]))
	if err != nil {
		return nil, errors.FormatAt(l.num, "%s", errors.UserMessage(err))
	}
	segs := make([]Segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		segs = append(segs, Segment{pts[i-1], pts[i]})
	}
	return segs, nil
}

type pathLine struct {
	num    int
	text   string
	fields []string
}

// pathLines returns the non-blank lines of a path, numbered from 1 within
// the element text.
func pathLines(text string) []pathLine {
	var out []pathLine
	for i, raw := range strings.Split(text, "\n") {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		out = append(out, pathLine{num: i + 1, text: strings.TrimSpace(raw), fields: fields})
	}
	return out
}

func point(l pathLine, m *geometry.Affine) (geometry.Vec2, error) {
	x, errX := strconv.ParseFloat(l.fields[0], 64)
	y, errY := strconv.ParseFloat(l.fields[1], 64)
	if errX != nil || errY != nil {
		return geometry.Vec2{}, errors.FormatAt(l.num, "invalid coordinates in %q", l.text)
	}
	p := geometry.V2(x, y)
	if m != nil {
		p = m.Apply(p)
	}
	return p, nil
}
