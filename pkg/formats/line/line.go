// Package line loads polychains from the .line format: blocks of a vertex
// count followed by that many "x y" lines, separated by optional blank
// lines. Consecutive points of a block are connected.
package line

import (
	"fmt"
	"strconv"

	"github.com/cgalab/format-converter/pkg/cursor"
	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/geometry"
	"github.com/cgalab/format-converter/pkg/graph"
)

const formatName = "line"

// Format describes the .line format.
var Format = &formats.Format{
	Name:        formatName,
	Extensions:  []string{".line"},
	Description: "open polychains (count, then x y per line)",
	Loader:      formats.LoaderFunc(Load),
}

// Load reads every block as an open chain. Chains may not repeat an edge
// unless opts.AllowDuplicates is set.
func Load(content []byte, name string, opts formats.LoadOptions) ([]*graph.Graph, error) {
	g := opts.NewGraph(name, formatName)
	if err := LoadChains(g, cursor.NewLines(content), false, opts.EdgeOptions()...); err != nil {
		return nil, err
	}
	return []*graph.Graph{g}, nil
}

// LoadChains reads blocks until the input is exhausted and adds each as a
// chain to g, closing it when closed is set.
func LoadChains(g *graph.Graph, c *cursor.Cursor[cursor.Line], closed bool, opts ...graph.EdgeOption) error {
	for cursor.SkipBlank(c) {
		start, _ := c.Peek()
		pts, err := ReadBlock(c)
		if err != nil {
			return err
		}
		if len(pts) < 2 {
			return errors.FormatAt(start.Num, "chain needs at least two points, got %d", len(pts))
		}
		pairs := cursor.Pairs(pts)
		if closed {
			pairs = cursor.CyclicPairs(pts)
		}
		for a, b := range pairs {
			if err := g.AddEdgeByVertex(a, b, opts...); err != nil {
				return fmt.Errorf("chain at line %d: %w", start.Num, err)
			}
		}
	}
	return nil
}

// ReadBlock reads a count line and that many "x y" lines.
func ReadBlock(c *cursor.Cursor[cursor.Line]) ([]geometry.Vec2, error) {
	head, ok := c.Advance()
	if !ok {
		return nil, errors.New(errors.ErrCodeFormat, "unexpected end of input, expected a point count")
	}
	fields := head.Fields()
	if len(fields) != 1 {
		return nil, errors.FormatAt(head.Num, "expected a point count, got %q", head.Text)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return nil, errors.FormatAt(head.Num, "invalid point count %q", fields[0])
	}
	if n > c.Remaining() {
		return nil, errors.FormatAt(head.Num, "block announces %d points but only %d lines follow", n, c.Remaining())
	}

	pts := make([]geometry.Vec2, 0, n)
	for range n {
		l, _ := c.Advance()
		p, err := ParsePoint(l)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// ParsePoint parses a line holding exactly two coordinates.
func ParsePoint(l cursor.Line) (geometry.Vec2, error) {
	fields := l.Fields()
	if len(fields) != 2 {
		return geometry.Vec2{}, errors.FormatAt(l.Num, "expected \"x y\", got %q", l.Text)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return geometry.Vec2{}, errors.FormatAt(l.Num, "invalid x coordinate %q", fields[0])
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return geometry.Vec2{}, errors.FormatAt(l.Num, "invalid y coordinate %q", fields[1])
	}
	return geometry.V2(x, y), nil
}
