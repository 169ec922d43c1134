// Package site loads the .site format: a sequence of line pairs, an element
// type followed by its data. Type 0 is a segment "x0 y0 x1 y1"; other
// element types are skipped.
package site

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cgalab/format-converter/pkg/cursor"
	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/geometry"
	"github.com/cgalab/format-converter/pkg/graph"
)

const formatName = "site"

// TypeSegment is the element type of a line segment.
const TypeSegment = "0"

// Format describes the .site format.
var Format = &formats.Format{
	Name:        formatName,
	Extensions:  []string{".site"},
	Description: "site elements (type line, data line; type 0 is a segment)",
	Loader:      formats.LoaderFunc(Load),
}

// Load reads segment elements as edges. Segments may not repeat unless
// opts.AllowDuplicates is set. A trailing type line without data is
// ignored.
func Load(content []byte, name string, opts formats.LoadOptions) ([]*graph.Graph, error) {
	g := opts.NewGraph(name, formatName)
	c := cursor.NewLines(content)
	log := opts.Log()

	for !c.Done() {
		typ, _ := c.Advance()
		payload, ok := c.Advance()
		if !ok {
			log.Warn("ignoring element without data", "source", name, "line", typ.Num)
			break
		}
		kind := strings.TrimSpace(typ.Text)
		if kind != TypeSegment {
			log.Debug("skipping site element", "source", name, "line", typ.Num, "type", kind)
			continue
		}

		a, b, err := parseSegment(payload)
		if err != nil {
			return nil, err
		}
		if err := g.AddEdgeByVertex(a, b, opts.EdgeOptions()...); err != nil {
			return nil, fmt.Errorf("line %d: %w", payload.Num, err)
		}
	}
	return []*graph.Graph{g}, nil
}

func parseSegment(l cursor.Line) (geometry.Vec2, geometry.Vec2, error) {
	fields := l.Fields()
	if len(fields) < 4 {
		return geometry.Vec2{}, geometry.Vec2{}, errors.FormatAt(l.Num, "segment needs x0 y0 x1 y1, got %q", l.Text)
	}
	var c [4]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vec2{}, geometry.Vec2{}, errors.FormatAt(l.Num, "invalid coordinate %q", fields[i])
		}
		c[i] = f
	}
	return geometry.V2(c[0], c[1]), geometry.V2(c[2], c[3]), nil
}
