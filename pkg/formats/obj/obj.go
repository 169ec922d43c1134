// Package obj reads and writes the subset of Wavefront OBJ that describes
// vertices, faces and polylines.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cgalab/format-converter/pkg/cursor"
	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/geometry"
	"github.com/cgalab/format-converter/pkg/graph"
)

const formatName = "obj"

// Format describes the OBJ format.
var Format = &formats.Format{
	Name:        formatName,
	Extensions:  []string{".obj"},
	Description: "Wavefront OBJ (v, f and l records)",
	Loader:      formats.LoaderFunc(Load),
	Writer:      formats.WriterFunc(Write),
}

// Load reads v, f and l records. Every vertex becomes a 3D vertex; a face
// connects its corners cyclically and a polyline connects them in order.
// Faces and polylines may share edges, so edges are inserted
// duplicate-tolerantly. Other records are ignored.
//
// Indices are 1-based. Negative indices count back from the last vertex
// read so far and i/t/n references use the part before the first slash.
func Load(content []byte, name string, opts formats.LoadOptions) ([]*graph.Graph, error) {
	g := opts.NewGraph(name, formatName)
	// Coincident OBJ vertices share a graph vertex, so records index into
	// this list rather than into the graph.
	var ids []int

	for _, line := range cursor.Lines(content) {
		fields := line.Fields()
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, errors.FormatAt(line.Num, "%v", err)
			}
			ids = append(ids, g.AddVertex(v))
		case "f", "l":
			corners := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				i, err := resolve(ref, len(ids))
				if err != nil {
					return nil, errors.FormatAt(line.Num, "%v", err)
				}
				corners = append(corners, ids[i])
			}
			if len(corners) < 2 {
				return nil, errors.FormatAt(line.Num, "%q record needs at least two vertices", fields[0])
			}
			pairs := cursor.Pairs(corners)
			if fields[0] == "f" {
				pairs = cursor.CyclicPairs(corners)
			}
			for a, b := range pairs {
				if err := g.AddEdgeByIndex(a, b, graph.AllowDuplicate()); err != nil {
					return nil, fmt.Errorf("line %d: %w", line.Num, err)
				}
			}
		default:
			opts.Log().Debug("ignoring obj record", "source", name, "line", line.Num, "record", fields[0])
		}
	}
	return []*graph.Graph{g}, nil
}

func parseVertex(fields []string) (geometry.Vec3, error) {
	if len(fields) < 3 {
		return geometry.Vec3{}, fmt.Errorf("vertex needs x y z, got %d values", len(fields))
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vec3{}, fmt.Errorf("invalid coordinate %q", fields[i])
		}
		c[i] = f
	}
	return geometry.V3(c[0], c[1], c[2]), nil
}

// resolve turns a vertex reference into a 0-based position among the n
// vertices read so far.
func resolve(ref string, n int) (int, error) {
	head, _, _ := strings.Cut(ref, "/")
	i, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("invalid vertex reference %q", ref)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("vertex reference %q out of range (%d vertices)", ref, n)
}

// Write emits one v record per vertex (z is 0 for 2D graphs) and one
// two-vertex f record per edge. Face indices are 1-based unless
// opts.ZeroBased is set.
func Write(w io.Writer, g *graph.Graph, opts formats.WriteOptions) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Generated by %s from %s (%s)\n", opts.Tool(), g.Source, g.Format)

	for _, v := range g.Vertices() {
		c := v.Components()
		z := 0.0
		if len(c) > 2 {
			z = c[2]
		}
		fmt.Fprintf(bw, "v %s %s %s\n", geometry.FormatFloat(c[0]), geometry.FormatFloat(c[1]), geometry.FormatFloat(z))
	}

	base := 1
	if opts.ZeroBased {
		base = 0
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "f %d %d\n", e.U+base, e.V+base)
	}
	return bw.Flush()
}
