// Package dot writes graphs for Graphviz: as DOT source with every vertex
// pinned to its coordinates, and as SVG rendered in-process by the neato
// engine.
//
// Both formats are write-only. 3D graphs are projected onto the xy-plane.
package dot

import (
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/geometry"
	model "github.com/cgalab/format-converter/pkg/graph"
)

// Format describes Graphviz DOT output.
var Format = &formats.Format{
	Name:        "dot",
	Extensions:  []string{".dot", ".gv"},
	Description: "Graphviz DOT with pinned vertex positions (write only)",
	Writer:      formats.WriterFunc(Write),
}

// Write emits g as an undirected DOT graph. Vertices keep their index as
// node id and carry pos="x,y!"; edges carry their effective weights.
func Write(w io.Writer, g *model.Graph, opts formats.WriteOptions) error {
	b, err := Marshal(g, 1, opts)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "// Generated by %s from %s (%s)\n", opts.Tool(), g.Source, g.Format); err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// Marshal encodes g as DOT with coordinates multiplied by scale.
func Marshal(g *model.Graph, scale float64, opts formats.WriteOptions) ([]byte, error) {
	if g.Dim() == 3 {
		opts.Log().Warn("projecting 3D graph onto the xy-plane", "source", g.Source)
	}

	dg := newDOTGraph()
	for i, v := range g.Vertices() {
		dg.AddNode(vertexNode{id: int64(i), pos: geometry.Project(v).Mul(scale)})
	}
	for _, e := range g.Edges() {
		dg.SetWeightedEdge(weightedEdge{
			from:  dg.Node(int64(e.U)),
			to:    dg.Node(int64(e.V)),
			attrs: e.Attrs,
		})
	}

	b, err := dot.Marshal(dg, "G", "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal dot")
	}
	return b, nil
}

// dotGraph adds graph-wide DOT attributes to a gonum graph.
type dotGraph struct {
	*simple.WeightedUndirectedGraph
}

func newDOTGraph() dotGraph {
	return dotGraph{simple.NewWeightedUndirectedGraph(0, 0)}
}

// DOTAttributers implements dot.Attributers.
func (dotGraph) DOTAttributers() (graph, node, edge encoding.Attributer) {
	return attributes{{Key: "layout", Value: "neato"}},
		attributes{{Key: "shape", Value: "point"}, {Key: "width", Value: "0.05"}},
		attributes{}
}

type attributes []encoding.Attribute

func (a attributes) Attributes() []encoding.Attribute { return a }

type vertexNode struct {
	id  int64
	pos geometry.Vec2
}

func (n vertexNode) ID() int64 { return n.id }

func (n vertexNode) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "pos", Value: coord(n.pos.X) + "," + coord(n.pos.Y) + "!"}}
}

type weightedEdge struct {
	from, to graph.Node
	attrs    model.EdgeAttrs
}

func (e weightedEdge) From() graph.Node { return e.from }
func (e weightedEdge) To() graph.Node   { return e.to }
func (e weightedEdge) ReversedEdge() graph.Edge {
	return weightedEdge{from: e.to, to: e.from, attrs: e.attrs}
}
func (e weightedEdge) Weight() float64 { return e.attrs.EffectiveWeight() }

func (e weightedEdge) Attributes() []encoding.Attribute {
	out := []encoding.Attribute{{Key: "weight", Value: geometry.FormatFloat(e.attrs.EffectiveWeight())}}
	if a := e.attrs.EffectiveWeightAdditive(); a != model.DefaultWeightAdditive {
		out = append(out, encoding.Attribute{Key: "weight_additive", Value: geometry.FormatFloat(a)})
	}
	return out
}

func coord(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
