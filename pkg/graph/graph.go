package graph

import (
	"io"
	"maps"

	"github.com/charmbracelet/log"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/geometry"
	"github.com/cgalab/format-converter/pkg/indexed"
)

// Graph is the canonical geometric graph every loader fills and every
// writer reads: deduplicated vertices with stable indices and undirected,
// attributed edges keyed by their sorted index pair.
//
// The zero value is not usable; create graphs with New. A Graph is not safe
// for concurrent use. It is owned by the loader that builds it, may be
// transformed once, and is then handed to a writer read-only.
type Graph struct {
	// Source names where the graph came from, usually the input file.
	Source string
	// Format names the loader that produced the graph.
	Format string

	vertices indexed.Store[geometry.Vertex]
	edges    map[EdgeKey]EdgeAttrs
	order    []EdgeKey

	droppedLoops int
	logger       *log.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger receiving diagnostics such as dropped
// self-loops. Without it diagnostics are discarded.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates an empty graph with the given provenance.
func New(source, format string, opts ...Option) *Graph {
	g := &Graph{
		Source: source,
		Format: format,
		edges:  make(map[EdgeKey]EdgeAttrs),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Logger returns the graph's diagnostic logger.
func (g *Graph) Logger() *log.Logger { return g.logger }

// AddVertex adds v unless an equal vertex exists and returns its index.
// All vertices of one graph are expected to share a dimension; writers
// rely on it.
func (g *Graph) AddVertex(v geometry.Vertex) int {
	return g.vertices.Add(v)
}

// Vertex returns the vertex with index i.
func (g *Graph) Vertex(i int) geometry.Vertex { return g.vertices.At(i) }

// VertexIndex returns the index of v, if present.
func (g *Graph) VertexIndex(v geometry.Vertex) (int, bool) { return g.vertices.Index(v) }

// Vertices returns all vertices in index order.
func (g *Graph) Vertices() []geometry.Vertex { return g.vertices.Values() }

// VertexCount returns the number of distinct vertices.
func (g *Graph) VertexCount() int { return g.vertices.Len() }

// Dim returns the dimension of the first vertex, or 0 for an empty graph.
func (g *Graph) Dim() int {
	if g.vertices.Len() == 0 {
		return 0
	}
	return g.vertices.At(0).Dim()
}

// AddEdgeByIndex inserts the undirected edge between vertices i0 and i1.
//
// A self-loop (i0 == i1) is dropped with a diagnostic and is not an error.
// Inserting an existing key fails with DUPLICATE_EDGE unless AllowDuplicate
// is given, in which case the new attributes replace the old ones and the
// edge keeps its original position.
func (g *Graph) AddEdgeByIndex(i0, i1 int, opts ...EdgeOption) error {
	n := g.vertices.Len()
	if i0 < 0 || i0 >= n || i1 < 0 || i1 >= n {
		return errors.New(errors.ErrCodeInvalidInput, "edge (%d, %d) references a vertex outside [0, %d)", i0, i1, n)
	}

	var cfg edgeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if i0 == i1 {
		g.droppedLoops++
		g.logger.Debug("dropping self-loop", "source", g.Source, "vertex", i0, "at", g.vertices.At(i0))
		return nil
	}

	k := Key(i0, i1)
	if _, exists := g.edges[k]; exists {
		if !cfg.allowDuplicate {
			return errors.New(errors.ErrCodeDuplicateEdge, "edge %s already exists (%s - %s)", k, g.vertices.At(k.U), g.vertices.At(k.V))
		}
		g.logger.Debug("overwriting duplicate edge", "source", g.Source, "edge", k)
		g.edges[k] = cfg.attrs
		return nil
	}
	g.edges[k] = cfg.attrs
	g.order = append(g.order, k)
	return nil
}

// AddEdgeByVertex adds both vertices (deduplicating) and inserts the edge
// between them. Vertices that collapse onto the same index form a self-loop,
// which is dropped.
func (g *Graph) AddEdgeByVertex(v0, v1 geometry.Vertex, opts ...EdgeOption) error {
	return g.AddEdgeByIndex(g.AddVertex(v0), g.AddVertex(v1), opts...)
}

// Edge returns the attributes of the edge between i0 and i1.
func (g *Graph) Edge(i0, i1 int) (EdgeAttrs, bool) {
	a, ok := g.edges[Key(i0, i1)]
	return a, ok
}

// HasEdge reports whether the edge between i0 and i1 exists.
func (g *Graph) HasEdge(i0, i1 int) bool {
	_, ok := g.edges[Key(i0, i1)]
	return ok
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.order))
	for i, k := range g.order {
		out[i] = Edge{EdgeKey: k, Attrs: g.edges[k]}
	}
	return out
}

// EdgeMap returns a copy of the key to attribute mapping.
func (g *Graph) EdgeMap() map[EdgeKey]EdgeAttrs {
	return maps.Clone(g.edges)
}

// EdgeCount returns the number of stored edges.
func (g *Graph) EdgeCount() int { return len(g.order) }

// DroppedLoops returns how many self-loops were discarded so far.
func (g *Graph) DroppedLoops() int { return g.droppedLoops }

// Isolated returns the indices of vertices without incident edges.
func (g *Graph) Isolated() []int {
	used := make([]bool, g.vertices.Len())
	for _, k := range g.order {
		used[k.U] = true
		used[k.V] = true
	}
	var out []int
	for i, u := range used {
		if !u {
			out = append(out, i)
		}
	}
	return out
}
