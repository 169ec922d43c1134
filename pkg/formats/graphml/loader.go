package graphml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/geometry"
	"github.com/cgalab/format-converter/pkg/graph"
)

// Load parses a GraphML document. Only the first <graph> element is read.
//
// Data elements must reference a declared key (UNKNOWN_KEY otherwise).
// Nodes need x and y, edges need a source and a target naming known nodes
// (MISSING_ATTRIBUTE otherwise). Data for keys other than the coordinates
// and weights is ignored.
func Load(content []byte, name string, opts formats.LoadOptions) ([]*graph.Graph, error) {
	var doc document
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFormat, err, "parse graphml")
	}
	if len(doc.Graphs) == 0 {
		return nil, errors.New(errors.ErrCodeFormat, "no <graph> element")
	}
	if len(doc.Graphs) > 1 {
		opts.Log().Warn("ignoring additional graphs", "source", name, "count", len(doc.Graphs)-1)
	}

	keys := make(map[string]key, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.ID == "" {
			return nil, errors.New(errors.ErrCodeMissingAttribute, "<key> without id")
		}
		keys[k.ID] = k
	}

	l := &loader{keys: keys, opts: opts, g: opts.NewGraph(name, formatName), ids: make(map[string]int)}
	el := doc.Graphs[0]
	if el.EdgeDefault == "directed" {
		opts.Log().Warn("treating directed graph as undirected", "source", name)
	}
	for i, n := range el.Nodes {
		if err := l.node(n); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}
	for i, e := range el.Edges {
		if err := l.edge(e); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return []*graph.Graph{l.g}, nil
}

type loader struct {
	keys map[string]key
	opts formats.LoadOptions
	g    *graph.Graph
	ids  map[string]int
}

// values maps attribute names to their values for one element, falling back
// to key defaults for attributes without data.
func (l *loader) values(kind string, ds []data) (map[string]string, error) {
	out := make(map[string]string)
	for _, k := range l.keys {
		if k.appliesTo(kind) && k.Default != nil {
			out[k.Name] = strings.TrimSpace(*k.Default)
		}
	}
	for _, d := range ds {
		k, ok := l.keys[d.Key]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownKey, "data references undeclared key %q", d.Key)
		}
		if !k.appliesTo(kind) {
			return nil, errors.New(errors.ErrCodeUnknownKey, "key %q is declared for %s, not %s", d.Key, k.For, kind)
		}
		out[k.Name] = strings.TrimSpace(d.Value)
	}
	return out, nil
}

func (l *loader) node(n node) error {
	if n.ID == "" {
		return errors.New(errors.ErrCodeMissingAttribute, "node without id")
	}
	if _, dup := l.ids[n.ID]; dup {
		return errors.New(errors.ErrCodeFormat, "duplicate node id %q", n.ID)
	}
	vals, err := l.values("node", n.Data)
	if err != nil {
		return err
	}

	x, err := requireFloat(vals, KeyX, n.ID)
	if err != nil {
		return err
	}
	y, err := requireFloat(vals, KeyY, n.ID)
	if err != nil {
		return err
	}
	var v geometry.Vertex = geometry.V2(x, y)
	if _, ok := vals[KeyZ]; ok {
		z, err := requireFloat(vals, KeyZ, n.ID)
		if err != nil {
			return err
		}
		v = geometry.V3(x, y, z)
	}
	l.ids[n.ID] = l.g.AddVertex(v)
	return nil
}

func (l *loader) edge(e edge) error {
	if e.Source == "" || e.Target == "" {
		return errors.New(errors.ErrCodeMissingAttribute, "edge %q needs source and target", e.ID)
	}
	u, ok := l.ids[e.Source]
	if !ok {
		return errors.New(errors.ErrCodeMissingAttribute, "edge source %q is not a node", e.Source)
	}
	v, ok := l.ids[e.Target]
	if !ok {
		return errors.New(errors.ErrCodeMissingAttribute, "edge target %q is not a node", e.Target)
	}

	vals, err := l.values("edge", e.Data)
	if err != nil {
		return err
	}
	var attrs graph.EdgeAttrs
	if attrs.Weight, err = optionalFloat(vals, KeyWeight, graph.DefaultWeight); err != nil {
		return err
	}
	if attrs.WeightAdditive, err = optionalFloat(vals, KeyWeightAdditive, graph.DefaultWeightAdditive); err != nil {
		return err
	}
	return l.g.AddEdgeByIndex(u, v, append(l.opts.EdgeOptions(), graph.WithAttrs(attrs))...)
}

func requireFloat(vals map[string]string, name, id string) (float64, error) {
	s, ok := vals[name]
	if !ok {
		return 0, errors.New(errors.ErrCodeMissingAttribute, "node %q has no %s coordinate", id, name)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeFormat, "node %q: %s is not a number: %q", id, name, s)
	}
	return f, nil
}

// optionalFloat returns nil when the attribute is absent or equals the model
// default, so absent and default-valued attributes load identically.
func optionalFloat(vals map[string]string, name string, def float64) (*float64, error) {
	s, ok := vals[name]
	if !ok {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New(errors.ErrCodeFormat, "%s is not a number: %q", name, s)
	}
	if f == def {
		return nil, nil
	}
	return &f, nil
}
