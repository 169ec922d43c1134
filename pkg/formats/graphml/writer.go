package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/geometry"
	"github.com/cgalab/format-converter/pkg/graph"
)

// Write serializes g as GraphML.
func Write(w io.Writer, g *graph.Graph, opts formats.WriteOptions) error {
	doc := document{
		Xmlns:  Namespace,
		Keys:   keysFor(g.Dim()),
		Graphs: []graphEl{buildGraph(g)},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	note := fmt.Sprintf(" Generated by %s from %s (%s) ", opts.Tool(), g.Source, g.Format)
	if err := enc.EncodeToken(xml.Comment(sanitizeComment(note))); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode provenance comment")
	}
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graphml")
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func keysFor(dim int) []key {
	keys := []key{
		{ID: KeyX, For: "node", Name: KeyX, Type: "string"},
		{ID: KeyY, For: "node", Name: KeyY, Type: "string"},
	}
	if dim == 3 {
		keys = append(keys, key{ID: KeyZ, For: "node", Name: KeyZ, Type: "string"})
	}
	return append(keys,
		key{ID: KeyWeight, For: "edge", Name: KeyWeight, Type: "string", Default: strPtr(geometry.FormatFloat(graph.DefaultWeight))},
		key{ID: KeyWeightAdditive, For: "edge", Name: KeyWeightAdditive, Type: "string", Default: strPtr(geometry.FormatFloat(graph.DefaultWeightAdditive))},
	)
}

func buildGraph(g *graph.Graph) graphEl {
	out := graphEl{
		ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte(g.Source)).String(),
		EdgeDefault: "undirected",
		Nodes:       make([]node, 0, g.VertexCount()),
		Edges:       make([]edge, 0, g.EdgeCount()),
	}

	names := []string{KeyX, KeyY, KeyZ}
	for i, v := range g.Vertices() {
		n := node{ID: strconv.Itoa(i)}
		for j, c := range v.Components() {
			n.Data = append(n.Data, data{Key: names[j], Value: geometry.FormatFloat(c)})
		}
		out.Nodes = append(out.Nodes, n)
	}

	for i, e := range g.Edges() {
		el := edge{ID: strconv.Itoa(i), Source: strconv.Itoa(e.U), Target: strconv.Itoa(e.V)}
		if w := e.Attrs.EffectiveWeight(); w != graph.DefaultWeight {
			el.Data = append(el.Data, data{Key: KeyWeight, Value: geometry.FormatFloat(w)})
		}
		if w := e.Attrs.EffectiveWeightAdditive(); w != graph.DefaultWeightAdditive {
			el.Data = append(el.Data, data{Key: KeyWeightAdditive, Value: geometry.FormatFloat(w)})
		}
		out.Edges = append(out.Edges, el)
	}
	return out
}

func strPtr(s string) *string { return &s }

// sanitizeComment removes "--" sequences, which XML comments cannot hold.
func sanitizeComment(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	return s
}
