// Package graphml reads and writes GraphML (http://graphml.graphdrawing.org/).
//
// Vertices are nodes carrying their coordinates in the string-typed data
// keys x, y and, for 3D graphs, z. Edges carry weight and weight_additive;
// both keys declare a default ("1.0" and "0.0") and the writer omits data
// equal to it. Node and edge ids are zero-based insertion indices.
//
// A document written by [Write] and read back by [Load] yields the same
// vertex sequence and the same edges with the same effective weights.
package graphml

import (
	"encoding/xml"

	"github.com/cgalab/format-converter/pkg/formats"
)

const formatName = "graphml"

// Namespace is the GraphML XML namespace.
const Namespace = "http://graphml.graphdrawing.org/xmlns"

// Data key names.
const (
	KeyX              = "x"
	KeyY              = "y"
	KeyZ              = "z"
	KeyWeight         = "weight"
	KeyWeightAdditive = "weight_additive"
)

// Format describes the GraphML format.
var Format = &formats.Format{
	Name:        formatName,
	Extensions:  []string{".graphml"},
	Description: "GraphML with x/y(/z) node coordinates and edge weights",
	Loader:      formats.LoaderFunc(Load),
	Writer:      formats.WriterFunc(Write),
}

type document struct {
	XMLName xml.Name  `xml:"graphml"`
	Xmlns   string    `xml:"xmlns,attr,omitempty"`
	Keys    []key     `xml:"key"`
	Graphs  []graphEl `xml:"graph"`
}

type key struct {
	ID      string  `xml:"id,attr"`
	For     string  `xml:"for,attr"`
	Name    string  `xml:"attr.name,attr"`
	Type    string  `xml:"attr.type,attr"`
	Default *string `xml:"default"`
}

// appliesTo reports whether the key may be used on elements of kind.
func (k key) appliesTo(kind string) bool {
	return k.For == kind || k.For == "all" || k.For == ""
}

type graphEl struct {
	ID          string `xml:"id,attr,omitempty"`
	EdgeDefault string `xml:"edgedefault,attr,omitempty"`
	Nodes       []node `xml:"node"`
	Edges       []edge `xml:"edge"`
}

type node struct {
	ID   string `xml:"id,attr"`
	Data []data `xml:"data"`
}

type edge struct {
	ID     string `xml:"id,attr,omitempty"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Data   []data `xml:"data"`
}

type data struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}
