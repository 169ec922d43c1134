package ipe

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/geometry"
	"github.com/cgalab/format-converter/pkg/graph"
)

const (
	// fileVersion is the IPE file format version written (IPE 7.2.6).
	fileVersion = "70206"
	// layerName is the single layer written documents use.
	layerName = "alpha"
)

// Write serializes g as an IPE 7 document with one page, one layer and one
// view. Every edge becomes a two-point <path>; every isolated vertex a disk
// mark. 3D vertices are projected onto the xy-plane.
func Write(w io.Writer, g *graph.Graph, opts formats.WriteOptions) error {
	bw := bufio.NewWriter(w)

	if g.Dim() == 3 {
		opts.Log().Warn("projecting 3D graph onto the xy-plane", "source", g.Source)
	}

	fmt.Fprintln(bw, `<?xml version="1.0"?>`)
	fmt.Fprintln(bw, `<!DOCTYPE ipe SYSTEM "ipe.dtd">`)
	fmt.Fprintf(bw, "<ipe version=\"%s\" creator=\"%s\">\n", fileVersion, attr(opts.Tool()))
	fmt.Fprintf(bw, "<!-- %s -->\n", comment(fmt.Sprintf("Generated by %s from %s (%s)", opts.Tool(), g.Source, g.Format)))
	fmt.Fprintln(bw, `<page>`)
	fmt.Fprintf(bw, "<layer name=\"%s\"/>\n", layerName)
	fmt.Fprintf(bw, "<view layers=\"%s\" active=\"%s\"/>\n", layerName, layerName)

	for _, e := range g.Edges() {
		a := geometry.Project(g.Vertex(e.U))
		b := geometry.Project(g.Vertex(e.V))
		fmt.Fprintf(bw, "<path layer=\"%s\" stroke=\"black\">\n", layerName)
		fmt.Fprintf(bw, "%s %s m\n", coord(a.X), coord(a.Y))
		fmt.Fprintf(bw, "%s %s l\n", coord(b.X), coord(b.Y))
		fmt.Fprintln(bw, "</path>")
	}
	for _, i := range g.Isolated() {
		p := geometry.Project(g.Vertex(i))
		fmt.Fprintf(bw, "<use layer=\"%s\" name=\"mark/disk(sx)\" pos=\"%s %s\" size=\"normal\" stroke=\"black\"/>\n",
			layerName, coord(p.X), coord(p.Y))
	}

	fmt.Fprintln(bw, `</page>`)
	fmt.Fprintln(bw, `</ipe>`)
	return bw.Flush()
}

// coord formats a coordinate without exponent notation, which the IPE
// path syntax does not accept.
func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func attr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// comment makes s safe inside an XML comment, where "--" is forbidden.
func comment(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	return strings.TrimSuffix(s, "-")
}
