// Package formats defines the contract between file formats and the
// canonical graph model.
//
// Every format is described by a [Format] value carrying an optional
// [Loader] (text or XML to graphs) and an optional [Writer] (graph to
// text). The format packages below this one each export such a value:
//
//	graphml.Format  // .graphml, load + write
//	ipe.Format      // .ipe, load + write
//	obj.Format      // .obj, load + write
//	line.Format     // .line, load
//	poly.Format     // .poly, load
//	point.Format    // .pnt, load
//	site.Format     // .site, load
//	dot.Format      // .dot, write
//	dot.SVGFormat   // .svg, write
//
// The registry package collects them into one static table; dispatch is an
// extension lookup in that table ([Detect]) or a lookup by name ([Find]).
//
// # Loader contract
//
// A loader either returns graphs or an error, never both: a malformed input
// yields a nil slice and a FORMAT_ERROR (or a more specific code) describing
// the first problem found. Most formats produce exactly one graph; the IPE
// loader in [ModeViews] produces one per view and may produce none.
//
// # Writer contract
//
// Writers are deterministic. Randomized weights are applied to the graph
// by the caller before writing, never by the writer.
package formats
