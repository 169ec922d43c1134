// Package ipe reads and writes drawings of the IPE extensible drawing
// editor (https://ipe.otfried.org/).
//
// # Loading
//
// Every <path> element becomes edges: straight segments map to one edge
// each and circular arcs are sampled into ArcSamples segments (see
// [Interpret]). The optional matrix attribute of a path, and of any
// enclosing <group>, transforms its coordinates.
//
// Which graph a path lands in depends on the load mode:
//
//   - flatten: all pages, layers and views collapse into one graph.
//   - views: one graph per <view> element, in document order across pages.
//     A path belongs to the layer that was last named by a layer attribute
//     on its page, and is added to every view of that page that lists the
//     layer. A path before any layer was named is an error.
//
// # Writing
//
// [Write] produces a minimal single-page document that IPE opens directly
// and that loads back to the same edge set in flatten mode.
package ipe

import "github.com/cgalab/format-converter/pkg/formats"

const formatName = "ipe"

// Format describes the IPE format.
var Format = &formats.Format{
	Name:        formatName,
	Extensions:  []string{".ipe"},
	Description: "IPE drawing (paths, arcs, layers and views)",
	Loader:      formats.LoaderFunc(Load),
	Writer:      formats.WriterFunc(Write),
}
