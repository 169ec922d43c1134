// Package poly loads closed polygons from the .poly format, which shares
// the block layout of the line format but connects the last point of each
// block back to its first.
package poly

import (
	"github.com/cgalab/format-converter/pkg/cursor"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/formats/line"
	"github.com/cgalab/format-converter/pkg/graph"
)

const formatName = "poly"

// Format describes the .poly format.
var Format = &formats.Format{
	Name:        formatName,
	Extensions:  []string{".poly"},
	Description: "closed polygons (count, then x y per line)",
	Loader:      formats.LoaderFunc(Load),
}

// Load reads every block as a closed polygon. Neighbouring polygons may
// share edges, so edges are always inserted duplicate-tolerantly.
func Load(content []byte, name string, opts formats.LoadOptions) ([]*graph.Graph, error) {
	g := opts.NewGraph(name, formatName)
	if err := line.LoadChains(g, cursor.NewLines(content), true, graph.AllowDuplicate()); err != nil {
		return nil, err
	}
	return []*graph.Graph{g}, nil
}
