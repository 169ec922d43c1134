// Package point loads point sets from the .pnt format: blocks of a count
// followed by that many "x y" lines. The result has vertices only.
package point

import (
	"github.com/cgalab/format-converter/pkg/cursor"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/formats/line"
	"github.com/cgalab/format-converter/pkg/graph"
)

const formatName = "point"

// Format describes the .pnt format.
var Format = &formats.Format{
	Name:        formatName,
	Extensions:  []string{".pnt"},
	Description: "point sets (count, then x y per line)",
	Loader:      formats.LoaderFunc(Load),
}

// Load reads every block and adds its points. Repeated points collapse
// into one vertex.
func Load(content []byte, name string, opts formats.LoadOptions) ([]*graph.Graph, error) {
	g := opts.NewGraph(name, formatName)
	c := cursor.NewLines(content)
	for cursor.SkipBlank(c) {
		pts, err := line.ReadBlock(c)
		if err != nil {
			return nil, err
		}
		for _, p := range pts {
			g.AddVertex(p)
		}
	}
	return []*graph.Graph{g}, nil
}
