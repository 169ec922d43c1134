package dot

import (
	"context"
	"io"

	"github.com/goccy/go-graphviz"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	model "github.com/cgalab/format-converter/pkg/graph"
)

// PointsPerUnit maps one coordinate unit to one inch of SVG output.
const PointsPerUnit = 72.0

// SVGFormat describes SVG output rendered through Graphviz.
var SVGFormat = &formats.Format{
	Name:        "svg",
	Extensions:  []string{".svg"},
	Description: "SVG drawing rendered by Graphviz neato (write only)",
	Writer:      formats.WriterFunc(WriteSVG),
}

// WriteSVG renders g with Graphviz and writes the SVG document.
func WriteSVG(w io.Writer, g *model.Graph, opts formats.WriteOptions) error {
	src, err := Marshal(g, PointsPerUnit, opts)
	if err != nil {
		return err
	}
	return RenderSVG(context.Background(), src, w)
}

// RenderSVG lays out DOT source with neato, honouring pinned positions, and
// writes the SVG to w.
func RenderSVG(ctx context.Context, src []byte, w io.Writer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes(src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "parse dot")
	}
	defer g.Close()

	if err := gv.Render(ctx, g, graphviz.SVG, w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	return nil
}
