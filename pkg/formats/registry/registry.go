// Package registry lists every built-in format. It is kept apart from
// package formats so that format packages can depend on formats without an
// import cycle.
package registry

import (
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/formats/dot"
	"github.com/cgalab/format-converter/pkg/formats/graphml"
	"github.com/cgalab/format-converter/pkg/formats/ipe"
	"github.com/cgalab/format-converter/pkg/formats/line"
	"github.com/cgalab/format-converter/pkg/formats/obj"
	"github.com/cgalab/format-converter/pkg/formats/point"
	"github.com/cgalab/format-converter/pkg/formats/poly"
	"github.com/cgalab/format-converter/pkg/formats/site"
)

// All lists the built-in formats in display order.
var All = []*formats.Format{
	graphml.Format,
	ipe.Format,
	obj.Format,
	line.Format,
	poly.Format,
	point.Format,
	site.Format,
	dot.Format,
	dot.SVGFormat,
}

// ForPath returns the format of path, judged by its extension.
func ForPath(path string) (*formats.Format, error) {
	return formats.Detect(path, All...)
}

// Find returns the format with the given name or extension.
func Find(name string) (*formats.Format, error) {
	return formats.Find(name, All...)
}

// Readable returns the formats that can be loaded.
func Readable() []*formats.Format {
	var out []*formats.Format
	for _, f := range All {
		if f.CanLoad() {
			out = append(out, f)
		}
	}
	return out
}

// Writable returns the formats that can be written.
func Writable() []*formats.Format {
	var out []*formats.Format
	for _, f := range All {
		if f.CanWrite() {
			out = append(out, f)
		}
	}
	return out
}
