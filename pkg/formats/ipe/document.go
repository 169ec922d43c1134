package ipe

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/geometry"
	"github.com/cgalab/format-converter/pkg/graph"
)

// document mirrors the parts of an IPE 7 file the loader needs.
type document struct {
	XMLName xml.Name `xml:"ipe"`
	Pages   []page   `xml:"page"`
}

type page struct {
	Layers  []layer  `xml:"layer"`
	Views   []view   `xml:"view"`
	Objects []object `xml:",any"`
}

type layer struct {
	Name string `xml:"name,attr"`
}

type view struct {
	Layers string `xml:"layers,attr"`
}

// object is any drawable page element: path, group, text, use, image.
type object struct {
	XMLName  xml.Name
	Layer    string   `xml:"layer,attr"`
	Matrix   string   `xml:"matrix,attr"`
	Text     string   `xml:",chardata"`
	Children []object `xml:",any"`
}

// Load parses an IPE document. In ModeFlatten every path lands in one
// graph. In ModeViews there is one graph per <view>, across pages in
// document order, holding the paths whose layer that view shows.
func Load(content []byte, name string, opts formats.LoadOptions) ([]*graph.Graph, error) {
	var doc document
	dec := xml.NewDecoder(bytes.NewReader(content))
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFormat, err, "parse ipe document %s", name)
	}

	l := &loader{name: name, opts: opts}
	var err error
	switch opts.Mode() {
	case formats.ModeFlatten:
		err = l.flatten(doc)
	case formats.ModeViews:
		err = l.views(doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown ipe mode %q", opts.IPEMode)
	}
	if err != nil {
		return nil, err
	}
	return l.graphs, nil
}

type loader struct {
	name   string
	opts   formats.LoadOptions
	graphs []*graph.Graph
}

func (l *loader) flatten(doc document) error {
	g := l.opts.NewGraph(l.name, formatName)
	l.graphs = []*graph.Graph{g}
	for pi, p := range doc.Pages {
		err := walkPage(p.Objects, func(o object, m *geometry.Affine, _ string) error {
			return AddPath(g, o.Text, m, l.opts.EdgeOptions()...)
		})
		if err != nil {
			return fmt.Errorf("page %d: %w", pi+1, err)
		}
	}
	return nil
}

func (l *loader) views(doc document) error {
	logger := l.opts.Log()
	for pi, p := range doc.Pages {
		declared := make(map[string]bool, len(p.Layers))
		for _, ly := range p.Layers {
			declared[ly.Name] = true
		}
		// visible maps a layer name to the graphs of the views showing it.
		visible := make(map[string][]*graph.Graph)
		for vi, v := range p.Views {
			g := l.opts.NewGraph(fmt.Sprintf("%s [page %d view %d]", l.name, pi+1, vi+1), formatName)
			l.graphs = append(l.graphs, g)
			for _, name := range strings.Fields(v.Layers) {
				if !declared[name] {
					logger.Warn("view shows undeclared layer", "source", l.name, "page", pi+1, "view", vi+1, "layer", name)
				}
				visible[name] = append(visible[name], g)
			}
		}
		if len(p.Views) == 0 {
			logger.Warn("page declares no views, skipping", "source", l.name, "page", pi+1)
			continue
		}

		err := walkPage(p.Objects, func(o object, m *geometry.Affine, layer string) error {
			if layer == "" {
				return errors.New(errors.ErrCodeFormat, "path before any layer is active")
			}
			targets := visible[layer]
			if len(targets) == 0 {
				logger.Debug("path on a layer no view shows", "source", l.name, "page", pi+1, "layer", layer)
			}
			for _, g := range targets {
				if err := AddPath(g, o.Text, m, l.opts.EdgeOptions()...); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("page %d: %w", pi+1, err)
		}
	}
	return nil
}

// visitFunc receives a path, its effective matrix (nil when untransformed)
// and the layer it belongs to.
type visitFunc func(o object, m *geometry.Affine, layer string) error

// walkPage visits every path of a page in document order, descending into
// groups. The active layer starts empty on each page and is replaced by the
// layer attribute of every top-level element that carries one.
func walkPage(objs []object, visit visitFunc) error {
	w := &walker{visit: visit}
	active := ""
	for _, o := range objs {
		if o.Layer != "" {
			active = o.Layer
		}
		if err := w.object(o, nil, active); err != nil {
			return err
		}
	}
	return nil
}

type walker struct {
	visit visitFunc
	paths int
}

// object visits o. Group members inherit the group's layer unless they name
// their own, and group matrices compose with the matrices of their members.
func (w *walker) object(o object, parent *geometry.Affine, layer string) error {
	if o.Layer != "" {
		layer = o.Layer
	}
	switch o.XMLName.Local {
	case "path":
		w.paths++
		m, err := compose(parent, o.Matrix)
		if err == nil {
			err = w.visit(o, m, layer)
		}
		if err != nil {
			return fmt.Errorf("path %d: %w", w.paths, err)
		}
	case "group":
		m, err := compose(parent, o.Matrix)
		if err != nil {
			return fmt.Errorf("group after path %d: %w", w.paths, err)
		}
		for _, c := range o.Children {
			if err := w.object(c, m, layer); err != nil {
				return err
			}
		}
	}
	return nil
}

// compose returns parent∘matrix, or nil if neither is present.
func compose(parent *geometry.Affine, matrix string) (*geometry.Affine, error) {
	if matrix == "" {
		return parent, nil
	}
	m, err := geometry.ParseAffine(matrix)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		m = parent.Mul(m)
	}
	return &m, nil
}
