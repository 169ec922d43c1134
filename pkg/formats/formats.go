package formats

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/graph"
)

// IPEMode selects how IPE documents map to graphs.
type IPEMode string

const (
	// ModeFlatten collects every path of every page into one graph.
	ModeFlatten IPEMode = "flatten"
	// ModeViews produces one graph per declared view.
	ModeViews IPEMode = "views"
)

// ValidIPEModes lists the accepted IPE modes.
var ValidIPEModes = map[IPEMode]bool{
	ModeFlatten: true,
	ModeViews:   true,
}

// DefaultToolName is the provenance name written into output comments
// when the caller does not set one.
const DefaultToolName = "ord-format"

// LoadOptions configures a loader.
type LoadOptions struct {
	// IPEMode is only read by the IPE loader. Empty means ModeFlatten.
	IPEMode IPEMode
	// AllowDuplicates turns duplicate edges in formats that treat them as
	// fatal (line, site, segment-wise IPE paths) into silent overwrites.
	AllowDuplicates bool
	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
}

// Mode returns the effective IPE mode.
func (o LoadOptions) Mode() IPEMode {
	if o.IPEMode == "" {
		return ModeFlatten
	}
	return o.IPEMode
}

// Log returns the logger, or one that discards everything.
func (o LoadOptions) Log() *log.Logger { return orDiscard(o.Logger) }

// EdgeOptions returns the insertion options matching AllowDuplicates.
func (o LoadOptions) EdgeOptions() []graph.EdgeOption {
	if o.AllowDuplicates {
		return []graph.EdgeOption{graph.AllowDuplicate()}
	}
	return nil
}

// NewGraph creates an empty graph wired to the options' logger.
func (o LoadOptions) NewGraph(source, format string) *graph.Graph {
	return graph.New(source, format, graph.WithLogger(o.Logger))
}

// WriteOptions configures a writer.
type WriteOptions struct {
	// ToolName is named in the provenance comment. Empty means
	// DefaultToolName.
	ToolName string
	// ZeroBased makes OBJ face indices start at 0 instead of 1.
	ZeroBased bool
	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
}

// Tool returns the effective tool name.
func (o WriteOptions) Tool() string {
	if o.ToolName == "" {
		return DefaultToolName
	}
	return o.ToolName
}

// Log returns the logger, or one that discards everything.
func (o WriteOptions) Log() *log.Logger { return orDiscard(o.Logger) }

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return l
}

// Loader reads one input format.
type Loader interface {
	// Load parses content and returns the graphs it describes. name is the
	// provenance recorded in each graph. On error the returned slice is nil.
	Load(content []byte, name string, opts LoadOptions) ([]*graph.Graph, error)
}

// Writer serializes a graph. Output depends only on the graph content and
// the options.
type Writer interface {
	Write(w io.Writer, g *graph.Graph, opts WriteOptions) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(content []byte, name string, opts LoadOptions) ([]*graph.Graph, error)

// Load implements Loader.
func (f LoaderFunc) Load(content []byte, name string, opts LoadOptions) ([]*graph.Graph, error) {
	return f(content, name, opts)
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc func(w io.Writer, g *graph.Graph, opts WriteOptions) error

// Write implements Writer.
func (f WriterFunc) Write(w io.Writer, g *graph.Graph, opts WriteOptions) error {
	return f(w, g, opts)
}

// Format describes one file format. Loader or Writer is nil when the
// format can only be read or only be written.
type Format struct {
	Name        string
	Extensions  []string // with leading dot, first is canonical
	Description string
	Loader      Loader
	Writer      Writer
}

// Extension returns the canonical extension.
func (f *Format) Extension() string {
	if len(f.Extensions) == 0 {
		return ""
	}
	return f.Extensions[0]
}

// CanLoad reports whether the format can be read.
func (f *Format) CanLoad() bool { return f.Loader != nil }

// CanWrite reports whether the format can be written.
func (f *Format) CanWrite() bool { return f.Writer != nil }

// Supports reports whether path carries one of the format's extensions.
// The comparison ignores case.
func (f *Format) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext != "" && slices.Contains(f.Extensions, ext)
}

// Matches reports whether name is the format name or one of its
// extensions, with or without the leading dot.
func (f *Format) Matches(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == f.Name {
		return true
	}
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}
	return slices.Contains(f.Extensions, name)
}

// Detect returns the format handling path, judged by its extension.
func Detect(path string, all ...*Format) (*Format, error) {
	for _, f := range all {
		if f.Supports(path) {
			return f, nil
		}
	}
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "cannot detect format of %q: no extension", filepath.Base(path))
	}
	return nil, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format %q (%s)", ext, Names(all...))
}

// Find returns the format with the given name or extension.
func Find(name string, all ...*Format) (*Format, error) {
	for _, f := range all {
		if f.Matches(name) {
			return f, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupportedFormat, "unknown format %q (%s)", name, Names(all...))
}

// Names lists format names separated by commas.
func Names(all ...*Format) string {
	names := make([]string, len(all))
	for i, f := range all {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}
