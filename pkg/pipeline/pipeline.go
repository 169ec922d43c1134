// Package pipeline runs conversions: load → transform → write.
//
// Entry points build Options and hand them to a Runner, which resolves the
// formats, applies defaults and collects statistics.
//
// # Stages
//
//  1. Load: read the input and parse it with the input format's loader.
//     IPE documents in views mode may produce several graphs.
//  2. Transform: optionally scale coordinates, then optionally randomize
//     edge weights with a generator seeded per conversion.
//  3. Write: serialize every graph with the output format's writer.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Convert(ctx, pipeline.Options{
//	    InputPath:  "drawing.ipe",
//	    OutputPath: "drawing.graphml",
//	    IPEMode:    formats.ModeViews,
//	})
//
// Several independent conversions run in parallel with ConvertAll; each
// gets its own random generator, so results do not depend on scheduling.
package pipeline

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/formats/graphml"
	"github.com/cgalab/format-converter/pkg/formats/registry"
	"github.com/cgalab/format-converter/pkg/graph"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducible weights.
	DefaultSeed = uint64(42)

	// DefaultWeightLower and DefaultWeightUpper bound randomized weights.
	DefaultWeightLower = 0.0
	DefaultWeightUpper = 5.0

	// DefaultJobs is the default number of parallel conversions.
	DefaultJobs = 4

	// Stdio stands for standard input or output in place of a path.
	Stdio = "-"
)

// DefaultOutputFormat is used when the output format cannot be derived
// from a file name, such as when writing to standard output.
var DefaultOutputFormat = graphml.Format

// =============================================================================
// Options - Conversion Configuration
// =============================================================================

// Options configures one conversion.
type Options struct {
	// Input and output
	InputPath  string `json:"input"`
	OutputPath string `json:"output,omitempty"` // empty or "-" means stdout
	From       string `json:"from,omitempty"`   // format name; detected from InputPath when empty
	To         string `json:"to,omitempty"`     // format name; detected from OutputPath when empty

	// Load options
	IPEMode         formats.IPEMode `json:"ipe_mode,omitempty"`
	AllowDuplicates bool            `json:"allow_duplicates,omitempty"`

	// Transform options
	Scale       float64 `json:"scale,omitempty"` // 0 or 1 leaves coordinates unchanged
	Randomize   bool    `json:"randomize,omitempty"`
	WeightLower float64 `json:"weight_lower,omitempty"`
	WeightUpper float64 `json:"weight_upper,omitempty"`
	Round       bool    `json:"round,omitempty"`
	RoundDigits int     `json:"round_digits,omitempty"`
	Seed        uint64  `json:"seed,omitempty"`

	// Write options
	ToolName  string `json:"tool_name,omitempty"`
	ZeroBased bool   `json:"zero_based,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Stdin  io.Reader   `json:"-"`
	Stdout io.Writer   `json:"-"`

	in, out   *formats.Format
	validated bool
}

// Result contains the outputs of a conversion.
type Result struct {
	// Input is the input path of the conversion.
	Input string

	// Graphs are the loaded (and transformed) graphs.
	Graphs []*graph.Graph

	// Outputs lists the written files, or "-" for standard output.
	Outputs []string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains conversion statistics, summed over all graphs.
type Stats struct {
	Graphs        int
	Vertices      int
	Edges         int
	DroppedLoops  int
	Bytes         int64
	LoadTime      time.Duration
	TransformTime time.Duration
	WriteTime     time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields with their defaults.
func (o *Options) SetDefaults() {
	if o.OutputPath == "" {
		o.OutputPath = Stdio
	}
	if o.IPEMode == "" {
		o.IPEMode = formats.ModeFlatten
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.WeightLower == 0 && o.WeightUpper == 0 {
		o.WeightLower, o.WeightUpper = DefaultWeightLower, DefaultWeightUpper
	}
	if o.ToolName == "" {
		o.ToolName = formats.DefaultToolName
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
}

// ValidateAndSetDefaults applies defaults, checks every field and resolves
// the input and output formats. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if err := errors.ValidatePath(o.InputPath); err != nil {
		return err
	}
	if err := errors.ValidatePath(o.OutputPath); err != nil {
		return err
	}
	if !formats.ValidIPEModes[o.IPEMode] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid ipe mode %q (must be one of: flatten, views)", o.IPEMode)
	}
	if math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid scale %v", o.Scale)
	}
	if o.Randomize {
		if err := errors.ValidateRange(o.WeightLower, o.WeightUpper); err != nil {
			return err
		}
		if o.Round {
			if err := errors.ValidateDigits(o.RoundDigits); err != nil {
				return err
			}
		}
	}

	in, err := o.inputFormat()
	if err != nil {
		return err
	}
	out, err := o.outputFormat()
	if err != nil {
		return err
	}
	o.in, o.out = in, out
	o.validated = true
	return nil
}

func (o *Options) inputFormat() (*formats.Format, error) {
	var (
		f   *formats.Format
		err error
	)
	switch {
	case o.From != "":
		f, err = registry.Find(o.From)
	case o.InputPath == Stdio:
		return nil, errors.New(errors.ErrCodeInvalidInput, "reading standard input needs an explicit input format")
	default:
		f, err = registry.ForPath(o.InputPath)
	}
	if err != nil {
		return nil, err
	}
	if !f.CanLoad() {
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "format %s cannot be read", f.Name)
	}
	return f, nil
}

func (o *Options) outputFormat() (*formats.Format, error) {
	var (
		f   *formats.Format
		err error
	)
	switch {
	case o.To != "":
		f, err = registry.Find(o.To)
	case o.OutputPath == Stdio:
		f = DefaultOutputFormat
	default:
		f, err = registry.ForPath(o.OutputPath)
	}
	if err != nil {
		return nil, err
	}
	if !f.CanWrite() {
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "format %s cannot be written", f.Name)
	}
	return f, nil
}

// InputFormat returns the resolved input format, or nil before validation.
func (o *Options) InputFormat() *formats.Format { return o.in }

// OutputFormat returns the resolved output format, or nil before validation.
func (o *Options) OutputFormat() *formats.Format { return o.out }

// LoadOptions returns the options passed to the loader.
func (o *Options) LoadOptions() formats.LoadOptions {
	return formats.LoadOptions{IPEMode: o.IPEMode, AllowDuplicates: o.AllowDuplicates, Logger: o.Logger}
}

// WriteOptions returns the options passed to the writer.
func (o *Options) WriteOptions() formats.WriteOptions {
	return formats.WriteOptions{ToolName: o.ToolName, ZeroBased: o.ZeroBased, Logger: o.Logger}
}

// WeightRange returns the randomization range.
func (o *Options) WeightRange() graph.WeightRange {
	return graph.WeightRange{Lower: o.WeightLower, Upper: o.WeightUpper, Round: o.Round, Digits: o.RoundDigits}
}

// ShouldScale reports whether coordinates are to be scaled.
func (o *Options) ShouldScale() bool {
	return o.Scale != 0 && o.Scale != 1
}

// =============================================================================
// Output Paths
// =============================================================================

// OutputPaths returns where n graphs are written. A single graph goes to
// OutputPath itself; several graphs go to "<stem>-<i><ext>" with i counted
// from 1. Standard output is reused for every graph.
func OutputPaths(output string, n int) []string {
	paths := make([]string, n)
	if n == 1 || output == Stdio {
		for i := range paths {
			paths[i] = output
		}
		return paths
	}
	ext := filepath.Ext(output)
	stem := strings.TrimSuffix(output, ext)
	for i := range paths {
		paths[i] = stem + "-" + strconv.Itoa(i+1) + ext
	}
	return paths
}

// OutputPathIn returns the path in dir for converting input to format f:
// the input's base name with its extension replaced by f's.
func OutputPathIn(dir, input string, f *formats.Format) string {
	base := filepath.Base(input)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+f.Extension())
}
