package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/observability"
)

const square = `4
0 0
1 0
1 1
0 1
`

const twoViews = `<ipe version="70206">
<page>
<layer name="A"/>
<layer name="B"/>
<view layers="A"/>
<view layers="B"/>
<path layer="A">
0 0 m
1 0 l
</path>
<path layer="B">
5 5 m
6 5 l
</path>
</page>
</ipe>
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"ok", Options{InputPath: "a.line", OutputPath: "a.graphml"}, ""},
		{"stdout defaults to graphml", Options{InputPath: "a.poly"}, ""},
		{"explicit formats", Options{InputPath: "-", From: "line", OutputPath: "out", To: "obj"}, ""},
		{"missing input", Options{}, errors.ErrCodeInvalidPath},
		{"stdin without format", Options{InputPath: "-"}, errors.ErrCodeInvalidInput},
		{"unknown input", Options{InputPath: "a.txt"}, errors.ErrCodeUnsupportedFormat},
		{"write-only input", Options{InputPath: "a.svg"}, errors.ErrCodeUnsupportedFormat},
		{"read-only output", Options{InputPath: "a.line", OutputPath: "a.site"}, errors.ErrCodeUnsupportedFormat},
		{"bad ipe mode", Options{InputPath: "a.ipe", IPEMode: "pages"}, errors.ErrCodeInvalidInput},
		{"inverted range", Options{InputPath: "a.line", Randomize: true, WeightLower: 5, WeightUpper: 1}, errors.ErrCodeInvalidInput},
		{"too many digits", Options{InputPath: "a.line", Randomize: true, Round: true, RoundDigits: 16}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o.OutputPath != Stdio || o.Seed != DefaultSeed || o.IPEMode != formats.ModeFlatten {
		t.Errorf("unexpected defaults: %+v", o)
	}
	if o.WeightLower != DefaultWeightLower || o.WeightUpper != DefaultWeightUpper {
		t.Errorf("weight range = [%v, %v]", o.WeightLower, o.WeightUpper)
	}
	if o.ToolName != formats.DefaultToolName || o.Logger == nil {
		t.Error("tool name and logger should be set")
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		output string
		n      int
		want   []string
	}{
		{"out.graphml", 1, []string{"out.graphml"}},
		{"dir/out.graphml", 3, []string{"dir/out-1.graphml", "dir/out-2.graphml", "dir/out-3.graphml"}},
		{"noext", 2, []string{"noext-1", "noext-2"}},
		{"-", 2, []string{"-", "-"}},
		{"out.obj", 0, []string{}},
	}
	for _, tt := range tests {
		got := OutputPaths(tt.output, tt.n)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("OutputPaths(%q, %d) = %v, want %v", tt.output, tt.n, got, tt.want)
		}
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "square.poly", square)
	out := filepath.Join(dir, "square.graphml")

	res, err := NewRunner(nil).Convert(context.Background(), Options{InputPath: in, OutputPath: out})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if res.Stats.Graphs != 1 || res.Stats.Vertices != 4 || res.Stats.Edges != 4 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if len(res.Outputs) != 1 || res.Outputs[0] != out {
		t.Errorf("outputs = %v", res.Outputs)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if int64(len(data)) != res.Stats.Bytes {
		t.Errorf("Bytes = %d, file has %d", res.Stats.Bytes, len(data))
	}
	if !strings.Contains(string(data), "Generated by ord-format from "+in+" (poly)") {
		t.Errorf("missing provenance:\n%s", data)
	}
}

func TestConvertStdioWithRandomWeights(t *testing.T) {
	run := func() string {
		var stdout bytes.Buffer
		_, err := NewRunner(nil).Convert(context.Background(), Options{
			InputPath:   "-",
			From:        "poly",
			Stdin:       strings.NewReader(square),
			Stdout:      &stdout,
			Randomize:   true,
			WeightLower: 1,
			WeightUpper: 9,
			Round:       true,
		})
		if err != nil {
			t.Fatalf("Convert() error: %v", err)
		}
		return stdout.String()
	}

	first := run()
	if !strings.Contains(first, "from <stdin> (poly)") {
		t.Errorf("missing stdin provenance:\n%s", first)
	}
	if n := strings.Count(first, "<edge "); n != 4 {
		t.Errorf("got %d edges, want 4:\n%s", n, first)
	}
	if first != run() {
		t.Error("same seed should give the same output")
	}
}

func TestConvertScale(t *testing.T) {
	var stdout bytes.Buffer
	res, err := NewRunner(nil).Convert(context.Background(), Options{
		InputPath: "-", From: "line", To: "obj",
		Stdin: strings.NewReader("2\n1 2\n3 4\n"), Stdout: &stdout,
		Scale: 2,
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !strings.Contains(stdout.String(), "v 2.0 4.0 0.0\nv 6.0 8.0 0.0\nf 1 2\n") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
	if res.Stats.Edges != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestConvertViewsWritesNumberedFiles(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "d.ipe", twoViews)

	res, err := NewRunner(nil).Convert(context.Background(), Options{
		InputPath:  in,
		OutputPath: filepath.Join(dir, "d.obj"),
		IPEMode:    formats.ModeViews,
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	for _, name := range []string{"d-1.obj", "d-2.obj"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if res.Stats.Graphs != 2 {
		t.Errorf("graphs = %d, want 2", res.Stats.Graphs)
	}
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.line", "2\n0 0\n")

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing file", Options{InputPath: filepath.Join(dir, "nope.line")}, errors.ErrCodeFileNotFound},
		{"malformed input", Options{InputPath: bad, OutputPath: filepath.Join(dir, "out.graphml")}, errors.ErrCodeFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(nil).Convert(context.Background(), tt.opts)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("error code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "out.graphml")); !os.IsNotExist(err) {
		t.Error("failed conversion should not create output")
	}
}

func TestConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil).Convert(ctx, Options{InputPath: "-", From: "line", Stdin: strings.NewReader(square), Stdout: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestConvertAll(t *testing.T) {
	dir := t.TempDir()
	var opts []Options
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		in := writeFile(t, dir, name+".poly", square)
		opts = append(opts, Options{InputPath: in, OutputPath: filepath.Join(dir, name+".graphml"), Randomize: true})
	}

	results, err := NewRunner(nil).ConvertAll(context.Background(), 2, opts...)
	if err != nil {
		t.Fatalf("ConvertAll() error: %v", err)
	}
	if len(results) != len(opts) {
		t.Fatalf("got %d results, want %d", len(results), len(opts))
	}
	for i, res := range results {
		if res.Input != opts[i].InputPath {
			t.Errorf("result %d is for %s, want %s", i, res.Input, opts[i].InputPath)
		}
	}

	a, _ := os.ReadFile(filepath.Join(dir, "a.graphml"))
	e, _ := os.ReadFile(filepath.Join(dir, "e.graphml"))
	strip := func(b []byte) string { return normalize(b, "a.poly", "e.poly") }
	if strip(a) != strip(e) {
		t.Error("each conversion should draw weights from its own seeded generator")
	}
}

// normalize removes the provenance differences between two outputs.
func normalize(b []byte, names ...string) string {
	s := string(b)
	for _, n := range names {
		s = strings.ReplaceAll(s, n, "")
	}
	// Graph ids derive from the source name.
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.Contains(l, "<graph id=") {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

func TestConvertAllFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.poly", square)
	_, err := NewRunner(nil).ConvertAll(context.Background(), 1,
		Options{InputPath: filepath.Join(dir, "missing.poly"), OutputPath: filepath.Join(dir, "m.graphml")},
		Options{InputPath: good, OutputPath: filepath.Join(dir, "g.graphml")},
	)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestHooksCalled(t *testing.T) {
	h := &recordingHooks{}
	observability.SetConversionHooks(h)
	t.Cleanup(observability.Reset)

	_, err := NewRunner(nil).Convert(context.Background(), Options{
		InputPath: "-", From: "poly", Stdin: strings.NewReader(square), Stdout: &bytes.Buffer{}, Scale: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"load-start", "load-complete", "transform", "write-start", "write-complete"}
	if strings.Join(h.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", h.events, want)
	}
}

type recordingHooks struct {
	observability.NoopConversionHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadStart(context.Context, string, string) { h.add("load-start") }
func (h *recordingHooks) OnLoadComplete(context.Context, string, string, int, time.Duration, error) {
	h.add("load-complete")
}
func (h *recordingHooks) OnTransform(context.Context, string, bool, bool, time.Duration, error) {
	h.add("transform")
}
func (h *recordingHooks) OnWriteStart(context.Context, string, string) { h.add("write-start") }
func (h *recordingHooks) OnWriteComplete(context.Context, string, string, int64, time.Duration, error) {
	h.add("write-complete")
}
