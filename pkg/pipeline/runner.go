package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/graph"
	"github.com/cgalab/format-converter/pkg/observability"
)

// Runner executes conversions.
//
// The Runner is stateless except for its logger. Multiple goroutines can
// safely use the same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger means log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Convert runs the complete load → transform → write pipeline.
func (r *Runner) Convert(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Input: opts.InputPath}

	// Stage 1: Load
	loadStart := time.Now()
	graphs, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", opts.InputPath, err)
	}
	result.Graphs = graphs
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Graphs = len(graphs)

	r.Logger.Info("loaded input",
		"input", opts.InputPath,
		"format", opts.in.Name,
		"graphs", len(graphs),
		"duration", result.Stats.LoadTime)

	if len(graphs) == 0 {
		r.Logger.Warn("input holds no graphs, nothing written", "input", opts.InputPath)
		return result, nil
	}

	// Stage 2: Transform
	transformStart := time.Now()
	rng := graph.NewRand(opts.Seed)
	for _, g := range graphs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.Transform(ctx, g, opts, rng); err != nil {
			return nil, fmt.Errorf("transform %s: %w", g.Source, err)
		}
	}
	result.Stats.TransformTime = time.Since(transformStart)

	for _, g := range graphs {
		result.Stats.Vertices += g.VertexCount()
		result.Stats.Edges += g.EdgeCount()
		result.Stats.DroppedLoops += g.DroppedLoops()
	}

	// Stage 3: Write
	writeStart := time.Now()
	outputs, n, err := r.Write(ctx, graphs, opts)
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	result.Outputs = outputs
	result.Stats.Bytes = n
	result.Stats.WriteTime = time.Since(writeStart)

	r.Logger.Info("wrote outputs",
		"format", opts.out.Name,
		"outputs", outputs,
		"duration", result.Stats.WriteTime)

	return result, nil
}

// Load reads the input and parses it. Options must be validated.
func (r *Runner) Load(ctx context.Context, opts Options) (graphs []*graph.Graph, err error) {
	hooks := observability.Conversion()
	hooks.OnLoadStart(ctx, opts.in.Name, opts.InputPath)
	start := time.Now()
	defer func() {
		hooks.OnLoadComplete(ctx, opts.in.Name, opts.InputPath, len(graphs), time.Since(start), err)
	}()

	content, err := r.read(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return opts.in.Loader.Load(content, sourceName(opts.InputPath), opts.LoadOptions())
}

func (r *Runner) read(opts Options) ([]byte, error) {
	if opts.InputPath == Stdio {
		content, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "read standard input")
		}
		return content, nil
	}
	content, err := os.ReadFile(opts.InputPath)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", opts.InputPath)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", opts.InputPath)
	}
	return content, nil
}

func sourceName(path string) string {
	if path == Stdio {
		return "<stdin>"
	}
	return path
}

// Transform scales g and randomizes its weights as the options request.
// rng is only drawn from when weights are randomized.
func (r *Runner) Transform(ctx context.Context, g *graph.Graph, opts Options, rng *rand.Rand) (err error) {
	scale, randomize := opts.ShouldScale(), opts.Randomize
	if !scale && !randomize {
		return nil
	}
	start := time.Now()
	defer func() {
		observability.Conversion().OnTransform(ctx, g.Source, scale, randomize, time.Since(start), err)
	}()

	if scale {
		before := g.VertexCount()
		if err := g.TransformCoordinates(opts.Scale); err != nil {
			return err
		}
		r.Logger.Debug("scaled coordinates", "source", g.Source, "scale", opts.Scale, "merged", before-g.VertexCount())
	}
	if randomize {
		if err := g.RandomizeWeights(rng, opts.WeightRange()); err != nil {
			return err
		}
		r.Logger.Debug("randomized weights", "source", g.Source, "lower", opts.WeightLower, "upper", opts.WeightUpper)
	}
	return nil
}

// Write serializes graphs to the paths given by OutputPaths and returns
// them with the total number of bytes written.
func (r *Runner) Write(ctx context.Context, graphs []*graph.Graph, opts Options) ([]string, int64, error) {
	paths := OutputPaths(opts.OutputPath, len(graphs))
	if opts.OutputPath == Stdio && len(graphs) > 1 {
		r.Logger.Warn("writing several graphs to standard output", "graphs", len(graphs))
	}

	var total int64
	for i, g := range graphs {
		if err := ctx.Err(); err != nil {
			return nil, total, err
		}
		n, err := r.writeOne(ctx, g, paths[i], opts)
		total += n
		if err != nil {
			return nil, total, fmt.Errorf("%s: %w", paths[i], err)
		}
	}
	return paths, total, nil
}

func (r *Runner) writeOne(ctx context.Context, g *graph.Graph, path string, opts Options) (n int64, err error) {
	hooks := observability.Conversion()
	hooks.OnWriteStart(ctx, opts.out.Name, path)
	start := time.Now()
	defer func() {
		hooks.OnWriteComplete(ctx, opts.out.Name, path, n, time.Since(start), err)
	}()

	// Render fully before touching the destination so a failing writer
	// leaves no truncated file behind.
	var buf bytes.Buffer
	if err := opts.out.Writer.Write(&buf, g, opts.WriteOptions()); err != nil {
		return 0, err
	}
	n = int64(buf.Len())

	if path == Stdio {
		if _, err := buf.WriteTo(opts.Stdout); err != nil {
			return 0, errors.Wrap(errors.ErrCodeInternal, err, "write standard output")
		}
		return n, nil
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return n, nil
}

// ConvertAll runs independent conversions with at most jobs in flight
// (DefaultJobs when jobs < 1). Results are returned in the order of opts.
// The first failure cancels conversions that have not started yet.
func (r *Runner) ConvertAll(ctx context.Context, jobs int, opts ...Options) ([]*Result, error) {
	if jobs < 1 {
		jobs = DefaultJobs
	}
	results := make([]*Result, len(opts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, o := range opts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.Convert(gctx, o)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
