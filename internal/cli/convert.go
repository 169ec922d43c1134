package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cgalab/format-converter/pkg/config"
	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/formats/registry"
	"github.com/cgalab/format-converter/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
// Flags left unset fall back to the config file.
type convertOpts struct {
	from, to string
	outDir   string
	jobs     int

	ipeMode         string
	allowDuplicates bool

	scale       float64
	randomize   bool
	weightLower float64
	weightUpper float64
	roundDigits int
	seed        uint64

	toolName  string
	zeroBased bool
}

// convertCommand converts one file, or a batch of files with --out-dir.
func (c *CLI) convertCommand() *cobra.Command {
	opts := convertOpts{}

	cmd := &cobra.Command{
		Use:   "convert <input> [output]",
		Short: "Convert a graph file to another format",
		Long: `Convert a graph file to another format.

The input format is detected from the extension unless --from is given.
Without an output path the result is written to standard output as GraphML.
Use "-" as input to read standard input (needs --from).

When the input holds several graphs (an IPE file read with --ipe-mode views),
each graph is written to <stem>-<n><ext>.

With --out-dir every argument is an input, and each is converted into the
directory under its own base name with the extension of --to.`,
		Example: `  ord-format convert drawing.ipe drawing.graphml
  ord-format convert mesh.obj -r --weight-upper 10 --round-digits 2
  ord-format convert --ipe-mode views slides.ipe views.line
  ord-format convert a.ipe b.line --out-dir out --to graphml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.from, "from", "", "input format name or extension (default: detected from the input path)")
	f.StringVar(&opts.to, "to", "", "output format name or extension (default: detected from the output path, else graphml)")
	f.StringVarP(&opts.outDir, "out-dir", "o", "", "convert every input into this directory")
	f.IntVarP(&opts.jobs, "jobs", "j", pipeline.DefaultJobs, "parallel conversions with --out-dir")

	f.StringVar(&opts.ipeMode, "ipe-mode", string(formats.ModeFlatten), "IPE input: flatten (one graph) or views (one graph per view)")
	f.BoolVar(&opts.allowDuplicates, "allow-duplicates", false, "let duplicate edges overwrite instead of failing")

	f.Float64Var(&opts.scale, "scale", 0, "multiply every coordinate by this factor")
	f.BoolVarP(&opts.randomize, "randomize-weights", "r", false, "draw random edge weights")
	f.Float64Var(&opts.weightLower, "weight-lower", pipeline.DefaultWeightLower, "lower bound for random weights")
	f.Float64Var(&opts.weightUpper, "weight-upper", pipeline.DefaultWeightUpper, "upper bound for random weights")
	f.IntVar(&opts.roundDigits, "round-digits", 0, "round random weights to this many decimals")
	f.Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "random seed")

	f.StringVar(&opts.toolName, "tool-name", formats.DefaultToolName, "tool name written into output provenance comments")
	f.BoolVar(&opts.zeroBased, "zero-based", false, "write 0-based OBJ face indices")

	cmd.RegisterFlagCompletionFunc("from", completeFormats(registry.Readable()))
	cmd.RegisterFlagCompletionFunc("to", completeFormats(registry.Writable()))
	cmd.RegisterFlagCompletionFunc("ipe-mode", cobra.FixedCompletions(
		[]string{string(formats.ModeFlatten), string(formats.ModeViews)}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, args []string, opts convertOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	base := opts.baseOptions(cmd.Flags(), cfg)
	base.Logger = c.Logger
	base.Stdin = cmd.InOrStdin()
	base.Stdout = cmd.OutOrStdout()

	if opts.outDir != "" {
		jobs := cfg.Jobs
		if cmd.Flags().Changed("jobs") {
			jobs = opts.jobs
		}
		return c.convertBatch(cmd, args, base, opts.outDir, jobs)
	}
	if len(args) > 2 {
		return errors.New(errors.ErrCodeInvalidInput, "convert takes one input and an optional output; use --out-dir for several inputs")
	}

	base.InputPath = args[0]
	if len(args) == 2 {
		base.OutputPath = args[1]
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	res, err := c.newRunner().Convert(ctx, base)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %s", plural(res.Stats.Graphs, "graph")))

	// The summary would corrupt output written to stdout.
	if base.OutputPath != "" && base.OutputPath != pipeline.Stdio {
		printResult(cmd.OutOrStdout(), res)
	}
	return nil
}

// convertBatch converts every input into dir.
func (c *CLI) convertBatch(cmd *cobra.Command, inputs []string, base pipeline.Options, dir string, jobs int) error {
	out := pipeline.DefaultOutputFormat
	if base.To != "" {
		f, err := registry.Find(base.To)
		if err != nil {
			return err
		}
		out = f
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", dir)
	}

	all := make([]pipeline.Options, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		if in == pipeline.Stdio {
			return errors.New(errors.ErrCodeInvalidInput, "standard input cannot be batch converted")
		}
		o := base
		o.InputPath = in
		o.OutputPath = pipeline.OutputPathIn(dir, in, out)
		if prev, dup := seen[o.OutputPath]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "%s and %s would both be written to %s", prev, in, o.OutputPath)
		}
		seen[o.OutputPath] = in
		all[i] = o
	}

	ctx := cmd.Context()
	prog := newProgress(loggerFromContext(ctx))

	results, err := c.newRunner().ConvertAll(ctx, jobs, all...)
	for _, res := range results {
		if res != nil {
			printResult(cmd.OutOrStdout(), res)
		}
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %d files into %s", len(inputs), dir))
	return nil
}

// baseOptions starts from the config and overrides it with every flag set
// on the command line.
func (o convertOpts) baseOptions(flags *pflag.FlagSet, cfg config.Config) pipeline.Options {
	var opts pipeline.Options
	cfg.Apply(&opts)
	opts.From, opts.To = o.from, o.to

	if flags.Changed("ipe-mode") {
		opts.IPEMode = formats.IPEMode(strings.ToLower(o.ipeMode))
	}
	if flags.Changed("allow-duplicates") {
		opts.AllowDuplicates = o.allowDuplicates
	}
	if flags.Changed("scale") {
		opts.Scale = o.scale
	}
	if flags.Changed("randomize-weights") {
		opts.Randomize = o.randomize
	}
	if flags.Changed("weight-lower") {
		opts.WeightLower = o.weightLower
	}
	if flags.Changed("weight-upper") {
		opts.WeightUpper = o.weightUpper
	}
	if flags.Changed("round-digits") {
		opts.Round, opts.RoundDigits = true, o.roundDigits
	}
	if flags.Changed("seed") {
		opts.Seed = o.seed
	}
	if flags.Changed("tool-name") {
		opts.ToolName = o.toolName
	}
	if flags.Changed("zero-based") {
		opts.ZeroBased = o.zeroBased
	}
	return opts
}

func completeFormats(all []*formats.Format) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		var out []cobra.Completion
		for _, f := range all {
			if strings.HasPrefix(f.Name, toComplete) {
				out = append(out, cobra.CompletionWithDesc(f.Name, f.Description))
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
