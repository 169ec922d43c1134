// Package cli implements the ord-format command-line interface.
//
// The root command carries --verbose (-v) for debug logging and --config
// for a TOML or YAML file of conversion defaults. Loggers are passed through
// context.Context so every command logs the same way.
//
// # Commands
//
//   - convert: convert one file, or a batch of files into a directory
//   - formats: list the supported formats
//   - completion: emit shell completion scripts
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cgalab/format-converter/pkg/buildinfo"
	"github.com/cgalab/format-converter/pkg/config"
	"github.com/cgalab/format-converter/pkg/pipeline"
)

const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Convert planar straight-line graphs between geometry file formats",
		Long: `ord-format converts graphs embedded in the plane (or in space) between
IPE drawings, GraphML, Wavefront OBJ and the line, poly, point and site
text formats. It can also emit DOT and SVG previews.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml or .yml; default $XDG_CONFIG_HOME/"+appName+"/config.toml)")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.formatsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner logging through the CLI logger.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// loadConfig reads --config when given, otherwise the default location.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadDefault()
}
