// Package config loads converter defaults from a TOML or YAML file.
//
// A config file only supplies defaults: command-line flags that were set
// explicitly always win. The default location follows the XDG convention,
// $XDG_CONFIG_HOME/ord-format/config.toml or ~/.config/ord-format/config.toml.
//
//	tool_name = "ord-format"
//	ipe_mode = "views"
//	jobs = 8
//
//	[randomize]
//	enabled = true
//	lower = 1.0
//	upper = 10.0
//	round_digits = 0
//	seed = 7
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/formats"
	"github.com/cgalab/format-converter/pkg/pipeline"
)

// AppName names the config directory.
const AppName = "ord-format"

// Config holds converter defaults.
type Config struct {
	ToolName        string          `toml:"tool_name" yaml:"tool_name"`
	IPEMode         formats.IPEMode `toml:"ipe_mode" yaml:"ipe_mode"`
	Scale           float64         `toml:"scale" yaml:"scale"`
	AllowDuplicates bool            `toml:"allow_duplicates" yaml:"allow_duplicates"`
	Jobs            int             `toml:"jobs" yaml:"jobs"`
	Randomize       Randomize       `toml:"randomize" yaml:"randomize"`
	OBJ             OBJ             `toml:"obj" yaml:"obj"`
}

// Randomize configures edge weight randomization.
type Randomize struct {
	Enabled bool    `toml:"enabled" yaml:"enabled"`
	Lower   float64 `toml:"lower" yaml:"lower"`
	Upper   float64 `toml:"upper" yaml:"upper"`
	// RoundDigits rounds weights to that many decimals; nil keeps them
	// unrounded.
	RoundDigits *int   `toml:"round_digits" yaml:"round_digits"`
	Seed        uint64 `toml:"seed" yaml:"seed"`
}

// OBJ configures the OBJ writer.
type OBJ struct {
	ZeroBased bool `toml:"zero_based" yaml:"zero_based"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		ToolName: formats.DefaultToolName,
		IPEMode:  formats.ModeFlatten,
		Jobs:     pipeline.DefaultJobs,
		Randomize: Randomize{
			Lower: pipeline.DefaultWeightLower,
			Upper: pipeline.DefaultWeightUpper,
			Seed:  pipeline.DefaultSeed,
		},
	}
}

// DefaultPath returns the XDG location of the config file.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads path on top of the defaults. The decoder is chosen by the
// file extension: .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown setting %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unsupported extension %q (use .toml, .yaml or .yml)", path, ext)
	}

	return cfg, cfg.Validate()
}

// LoadDefault loads the config at DefaultPath. A missing file yields the
// defaults.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.IPEMode != "" && !formats.ValidIPEModes[c.IPEMode] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid ipe_mode %q (must be one of: flatten, views)", c.IPEMode)
	}
	if c.Jobs < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "jobs must not be negative, got %d", c.Jobs)
	}
	if err := errors.ValidateRange(c.Randomize.Lower, c.Randomize.Upper); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "randomize")
	}
	if c.Randomize.RoundDigits != nil {
		if err := errors.ValidateDigits(*c.Randomize.RoundDigits); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "randomize")
		}
	}
	return nil
}

// Apply copies the config into opts as conversion defaults.
func (c Config) Apply(opts *pipeline.Options) {
	opts.ToolName = c.ToolName
	opts.IPEMode = c.IPEMode
	opts.Scale = c.Scale
	opts.AllowDuplicates = c.AllowDuplicates
	opts.Randomize = c.Randomize.Enabled
	opts.WeightLower = c.Randomize.Lower
	opts.WeightUpper = c.Randomize.Upper
	opts.Round = c.Randomize.RoundDigits != nil
	if opts.Round {
		opts.RoundDigits = *c.Randomize.RoundDigits
	}
	opts.Seed = c.Randomize.Seed
	opts.ZeroBased = c.OBJ.ZeroBased
}
