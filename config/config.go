// Package config holds the settings of the lower cone tools.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/chirotope/basis"
	"github.com/wippyai/chirotope/enumerate"
	"github.com/wippyai/chirotope/errors"
)

// Environment variables that override file values.
const (
	EnvRank     = "LOWERCONE_RANK"
	EnvElements = "LOWERCONE_ELEMENTS"
	EnvLogLevel = "LOWERCONE_LOG_LEVEL"
)

// Config is the full configuration of a run.
type Config struct {
	Rank     int `yaml:"rank"`
	Elements int `yaml:"elements"`

	// Directories holding the catalogue of uniform representatives and the
	// lower cone output.
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`

	// Group action for the fixed command, one permutation per line.
	GroupFile string `yaml:"group_file"`

	// Prometheus textfile written after a run; empty disables it.
	MetricsFile string `yaml:"metrics_file"`

	// Masks between progress reports.
	ProgressInterval uint64 `yaml:"progress_interval"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the default configuration: rank 3 on 6 elements, files in
// the working directory.
func Default() *Config {
	return &Config{
		Rank:             3,
		Elements:         6,
		InputDir:         ".",
		OutputDir:        ".",
		ProgressInterval: enumerate.DefaultProgressInterval,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.New(errors.PhaseSetup, errors.KindInvalidData).
					Path(path).
					Cause(err).
					Detail("failed to parse config").
					Build()
			}
		case !os.IsNotExist(err):
			return nil, errors.IO(errors.PhaseSetup, path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.IO(errors.PhaseSetup, path, err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.PhaseSetup, errors.KindInvalidData, err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IO(errors.PhaseSetup, path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvRank); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvRank, v, err)
		}
		c.Rank = n
	}
	if v := os.Getenv(EnvElements); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvElements, v, err)
		}
		c.Elements = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}

func envError(name, value string, cause error) error {
	return errors.New(errors.PhaseSetup, errors.KindInvalidInput).
		Path(name).
		Value(value).
		Cause(cause).
		Detail("%s must be an integer", name).
		Build()
}

// Validate checks the rank, the ground set and the log settings.
func (c *Config) Validate() error {
	if _, err := basis.New(c.Rank, c.Elements); err != nil {
		return err
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.PhaseSetup, errors.KindInvalidInput).
			Path("log", "level").
			Value(c.Log.Level).
			Detail("unknown log level %q", c.Log.Level).
			Build()
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return errors.New(errors.PhaseSetup, errors.KindInvalidInput).
			Path("log", "format").
			Value(c.Log.Format).
			Detail("unknown log format %q", c.Log.Format).
			Build()
	}
	return nil
}

// ValidateEnumeration is Validate plus the lower cone capacity check, so a
// run that cannot fit is refused before any work starts.
func (c *Config) ValidateEnumeration() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if b := c.Bases(); b > enumerate.MaxBases {
		return errors.Capacity("basis count", b, enumerate.MaxBases)
	}
	return nil
}

// Bases returns C(Elements, Rank), or 0 if the pair is invalid.
func (c *Config) Bases() int {
	tab, err := basis.New(c.Rank, c.Elements)
	if err != nil {
		return 0
	}
	return tab.Count()
}

// InputPath is the catalogue of uniform representatives.
func (c *Config) InputPath(name string) string {
	return filepath.Join(c.InputDir, name)
}

// OutputPath is where a lower cone file is written.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}
