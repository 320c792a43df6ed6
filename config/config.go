// SPDX-License-Identifier: MIT

// Package config holds the YAML configuration of the cnnsim command.
//
// A missing file yields DefaultConfig; environment variables CNNSIM_WORKERS,
// CNNSIM_LOG_LEVEL and CNNSIM_SCHEME override whatever the file says.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/cellnet/cnn"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a configuration value outside its domain.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variables read by Load.
const (
	EnvWorkers  = "CNNSIM_WORKERS"
	EnvLogLevel = "CNNSIM_LOG_LEVEL"
	EnvScheme   = "CNNSIM_SCHEME"
)

// Display modes.
const (
	DisplayNone     = "none"
	DisplayTerminal = "terminal"
	DisplayGIF      = "gif"
)

// Config is the root configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
	Display DisplayConfig `yaml:"display"`
	Library string        `yaml:"library,omitempty"` // template library YAML file
	Run     RunConfig     `yaml:"run,omitempty"`
}

// EngineConfig configures the integrator.
type EngineConfig struct {
	Scheme     string `yaml:"scheme"`     // rk4, euler
	Saturation string `yaml:"saturation"` // final, step, none
	Workers    int    `yaml:"workers"`    // row-band workers per step
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DisplayConfig configures where intermediate frames go.
type DisplayConfig struct {
	Mode    string `yaml:"mode"`               // none, terminal, gif
	GIFPath string `yaml:"gif_path,omitempty"` // required for mode gif
	Buffer  int    `yaml:"buffer"`             // async queue length
	Delay   int    `yaml:"delay"`              // gif frame delay, 1/100 s
	Stride  int    `yaml:"stride"`             // gif keeps every n-th frame
}

// RunConfig is a chained run.
type RunConfig struct {
	Steps []StepConfig `yaml:"steps,omitempty"`
}

// StepConfig is one step of a chained run. References use the textual form
// of sequence.ParseRef: empty, "#N" or an image path.
type StepConfig struct {
	Template string  `yaml:"template"`
	Init     string  `yaml:"init,omitempty"`
	Input1   string  `yaml:"input1,omitempty"`
	Input2   string  `yaml:"input2,omitempty"`
	DT       float64 `yaml:"dt,omitempty"`
	TEnd     float64 `yaml:"t_end,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Scheme:     cnn.RK4.String(),
			Saturation: cnn.SaturateFinal.String(),
			Workers:    1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Display: DisplayConfig{
			Mode:   DisplayNone,
			Buffer: 16,
			Delay:  5,
			Stride: 1,
		},
	}
}

// Load reads configuration from a YAML file over the defaults, then applies
// environment overrides and validates the result. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvWorkers, v)
		}
		c.Engine.Workers = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvScheme); v != "" {
		c.Engine.Scheme = v
	}

	return nil
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "console"}
	validModes   = []string{DisplayNone, DisplayTerminal, DisplayGIF}
)

// Validate checks every field, reporting the first problem.
func (c *Config) Validate() error {
	if _, err := cnn.ParseScheme(c.Engine.Scheme); err != nil {
		return fmt.Errorf("%w: engine.scheme: %w", ErrInvalidConfig, err)
	}
	if _, err := cnn.ParseSaturation(c.Engine.Saturation); err != nil {
		return fmt.Errorf("%w: engine.saturation: %w", ErrInvalidConfig, err)
	}
	if c.Engine.Workers < 1 {
		return fmt.Errorf("%w: engine.workers %d < 1", ErrInvalidConfig, c.Engine.Workers)
	}
	if !oneOf(c.Logging.Level, validLevels) {
		return fmt.Errorf("%w: logging.level %q (valid: %v)", ErrInvalidConfig, c.Logging.Level, validLevels)
	}
	if !oneOf(c.Logging.Format, validFormats) {
		return fmt.Errorf("%w: logging.format %q (valid: %v)", ErrInvalidConfig, c.Logging.Format, validFormats)
	}
	if !oneOf(c.Display.Mode, validModes) {
		return fmt.Errorf("%w: display.mode %q (valid: %v)", ErrInvalidConfig, c.Display.Mode, validModes)
	}
	if c.Display.Mode == DisplayGIF && c.Display.GIFPath == "" {
		return fmt.Errorf("%w: display.gif_path required for mode gif", ErrInvalidConfig)
	}
	if c.Display.Buffer < 1 || c.Display.Delay < 0 || c.Display.Stride < 1 {
		return fmt.Errorf("%w: display buffer/delay/stride out of range", ErrInvalidConfig)
	}
	for i, st := range c.Run.Steps {
		if strings.TrimSpace(st.Template) == "" {
			return fmt.Errorf("%w: run.steps[%d]: no template", ErrInvalidConfig, i)
		}
		if st.DT < 0 || st.TEnd < 0 {
			return fmt.Errorf("%w: run.steps[%d]: negative timing", ErrInvalidConfig, i)
		}
	}

	return nil
}

func oneOf(s string, set []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range set {
		if s == v {
			return true
		}
	}

	return false
}
