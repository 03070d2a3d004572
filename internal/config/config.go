// Package config loads the optional YAML configuration for the CLI and
// library consumers.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/board-context/internal/model"
)

// Config is the top-level YAML structure.
type Config struct {
	Layers map[string]model.LayerConfig `yaml:"layers"`
	Log    LogConfig                    `yaml:"log"`
}

// LogConfig controls the zerolog setup.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error; default info
	Format string `yaml:"format"` // console or json; default console
	Output string `yaml:"output"` // stdout or stderr; default stderr
}

// Load reads a YAML config file. Unknown layer names are rejected so typos
// don't silently fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	valid := map[string]bool{}
	for _, name := range model.LayerNames {
		valid[name] = true
	}
	for name := range cfg.Layers {
		if !valid[name] {
			return nil, fmt.Errorf("unknown layer %q in config", name)
		}
	}
	return &cfg, nil
}

// LayerConfigs merges the configured layer overrides over the defaults.
func (c *Config) LayerConfigs() map[string]model.LayerConfig {
	out := model.DefaultLayerConfigs()
	for name, cfg := range c.Layers {
		base := out[name]
		if cfg.MaxEntries > 0 {
			base.MaxEntries = cfg.MaxEntries
		}
		if cfg.MaxTokens > 0 {
			base.MaxTokens = cfg.MaxTokens
		}
		if cfg.RetentionPolicy != "" {
			base.RetentionPolicy = cfg.RetentionPolicy
		}
		if cfg.SummarizationPolicy != "" {
			base.SummarizationPolicy = cfg.SummarizationPolicy
		}
		out[name] = base
	}
	return out
}

// BuildLogger constructs a zerolog logger from the log settings.
func (lc LogConfig) BuildLogger() (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if lc.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(strings.ToLower(lc.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", lc.Level, err)
		}
	}

	var out io.Writer
	switch strings.ToLower(lc.Output) {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log output %q", lc.Output)
	}

	if strings.ToLower(lc.Format) != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
