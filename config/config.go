// Package config provides the configuration of the AsmDone engine host.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/asmdone/core"
)

// Version is the engine version reported by hosts.
const Version = "1.0.0"

// Engine selects how a run is clocked.
type Engine string

const (
	EngineLoop Engine = "loop" // plain step loop
	EngineSim  Engine = "sim"  // akita serial event engine
)

// Config holds every setting the host reads from a YAML file.
type Config struct {
	MaxSteps    int    `yaml:"max_steps"`
	PackagesDir string `yaml:"packages_dir"`
	Language    string `yaml:"language"`
	LogLevel    string `yaml:"log_level"`
	Engine      Engine `yaml:"engine"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		MaxSteps:    core.DefaultMaxSteps,
		PackagesDir: "packages",
		Language:    "en",
		LogLevel:    "info",
		Engine:      EngineLoop,
	}
}

// Load reads a YAML file on top of the defaults. A missing file is not
// an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that every field holds a supported value.
func (c Config) Validate() error {
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps)
	}

	if _, ok := catalogs[c.Language]; !ok {
		return fmt.Errorf("unsupported language %q", c.Language)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.Engine {
	case EngineLoop, EngineSim:
	default:
		return fmt.Errorf("unsupported engine %q", c.Engine)
	}

	return nil
}

// Messages returns the catalog for the configured language.
func (c Config) Messages() Messages {
	if m, ok := catalogs[c.Language]; ok {
		return m
	}
	return catalogs["en"]
}

// Level returns the slog level for LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// ParseLevel maps a level name, including "trace", to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "trace":
		return core.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unsupported log level %q", name)
	}
}
