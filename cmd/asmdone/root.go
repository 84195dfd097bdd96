package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/asmdone/api"
	"github.com/sarchlab/asmdone/config"
	"github.com/sarchlab/asmdone/core"
)

var (
	cfgFile     string
	packagesDir string
	maxSteps    int
	engineName  string
	logLevel    string
	language    string

	cfg config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "asmdone",
	Short: "The AsmDone engine host",
	Long: `Asmdone executes programs written in AD, a tiny register language
with three registers (a1, b2, c3), labels, conditional jumps and
single-level library imports. Programs can also be exported as
assembly-style text.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "asmdone.yaml", "YAML configuration file")
	flags.StringVar(&packagesDir, "packages", "", "directory of importable libraries")
	flags.IntVar(&maxSteps, "max-steps", 0, "step budget of a run")
	flags.StringVar(&engineName, "engine", "", "execution engine (loop or sim)")
	flags.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&language, "lang", "", "message language (en or ru)")
}

// setup loads the configuration, applies the flags on top and installs
// the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("packages") {
		loaded.PackagesDir = packagesDir
	}
	if flags.Changed("max-steps") {
		loaded.MaxSteps = maxSteps
	}
	if flags.Changed("engine") {
		loaded.Engine = config.Engine(engineName)
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if flags.Changed("lang") {
		loaded.Language = language
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	})
	slog.SetDefault(slog.New(handler))

	slog.Debug("Config", "max_steps", cfg.MaxSteps, "packages_dir", cfg.PackagesDir,
		"language", cfg.Language, "engine", cfg.Engine)

	return nil
}

// newDriver builds a driver that prints to stdout and saves to disk.
func newDriver() api.Driver {
	return api.NewDriverBuilder().
		WithConfig(cfg).
		WithResolver(core.DirResolver{Dir: cfg.PackagesDir}).
		WithOutputSink(api.WriterOutputSink{W: os.Stdout}).
		WithRegisterSink(api.TableRegisterSink{W: os.Stdout, Title: cfg.Messages().Registers}).
		WithArtifactSink(api.FileArtifactSink{}).
		Build()
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cfg.Messages().FileError, err)
	}
	return string(data), nil
}
