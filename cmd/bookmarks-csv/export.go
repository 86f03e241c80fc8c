package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dastanaron/bookmarks-csv/internal/commands"
	"github.com/dastanaron/bookmarks-csv/internal/config"
	"github.com/dastanaron/bookmarks-csv/internal/models"
	"github.com/dastanaron/bookmarks-csv/internal/output"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write bookmarks to a CSV file",
		Long: `Write every bookmark of the selected profile to a CSV file.

The header is the sorted union of all fields found on any bookmark.
A profile without bookmarks produces no file and exits successfully.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	n, err := commands.NewExportCommand(cfg, logger).Execute()
	if err != nil {
		return exitError(err)
	}
	if n == 0 {
		return nil
	}

	out := cmd.OutOrStdout()
	output.NewPrinter(out, output.IsTTY(out)).
		Success("Bookmarks successfully exported to %s", cfg.Output)
	return nil
}

// loadConfig merges defaults, the config file, the environment and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	var err error
	if path != "" {
		err = config.Load(path, cfg)
	} else {
		err = config.LoadOptional(config.DefaultFile(), cfg)
	}
	if err != nil {
		return nil, output.NewUserError(err.Error(), err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, output.NewUserError(err.Error(), err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, output.NewUserError(err.Error(), err)
	}

	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, output.NewUserError(fmt.Sprintf("invalid configuration: %v", err), err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	setters := map[string]func(string) *config.Config{
		"browser": cfg.WithBrowser,
		"input":   cfg.WithInput,
		"format":  cfg.WithFormat,
		"output":  cfg.WithOutput,
	}
	for name, set := range setters {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		set(value)
	}

	if flags.Changed("log-level") {
		value, _ := flags.GetString("log-level")
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		cfg.WithLogLevel(level)
	}
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// exitError maps pipeline failures to exit codes
func exitError(err error) error {
	switch {
	case errors.Is(err, models.ErrInputNotFound), errors.Is(err, models.ErrInputParse):
		return output.NewUserError(err.Error(), err)
	default:
		return output.NewSystemError(err.Error(), err)
	}
}
