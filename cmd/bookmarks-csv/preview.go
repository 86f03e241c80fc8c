package main

import (
	"github.com/spf13/cobra"

	"github.com/dastanaron/bookmarks-csv/internal/commands"
	"github.com/dastanaron/bookmarks-csv/internal/output"
	"github.com/dastanaron/bookmarks-csv/internal/ui"
)

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Browse the rows that export would write",
		Long: `Show the flattened bookmarks in a terminal table without writing anything.

Keys: Enter opens the selected URL, / searches by name, URL or path,
q or Esc quits.`,
		Args: cobra.NoArgs,
		RunE: runPreview,
	}
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	records, err := commands.NewExportCommand(cfg, logger).Collect()
	if err != nil {
		return exitError(err)
	}
	if len(records) == 0 {
		errW := cmd.ErrOrStderr()
		output.NewPrinter(errW, output.IsTTY(errW)).Warn("nothing to preview in %s", cfg.Input)
		return nil
	}

	if err := ui.NewApp(records).Run(); err != nil {
		return output.NewSystemError(err.Error(), err)
	}
	return nil
}
