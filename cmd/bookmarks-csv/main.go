// Package main provides the entry point for the bookmarks-csv CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dastanaron/bookmarks-csv/internal/output"
)

// Build info set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command. Without a subcommand it runs export.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks-csv",
		Short: "Export browser bookmarks to CSV",
		Long: `bookmarks-csv flattens a browser bookmark tree into a CSV file.

Every bookmark becomes one row carrying its folder path, its fields and
human-readable dates. Chromium-family "Bookmarks" files, Netscape HTML
exports and Firefox places.sqlite databases are supported.`,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runExport,
	}

	// Environment variables already set take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to config file (default: <user config dir>/bookmarks-csv/config.yaml)")
	flags.StringP("browser", "b", "", "Browser profile to read: vivaldi, chrome, chromium, brave, edge, firefox")
	flags.StringP("input", "i", "", "Path to the bookmarks file (default: the browser's default profile)")
	flags.StringP("format", "f", "", "Input format: chromium, html, firefox (default: derived from browser)")
	flags.StringP("output", "o", "", "Path to the CSV file (default: <browser>_bookmarks.csv next to the executable)")
	flags.String("log-level", "", "Diagnostics level: debug, info, warn, error")

	cmd.AddCommand(newExportCmd(), newPreviewCmd())
	return cmd
}

func loadEnvFiles() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}
