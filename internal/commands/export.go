package commands

import (
	"log/slog"

	"github.com/dastanaron/bookmarks-csv/internal/config"
	"github.com/dastanaron/bookmarks-csv/internal/models"
	"github.com/dastanaron/bookmarks-csv/internal/service"
	"github.com/dastanaron/bookmarks-csv/internal/tabular"
)

// ExportCommand runs the bookmark to CSV pipeline
type ExportCommand struct {
	cfg         *config.Config
	logger      *slog.Logger
	loader      *LoadCommand
	bookmarkSvc *service.BookmarkService
	exporter    *tabular.Exporter
}

// NewExportCommand creates a new export command
func NewExportCommand(cfg *config.Config, logger *slog.Logger) *ExportCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportCommand{
		cfg:         cfg,
		logger:      logger,
		loader:      NewLoadCommand(),
		bookmarkSvc: service.NewBookmarkService(logger),
		exporter:    tabular.NewExporter(logger),
	}
}

// Collect loads the configured input and returns its records with decoded timestamps.
// A source without bookmarks yields an empty slice and no error.
func (c *ExportCommand) Collect() ([]models.Record, error) {
	doc, err := c.loader.Execute(c.cfg.Input, c.cfg.Format)
	if err != nil {
		return nil, err
	}

	records := c.bookmarkSvc.CollectAll(doc)
	if len(records) == 0 {
		c.logger.Warn("no bookmarks found", slog.String("input", c.cfg.Input))
		return records, nil
	}

	service.NormalizeTimestamps(records, c.cfg.TimestampFields)
	return records, nil
}

// Execute exports the configured input to the configured output.
// It returns the number of rows written.
func (c *ExportCommand) Execute() (int, error) {
	records, err := c.Collect()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	if err := c.exporter.Export(records, c.cfg.Output); err != nil {
		return 0, err
	}
	return len(records), nil
}
