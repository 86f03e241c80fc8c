package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/dastanaron/bookmarks-csv/internal/config"
	"github.com/dastanaron/bookmarks-csv/internal/models"
	"github.com/dastanaron/bookmarks-csv/internal/parser"
	"github.com/dastanaron/bookmarks-csv/internal/repository"
)

// LoadCommand reads a bookmark source into a document
type LoadCommand struct {
	parser *parser.Parser
	// openRepository opens database-backed sources
	openRepository func(path string) (repository.Repository, error)
}

// NewLoadCommand creates a new load command
func NewLoadCommand() *LoadCommand {
	return &LoadCommand{
		parser: parser.NewParser(),
		openRepository: func(path string) (repository.Repository, error) {
			return repository.NewSQLiteRepository(path)
		},
	}
}

// Execute loads the bookmarks stored at filePath in the given format
func (c *LoadCommand) Execute(filePath, format string) (*models.Document, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrInputNotFound, filePath)
		}
		return nil, fmt.Errorf("cannot access %s: %w", filePath, err)
	}

	if format == config.FormatFirefox {
		return c.loadRepository(filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	doc, err := c.parser.Parse(format, file)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", models.ErrInputParse, filePath, err)
	}
	return doc, nil
}

func (c *LoadCommand) loadRepository(filePath string) (*models.Document, error) {
	repo, err := c.openRepository(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", models.ErrInputParse, filePath, err)
	}
	defer repo.Close()

	doc, err := repo.Document()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", models.ErrInputParse, filePath, err)
	}
	return doc, nil
}
