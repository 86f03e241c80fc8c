package repository

import "github.com/dastanaron/bookmarks-csv/internal/models"

// Repository provides the bookmark tree kept by a browser storage backend
type Repository interface {
	// Document loads the whole tree with its roots
	Document() (*models.Document, error)
	Close() error
}
