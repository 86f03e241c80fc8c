package service

import (
	"log/slog"

	"github.com/dastanaron/bookmarks-csv/internal/models"
)

// BookmarkService turns bookmark documents into flat records
type BookmarkService struct {
	logger *slog.Logger
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(logger *slog.Logger) *BookmarkService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookmarkService{logger: logger}
}

// CollectAll flattens the known roots of doc in fixed order.
// Missing roots are logged and skipped.
func (s *BookmarkService) CollectAll(doc *models.Document) []models.Record {
	records := []models.Record{}
	if doc == nil || len(doc.Roots) == 0 {
		s.logger.Warn("no roots found in bookmarks file")
		return records
	}

	for _, key := range models.RootKeys {
		root := doc.Root(key)
		if root == nil {
			s.logger.Warn("root not found", slog.String("root", key))
			continue
		}
		Flatten(root, &records, root.StringOr(models.FieldName, key))
	}
	return records
}

// Flatten appends a record for every url entry under node.
// Folders extend the path with their name; url entries keep the path they receive.
// Nodes of any other type are skipped together with their children.
func Flatten(node *models.Node, records *[]models.Record, path string) {
	switch node.Kind() {
	case models.KindFolder:
		name := node.StringOr(models.FieldName, models.DefaultFolderName)
		currentPath := name
		if path != "" {
			currentPath = path + "/" + name
		}
		for _, child := range node.Children {
			Flatten(child, records, currentPath)
		}
	case models.KindURL:
		*records = append(*records, newRecord(node, path))
	}
}

func newRecord(node *models.Node, path string) models.Record {
	r := models.Record{
		Name:         node.StringOr(models.FieldName, models.DefaultBookmarkName),
		URL:          node.StringOr(models.FieldURL, ""),
		DateAdded:    node.StringOr(models.FieldDateAdded, ""),
		DateModified: node.StringOr(models.FieldDateModified, ""),
		Path:         path,
	}
	for key, value := range node.Fields {
		if models.IsRequiredField(key) || key == models.FieldChildren {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]any, len(node.Fields))
		}
		r.Extra[key] = value
	}
	return r
}
