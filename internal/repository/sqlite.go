package repository

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/dastanaron/bookmarks-csv/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// Firefox bookmark item types
const (
	placesTypeBookmark  = 1
	placesTypeFolder    = 2
	placesTypeSeparator = 3
)

// Firefox root folder guids
const (
	guidMenu    = "menu________"
	guidToolbar = "toolbar_____"
	guidUnfiled = "unfiled_____"
	guidMobile  = "mobile______"
)

// ErrNotPlacesDB is returned when the file has no Firefox bookmark tables
var ErrNotPlacesDB = errors.New("not a places database")

// SQLiteRepository reads bookmarks from a Firefox places.sqlite file
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens a places database read-only.
// The file is opened immutable so a running browser holding the lock does not matter.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", placesDSN(dbPath))
	if err != nil {
		return nil, err
	}

	if err := checkSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func placesDSN(path string) string {
	escaped := strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23").Replace(path)
	return "file:" + escaped + "?mode=ro&immutable=1"
}

func checkSchema(db *sql.DB) error {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('moz_bookmarks', 'moz_places')
	`).Scan(&count)
	if err != nil {
		return err
	}
	if count != 2 {
		return ErrNotPlacesDB
	}
	return nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type placesRow struct {
	id           int64
	itemType     int
	parent       int64
	title        sql.NullString
	dateAdded    sql.NullInt64
	lastModified sql.NullInt64
	guid         string
	url          sql.NullString
}

// Document builds the bookmark tree. The toolbar becomes the bookmark bar,
// unfiled bookmarks (with the bookmarks menu in front) the other root,
// and mobile bookmarks the synced root.
func (r *SQLiteRepository) Document() (*models.Document, error) {
	rows, err := r.db.Query(`
		SELECT b.id, b.type, b.parent, b.title, b.dateAdded, b.lastModified, COALESCE(b.guid, ''), p.url
		FROM moz_bookmarks AS b
		LEFT JOIN moz_places AS p ON p.id = b.fk
		ORDER BY b.parent, b.position, b.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []placesRow
	for rows.Next() {
		var row placesRow
		if err := rows.Scan(&row.id, &row.itemType, &row.parent, &row.title,
			&row.dateAdded, &row.lastModified, &row.guid, &row.url); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	nodes := make(map[int64]*models.Node, len(items))
	byGUID := make(map[string]*models.Node, 4)
	for _, item := range items {
		n := item.node()
		nodes[item.id] = n
		byGUID[item.guid] = n
	}
	for _, item := range items {
		if parent, ok := nodes[item.parent]; ok && parent.Kind() == models.KindFolder {
			parent.Add(nodes[item.id])
		}
	}

	doc := &models.Document{Roots: map[string]*models.Node{}}
	if toolbar := byGUID[guidToolbar]; toolbar != nil {
		doc.Roots[models.RootBookmarkBar] = toolbar
	}
	other, menu := byGUID[guidUnfiled], byGUID[guidMenu]
	switch {
	case other != nil && menu != nil:
		other.Children = append([]*models.Node{menu}, other.Children...)
		doc.Roots[models.RootOther] = other
	case other != nil:
		doc.Roots[models.RootOther] = other
	case menu != nil:
		doc.Roots[models.RootOther] = menu
	}
	if mobile := byGUID[guidMobile]; mobile != nil {
		doc.Roots[models.RootSynced] = mobile
	}
	return doc, nil
}

func (row placesRow) node() *models.Node {
	fields := map[string]any{
		"id": strconv.FormatInt(row.id, 10),
	}
	if row.guid != "" {
		fields["guid"] = row.guid
	}
	if row.title.Valid {
		fields[models.FieldName] = row.title.String
	}
	if row.dateAdded.Valid {
		fields[models.FieldDateAdded] = models.WebKitFromUnixMicros(row.dateAdded.Int64)
	}
	if row.lastModified.Valid {
		fields[models.FieldDateModified] = models.WebKitFromUnixMicros(row.lastModified.Int64)
	}

	switch row.itemType {
	case placesTypeBookmark:
		if row.url.Valid {
			fields[models.FieldURL] = row.url.String
		}
		return models.NewURL(fields)
	case placesTypeFolder:
		fields[models.FieldType] = models.TypeFolder
		return &models.Node{Fields: fields, Children: []*models.Node{}}
	case placesTypeSeparator:
		fields[models.FieldType] = "separator"
	}
	return &models.Node{Fields: fields}
}
