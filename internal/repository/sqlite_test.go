package repository

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dastanaron/bookmarks-csv/internal/models"
)

const placesSchema = `
CREATE TABLE moz_places (
	id INTEGER PRIMARY KEY,
	url LONGVARCHAR,
	title LONGVARCHAR
);
CREATE TABLE moz_bookmarks (
	id INTEGER PRIMARY KEY,
	type INTEGER,
	fk INTEGER DEFAULT NULL,
	parent INTEGER,
	position INTEGER,
	title LONGVARCHAR,
	dateAdded INTEGER,
	lastModified INTEGER,
	guid TEXT
);
`

// createPlacesDB writes a small Firefox profile database and returns its path.
func createPlacesDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "places.sqlite")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(placesSchema)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO moz_places (id, url, title) VALUES
			(1, 'https://go.dev/', 'Go'),
			(2, 'https://pkg.go.dev/', 'Packages'),
			(3, 'https://mozilla.org/', 'Mozilla'),
			(4, 'https://m.example.com/', 'Phone');
		INSERT INTO moz_bookmarks (id, type, fk, parent, position, title, dateAdded, lastModified, guid) VALUES
			(1, 2, NULL, 0, 0, '', 0, 0, 'root________'),
			(2, 2, NULL, 1, 0, 'menu', 0, 0, 'menu________'),
			(3, 2, NULL, 1, 1, 'toolbar', 0, 0, 'toolbar_____'),
			(4, 2, NULL, 1, 3, 'unfiled', 0, 0, 'unfiled_____'),
			(5, 2, NULL, 1, 4, 'mobile', 0, 0, 'mobile______'),
			(10, 1, 2, 3, 1, 'Packages', 1700000000000000, 1700000001000000, 'bm-pkg'),
			(11, 1, 1, 3, 0, 'Go', 1700000000000000, NULL, 'bm-go'),
			(12, 3, NULL, 3, 2, NULL, 0, 0, 'sep'),
			(13, 2, NULL, 3, 3, 'Dev', 0, 0, 'dev'),
			(14, 1, 2, 13, 0, NULL, NULL, NULL, 'bm-untitled'),
			(15, 1, 3, 2, 0, 'Mozilla', 0, 0, 'bm-moz'),
			(16, 1, 4, 5, 0, 'Phone', 0, 0, 'bm-phone');
	`)
	require.NoError(t, err)
	return path
}

func TestSQLiteRepository_Document(t *testing.T) {
	repo, err := NewSQLiteRepository(createPlacesDB(t))
	require.NoError(t, err)
	defer repo.Close()

	doc, err := repo.Document()
	require.NoError(t, err)

	bar := doc.Root(models.RootBookmarkBar)
	require.NotNil(t, bar)
	assert.Equal(t, "toolbar", bar.StringOr(models.FieldName, ""))
	require.Len(t, bar.Children, 4)

	goNode := bar.Children[0]
	assert.Equal(t, models.KindURL, goNode.Kind())
	assert.Equal(t, "Go", goNode.StringOr(models.FieldName, ""))
	assert.Equal(t, "https://go.dev/", goNode.StringOr(models.FieldURL, ""))
	assert.Equal(t, "13344473600000000", goNode.StringOr(models.FieldDateAdded, ""))
	assert.NotContains(t, goNode.Fields, models.FieldDateModified)
	assert.Equal(t, "11", goNode.Fields["id"])
	assert.Equal(t, "bm-go", goNode.Fields["guid"])

	assert.Equal(t, "13344473601000000", bar.Children[1].StringOr(models.FieldDateModified, ""))
	assert.Equal(t, models.KindOther, bar.Children[2].Kind())

	dev := bar.Children[3]
	assert.Equal(t, models.KindFolder, dev.Kind())
	require.Len(t, dev.Children, 1)
	assert.NotContains(t, dev.Children[0].Fields, models.FieldName)

	other := doc.Root(models.RootOther)
	require.NotNil(t, other)
	assert.Equal(t, "unfiled", other.StringOr(models.FieldName, ""))
	require.Len(t, other.Children, 1)
	menu := other.Children[0]
	assert.Equal(t, "menu", menu.StringOr(models.FieldName, ""))
	require.Len(t, menu.Children, 1)
	assert.Equal(t, "https://mozilla.org/", menu.Children[0].StringOr(models.FieldURL, ""))

	synced := doc.Root(models.RootSynced)
	require.NotNil(t, synced)
	require.Len(t, synced.Children, 1)
	assert.Equal(t, "Phone", synced.Children[0].StringOr(models.FieldName, ""))
}

func TestNewSQLiteRepository_NotPlaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.sqlite")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = NewSQLiteRepository(path)
	assert.ErrorIs(t, err, ErrNotPlacesDB)
}

func TestNewSQLiteRepository_NotSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.sqlite")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a database file, just text"), 0o600))

	_, err := NewSQLiteRepository(path)
	assert.Error(t, err)
}

func TestPlacesDSN(t *testing.T) {
	assert.Equal(t, "file:/tmp/a%3fb%23c%25d/places.sqlite?mode=ro&immutable=1", placesDSN("/tmp/a?b#c%d/places.sqlite"))
}
