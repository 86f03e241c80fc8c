package parser

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dastanaron/bookmarks-csv/internal/models"
)

func openTestdata(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestParseJSON_ChromiumFile(t *testing.T) {
	doc, err := NewParser().Parse(FormatChromium, openTestdata(t, "Bookmarks"))
	require.NoError(t, err)

	require.Len(t, doc.Roots, 3)
	bar := doc.Root(models.RootBookmarkBar)
	require.NotNil(t, bar)
	assert.Equal(t, models.KindFolder, bar.Kind())
	assert.Equal(t, "Bookmarks bar", bar.StringOr(models.FieldName, ""))
	require.Len(t, bar.Children, 3)

	goNode := bar.Children[0]
	assert.Equal(t, models.KindURL, goNode.Kind())
	assert.Equal(t, "https://go.dev/", goNode.StringOr(models.FieldURL, ""))
	assert.Equal(t, map[string]any{"Thumbnail": ""}, goNode.Fields["meta_info"])
	assert.NotContains(t, goNode.Fields, models.FieldChildren)

	assert.Equal(t, models.KindFolder, bar.Children[1].Kind())
	assert.Equal(t, models.KindOther, bar.Children[2].Kind())

	other := doc.Roots[models.RootOther]
	require.NotNil(t, other)
	assert.NotNil(t, other.Children)
	assert.Empty(t, other.Children)
}

func TestParseJSON_KeepsNumberLiterals(t *testing.T) {
	doc, err := NewParser().ParseJSON(strings.NewReader(
		`{"roots": {"other": {"type": "folder", "children": [{"type": "url", "id": 12345678901234567890, "date_added": 13344473600000000}]}}}`))
	require.NoError(t, err)

	entry := doc.Roots[models.RootOther].Children[0]
	assert.Equal(t, json.Number("12345678901234567890"), entry.Fields["id"])
	assert.Equal(t, "13344473600000000", entry.StringOr(models.FieldDateAdded, ""))
}

func TestParseJSON_SkipsNonObjectChildren(t *testing.T) {
	doc, err := NewParser().ParseJSON(strings.NewReader(
		`{"roots": {"other": {"type": "folder", "children": ["x", 1, null, {"type": "url"}]}, "synced": {"type": "folder", "children": "oops"}}}`))
	require.NoError(t, err)

	assert.Len(t, doc.Roots[models.RootOther].Children, 1)
	assert.Empty(t, doc.Roots[models.RootSynced].Children)
}

func TestParseJSON_ByteOrderMark(t *testing.T) {
	doc, err := NewParser().ParseJSON(strings.NewReader("\xEF\xBB\xBF{\"roots\": {}}"))
	require.NoError(t, err)
	assert.Empty(t, doc.Roots)
}

func TestParseJSON_Invalid(t *testing.T) {
	for _, input := range []string{``, `{`, `[]`, `"roots"`, `{"roots": {}} trailing`} {
		_, err := NewParser().ParseJSON(strings.NewReader(input))
		assert.Error(t, err, input)
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := NewParser().Parse("xml", strings.NewReader(""))
	assert.ErrorContains(t, err, "unsupported format")
}

func TestParseBookmarksHTML(t *testing.T) {
	doc, err := NewParser().Parse(FormatHTML, openTestdata(t, "bookmarks.html"))
	require.NoError(t, err)

	bar := doc.Root(models.RootBookmarkBar)
	require.NotNil(t, bar)
	assert.Equal(t, "Bookmarks bar", bar.StringOr(models.FieldName, ""))
	assert.Equal(t, "13344473600000000", bar.StringOr(models.FieldDateAdded, ""))
	require.Len(t, bar.Children, 3)

	goLink := bar.Children[0]
	assert.Equal(t, models.KindURL, goLink.Kind())
	assert.Equal(t, "Go", goLink.StringOr(models.FieldName, ""))
	assert.Equal(t, "https://go.dev/", goLink.StringOr(models.FieldURL, ""))
	assert.Equal(t, "13344473600000000", goLink.StringOr(models.FieldDateAdded, ""))
	assert.Equal(t, "data:image/png;base64,AA", goLink.Fields["icon"])

	dev := bar.Children[1]
	assert.Equal(t, models.KindFolder, dev.Kind())
	require.Len(t, dev.Children, 1)
	assert.Equal(t, "Packages", dev.Children[0].StringOr(models.FieldName, ""))
	assert.NotContains(t, dev.Children[0].Fields, models.FieldDateAdded)

	example := bar.Children[2]
	assert.Equal(t, "Example & Co", example.StringOr(models.FieldName, ""))
	assert.Equal(t, "a,b", example.Fields["tags"])

	other := doc.Root(models.RootOther)
	require.NotNil(t, other)
	assert.Equal(t, OtherFolderName, other.StringOr(models.FieldName, ""))
	require.Len(t, other.Children, 2)
	assert.Equal(t, models.KindFolder, other.Children[0].Kind())
	assert.Empty(t, other.Children[0].Children)
	assert.Equal(t, "Top", other.Children[1].StringOr(models.FieldName, ""))
	assert.Equal(t, "soon", other.Children[1].StringOr(models.FieldDateAdded, ""))

	assert.Nil(t, doc.Root(models.RootSynced))
}

func TestParseBookmarksHTML_NoBookmarks(t *testing.T) {
	doc, err := NewParser().ParseBookmarksHTML(strings.NewReader("<html><body><p>nothing</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, doc.Roots)
}
