package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dastanaron/bookmarks-csv/internal/models"
)

func testRecords() []models.Record {
	return []models.Record{
		{Name: "Go", URL: "https://go.dev/", Path: "Bar/Bar", DateAdded: "2023-11-14 22:13:20"},
		{Name: "Packages", URL: "https://pkg.go.dev/", Path: "Bar/Bar/Dev"},
		{Name: "News", URL: "https://news.example/", Path: "Other/Other", Extra: map[string]any{"tags": "daily"}},
	}
}

func TestNewApp_FillsTable(t *testing.T) {
	a := NewApp(testRecords())

	require.Equal(t, 4, a.table.GetRowCount())
	assert.Equal(t, "Name", a.table.GetCell(0, 0).Text)
	assert.Equal(t, "Go", a.table.GetCell(1, 0).Text)
	assert.Equal(t, "https://go.dev/", a.table.GetCell(1, 1).Text)
	assert.Equal(t, "Bar/Bar", a.table.GetCell(1, 2).Text)
	assert.Equal(t, "2023-11-14 22:13:20", a.table.GetCell(1, 3).Text)
	assert.Contains(t, a.status.GetText(true), "3 of 3 bookmarks")
	assert.Contains(t, a.detail.GetText(true), "https://go.dev/")
}

func TestApplyFilter(t *testing.T) {
	a := NewApp(testRecords())

	a.applyFilter("DEV")
	assert.Equal(t, []int{0, 1}, a.visible)
	assert.Equal(t, 3, a.table.GetRowCount())

	a.applyFilter("other/")
	assert.Equal(t, []int{2}, a.visible)
	assert.Equal(t, "News", a.table.GetCell(1, 0).Text)
	assert.Contains(t, a.detail.GetText(true), "daily")

	a.applyFilter("nothing matches")
	assert.Empty(t, a.visible)
	assert.Equal(t, 1, a.table.GetRowCount())
	assert.Empty(t, a.detail.GetText(true))
	assert.Nil(t, a.selected(1))
}

func TestGlobalInput_EnterOpensSelectedURL(t *testing.T) {
	a := NewApp(testRecords())
	var opened []string
	a.openURL = func(url string) { opened = append(opened, url) }

	a.table.Select(2, 0)
	ev := a.globalInput(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	assert.Nil(t, ev)
	assert.Equal(t, []string{"https://pkg.go.dev/"}, opened)
}

func TestGlobalInput_SearchModePassesKeys(t *testing.T) {
	a := NewApp(testRecords())

	ev := a.globalInput(tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone))
	assert.Nil(t, ev)
	assert.Equal(t, uint8(modeSearch), a.mode)

	key := tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	assert.Same(t, key, a.globalInput(key))

	a.onSearchDone(tcell.KeyEnter)
	assert.Equal(t, uint8(modeNormal), a.mode)
}

func TestOpenCommand(t *testing.T) {
	const link = "https://x.example/?a=1&calc"
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", link}},
		{"darwin", "open", []string{link}},
		{"linux", "xdg-open", []string{link}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := openCommand(tt.goos, link)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOpenCommand_RejectsOtherSchemes(t *testing.T) {
	for _, link := range []string{"javascript:alert(1)", "C:\\Windows\\calc.exe", "ms-settings:", "", "%zz"} {
		_, _, err := openCommand("windows", link)
		assert.Error(t, err, link)
	}

	_, _, err := openCommand("linux", "FILE:///tmp/a.html")
	assert.NoError(t, err)
}
