package ui

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dastanaron/bookmarks-csv/internal/models"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	modeNormal = 1
	modeSearch = 2
)

// columns shown in the table, details show every field
var columns = []struct {
	title string
	key   string
}{
	{"Name", models.FieldName},
	{"URL", models.FieldURL},
	{"Path", models.FieldPath},
	{"Added", models.FieldDateAdded},
}

// App is a read-only terminal preview of flattened bookmarks
type App struct {
	app     *tview.Application
	table   *tview.Table
	detail  *tview.TextView
	search  *tview.InputField
	status  *tview.TextView
	mode    uint8
	records []models.Record // all records
	visible []int           // indexes into records matching the search
	openURL func(url string)
}

// NewApp creates a new preview over records
func NewApp(records []models.Record) *App {
	a := &App{
		app:     tview.NewApplication(),
		table:   tview.NewTable(),
		detail:  tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		search:  tview.NewInputField().SetLabel("Search: "),
		status:  tview.NewTextView().SetDynamicColors(true),
		mode:    modeNormal,
		records: records,
		openURL: openURL,
	}
	a.applyFilter("")
	return a
}

// Run starts the application
func (a *App) Run() error {
	a.table.SetBorder(true).SetTitle("Bookmarks")
	a.detail.SetBorder(true).SetTitle("Details")
	a.table.SetFixed(1, 0).SetSelectable(true, false)

	cols := tview.NewFlex().
		AddItem(a.table, 0, 3, true).
		AddItem(a.detail, 0, 1, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.search, 1, 0, false).
		AddItem(cols, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.search.SetChangedFunc(a.applyFilter)
	a.search.SetDoneFunc(a.onSearchDone)
	a.table.SetSelectionChangedFunc(func(row, _ int) { a.showDetails(row) })

	a.app.SetRoot(main, true)
	a.app.SetInputCapture(a.globalInput)
	a.app.SetFocus(a.table)
	return a.app.Run()
}

// applyFilter keeps the records whose name, url or path contain text
func (a *App) applyFilter(text string) {
	query := strings.ToLower(strings.TrimSpace(text))
	a.visible = a.visible[:0]
	for i := range a.records {
		r := &a.records[i]
		if query == "" ||
			strings.Contains(strings.ToLower(r.Name), query) ||
			strings.Contains(strings.ToLower(r.URL), query) ||
			strings.Contains(strings.ToLower(r.Path), query) {
			a.visible = append(a.visible, i)
		}
	}
	a.fillTable()
}

func (a *App) fillTable() {
	a.table.Clear()
	for col, c := range columns {
		a.table.SetCell(0, col, tview.NewTableCell(c.title).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
	for row, idx := range a.visible {
		r := &a.records[idx]
		for col, c := range columns {
			value, _ := r.Get(c.key)
			a.table.SetCell(row+1, col, tview.NewTableCell(tview.Escape(value)).SetMaxWidth(60))
		}
	}
	if len(a.visible) > 0 {
		a.table.Select(1, 0)
	}
	a.showDetails(1)
	a.updateStatus()
}

// selected returns the record shown on a table row
func (a *App) selected(row int) *models.Record {
	i := row - 1
	if i < 0 || i >= len(a.visible) {
		return nil
	}
	return &a.records[a.visible[i]]
}

func (a *App) showDetails(row int) {
	r := a.selected(row)
	if r == nil {
		a.detail.SetText("")
		return
	}

	var sb strings.Builder
	for _, key := range r.Keys() {
		value, _ := r.Get(key)
		fmt.Fprintf(&sb, "[::b]%s:[::-]\n%s\n\n", tview.Escape(key), tview.Escape(value))
	}
	a.detail.SetText(strings.TrimRight(sb.String(), "\n"))
}

func (a *App) updateStatus() {
	a.status.SetText(fmt.Sprintf(
		"[yellow]%d[-] of %d bookmarks | [green]Enter[-]: open | [green]/[-]: search | [green]q[-]: quit",
		len(a.visible), len(a.records)))
}

func (a *App) setMode(m uint8) {
	a.mode = m
	switch m {
	case modeSearch:
		a.app.SetFocus(a.search)
	case modeNormal:
		a.app.SetFocus(a.table)
	}
}

func (a *App) onSearchDone(key tcell.Key) {
	switch key {
	case tcell.KeyEscape:
		a.search.SetText("")
		a.applyFilter("")
	}
	a.setMode(modeNormal)
}

func (a *App) globalInput(event *tcell.EventKey) *tcell.EventKey {
	if a.mode == modeSearch {
		return event
	}

	switch event.Key() {
	case tcell.KeyEscape:
		a.app.Stop()
		return nil
	case tcell.KeyEnter:
		row, _ := a.table.GetSelection()
		if r := a.selected(row); r != nil && r.URL != "" {
			a.openURL(r.URL)
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			a.app.Stop()
			return nil
		case '/':
			a.setMode(modeSearch)
			return nil
		}
	}
	return event
}

func openURL(rawURL string) {
	name, args, err := openCommand(runtime.GOOS, rawURL)
	if err != nil {
		return
	}
	_ = exec.Command(name, args...).Start()
}

// openCommand builds the platform command that opens rawURL in the default handler.
// Only http, https and file URLs are accepted.
func openCommand(goos, rawURL string) (string, []string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, err
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "file":
	default:
		return "", nil, fmt.Errorf("refusing to open %q: unsupported scheme", rawURL)
	}

	switch goos {
	case "windows":
		// rundll32 takes the URL as a plain argument, no shell parsing
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}, nil
	case "darwin":
		return "open", []string{rawURL}, nil
	default:
		return "xdg-open", []string{rawURL}, nil
	}
}
