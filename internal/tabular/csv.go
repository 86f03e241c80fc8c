// Package tabular writes flattened bookmark records as CSV.
//
// The header is the sorted union of every column seen in any record, so
// records with different extra fields share one table; missing cells are empty.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/dastanaron/bookmarks-csv/internal/models"
)

// Header returns the sorted union of column names across records
func Header(records []models.Record) []string {
	seen := map[string]struct{}{}
	for i := range records {
		for _, key := range records[i].Keys() {
			seen[key] = struct{}{}
		}
	}

	header := make([]string, 0, len(seen))
	for key := range seen {
		header = append(header, key)
	}
	sort.Strings(header)
	return header
}

// Write writes a header row followed by one row per record, in order.
// Rows end with CRLF; line breaks inside values are written unchanged.
func Write(w io.Writer, records []models.Record) error {
	header := Header(records)
	rw := newRowWriter(w)
	if err := rw.write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i := range records {
		for col, key := range header {
			row[col], _ = records[i].Get(key)
		}
		if err := rw.write(row); err != nil {
			return err
		}
	}
	return nil
}

// rowWriter encodes one row at a time and replaces the trailing LF with CRLF.
// csv.Writer.UseCRLF would also rewrite breaks inside quoted values.
type rowWriter struct {
	w   io.Writer
	buf bytes.Buffer
	cw  *csv.Writer
}

func newRowWriter(w io.Writer) *rowWriter {
	rw := &rowWriter{w: w}
	rw.cw = csv.NewWriter(&rw.buf)
	return rw
}

func (rw *rowWriter) write(row []string) error {
	rw.buf.Reset()
	if err := rw.cw.Write(row); err != nil {
		return err
	}
	rw.cw.Flush()
	if err := rw.cw.Error(); err != nil {
		return err
	}

	line := bytes.TrimSuffix(rw.buf.Bytes(), []byte("\n"))
	if _, err := rw.w.Write(line); err != nil {
		return err
	}
	_, err := io.WriteString(rw.w, "\r\n")
	return err
}

// Exporter writes records to a CSV file
type Exporter struct {
	logger *slog.Logger
}

// NewExporter creates a new exporter
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// Export writes records to path. An empty record list is logged and
// leaves the destination untouched.
func (e *Exporter) Export(records []models.Record, path string) (err error) {
	if len(records) == 0 {
		e.logger.Warn("no bookmarks to export")
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrOutputWrite, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", models.ErrOutputWrite, cerr)
		}
	}()

	if err := Write(file, records); err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrOutputWrite, path, err)
	}

	e.logger.Debug("csv written", slog.String("path", path), slog.Int("rows", len(records)))
	return nil
}
