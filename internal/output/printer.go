package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Printer writes human-readable status lines.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	styles styles
}

type styles struct {
	success lipgloss.Style
	warning lipgloss.Style
}

// NewPrinter creates a new Printer. Colors are enabled only when isTTY is true.
func NewPrinter(w io.Writer, isTTY bool) *Printer {
	s := styles{
		success: lipgloss.NewStyle(),
		warning: lipgloss.NewStyle(),
	}
	if isTTY {
		s.success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green
		s.warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
	}
	return &Printer{w: w, errW: w, styles: s}
}

// WithStderr sets a separate writer for warnings.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// Success prints a success line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.success.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a warning line to the error writer.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.errW, "%s: %s\n", p.styles.warning.Render("Warning"), fmt.Sprintf(format, args...))
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
