// Package terminal handles human-facing status output and TTY detection.
package terminal

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// IsTerminal returns true if stdin is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(syscall.Stdin))
}

// StdoutIsTerminal returns true if stdout is attached to a terminal.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(syscall.Stdout))
}

// Printer writes status lines for the operator. Styling is applied only
// when the destination is a terminal; subprocess output is never routed
// through here.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	styles Styles
	styled bool
}

// NewPrinter returns a Printer on stdout/stderr, styled when stdout is a
// terminal.
func NewPrinter() *Printer {
	return &Printer{
		out:    os.Stdout,
		errOut: os.Stderr,
		styles: DefaultStyles(),
		styled: StdoutIsTerminal(),
	}
}

// NewPrinterTo returns a Printer on the given writers. Used by tests.
func NewPrinterTo(out, errOut io.Writer, styled bool) *Printer {
	return &Printer{out: out, errOut: errOut, styles: DefaultStyles(), styled: styled}
}

func (p *Printer) line(w io.Writer, style lipgloss.Style, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if p.styled {
		text = style.Render(text)
	}
	fmt.Fprintln(w, text)
}

// Headerf prints a bold header line.
func (p *Printer) Headerf(format string, args ...any) {
	p.line(p.out, p.styles.Header, format, args...)
}

// Statusf prints a progress line for a pipeline stage.
func (p *Printer) Statusf(format string, args ...any) {
	p.line(p.out, p.styles.Success, format, args...)
}

// Infof prints a detail line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, p.styles.Info, format, args...)
}

// Warnf prints a warning to stderr.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.errOut, p.styles.Warning, format, args...)
}

// Errorf prints an error to stderr.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.errOut, p.styles.Error, format, args...)
}

// Dimf prints a de-emphasized line.
func (p *Printer) Dimf(format string, args ...any) {
	p.line(p.out, p.styles.Dim, format, args...)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}
