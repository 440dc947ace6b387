package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/agentstation/credits/internal/cmd/emoji"
)

// Printer writes human-facing status lines.
type Printer struct {
	w       io.Writer
	success *color.Color
	warning *color.Color
	info    *color.Color
	muted   *color.Color
}

// NewPrinter creates a Printer. noColor forces plain output; otherwise
// color follows the terminal detection in fatih/color.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w:       w,
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		info:    color.New(color.FgCyan),
		muted:   color.New(color.FgHiBlack),
	}
	if noColor {
		for _, c := range []*color.Color{p.success, p.warning, p.info, p.muted} {
			c.DisableColor()
		}
	}
	return p
}

// Success prints a completed step.
func (p *Printer) Success(format string, args ...any) {
	p.line(p.success, emoji.Success, format, args...)
}

// Warning prints something the user should look at.
func (p *Printer) Warning(format string, args ...any) {
	p.line(p.warning, emoji.Warning, format, args...)
}

// Info prints context.
func (p *Printer) Info(format string, args ...any) {
	p.line(p.info, emoji.Info, format, args...)
}

// Detail prints an indented, muted line under the previous status.
func (p *Printer) Detail(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "  %s\n", p.muted.Sprintf(format, args...))
}

func (p *Printer) line(c *color.Color, symbol, format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", c.Sprint(symbol), fmt.Sprintf(format, args...))
}
