package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

// Renderer writes diagnostics to a destination, colorizing when the
// destination is a terminal.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer builds a renderer for w. Color is enabled only when w is a
// real TTY.
func NewRenderer(w io.Writer) *Renderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{out: w, color: color}
}

// Render writes one diagnostic.
func (r *Renderer) Render(d Diagnostic) {
	head := fmt.Sprintf("[%s] %s", d.Code, d.Message)
	if d.Pos.Line > 0 {
		head += fmt.Sprintf(" (line %d, column %d)", d.Pos.Line, d.Pos.Column)
	}
	if r.color {
		head = ansiBold + ansiRed + head + ansiReset
	}
	fmt.Fprintln(r.out, head)
	if d.Dump != "" {
		dump := d.Dump
		if r.color {
			lines := strings.Split(dump, "\n")
			for i, line := range lines {
				lines[i] = ansiDim + line + ansiReset
			}
			dump = strings.Join(lines, "\n")
		}
		fmt.Fprintln(r.out, dump)
	}
}
