package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"redux/internal/diag"
	"redux/internal/source"
)

type palette struct {
	err, warn, info, code, path, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan, color.Bold),
		code:  color.New(color.Faint),
		path:  color.New(color.Bold),
		caret: color.New(color.FgGreen, color.Bold),
		note:  color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprintf("%s:%d:%d", displayPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		)
		writeContext(w, fs, d.Primary, opts.Width, p)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				displayPath(nf, opts.PathMode, opts.BaseDir), ns.Line, ns.Col, n.Msg)
		}
	}
}

// writeContext prints the line of sp and an underline sized in terminal
// cells, so wide runes and tabs keep the caret aligned.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span, width int, p palette) {
	start, end := fs.Resolve(sp)
	raw := fs.Get(sp.File).GetLine(start.Line)
	if raw == "" {
		return
	}
	from := min(int(start.Col)-1, len(raw))
	to := len(raw)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(raw))
	}
	to = max(to, from)

	line := expandTabs(raw)
	if width > 0 && runewidth.StringWidth(line) > width {
		line = runewidth.Truncate(line, width, "…")
	}
	pad := runewidth.StringWidth(expandTabs(raw[:from]))
	n := max(runewidth.StringWidth(expandTabs(raw[from:to])), 1)
	if width > 0 && pad+n > width {
		n = max(width-pad, 1)
	}
	fmt.Fprintf(w, "  %s\n", line)
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), p.caret.Sprint("^"+strings.Repeat("~", n-1)))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
