package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"climb/internal/diag"
	"climb/internal/source"
)

const tabWidth = 4

type palette struct {
	err, note, path, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.note, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	if sev == diag.SevError {
		return p.err
	}
	return p.note
}

// Pretty renders every diagnostic of bag (sort it first) as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   3 | 2 * (1 + 3
//	     |           ^
//
// followed by its notes when opts.ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	if _, err := fmt.Fprintf(w, "%s: %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode), start.Line, start.Col),
		pal.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()),
		d.Message,
	); err != nil {
		return err
	}
	if err := writeSnippet(w, f, start, end, opts.Context, pal); err != nil {
		return err
	}
	if !opts.ShowNotes {
		return nil
	}
	for _, note := range d.Notes {
		nf := fs.Get(note.Span.File)
		ns, ne := fs.Resolve(note.Span)
		if _, err := fmt.Fprintf(w, "  %s %s: %s\n",
			pal.note.Sprint("note:"),
			pal.path.Sprintf("%s:%d:%d", formatPath(nf, opts.PathMode), ns.Line, ns.Col),
			note.Msg,
		); err != nil {
			return err
		}
		if err := writeSnippet(w, nf, ns, ne, 0, pal); err != nil {
			return err
		}
	}
	return nil
}

// writeSnippet prints the primary line with context and an underline.
// Multi-line spans are underlined to the end of their first line.
func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, context uint8, pal palette) error {
	first := start.Line
	if uint32(context) < first {
		first -= uint32(context)
	} else {
		first = 1
	}
	gutterWidth := len(strconv.FormatUint(uint64(start.Line), 10))

	for ln := first; ln <= start.Line; ln++ {
		line := expandTabs(f.GetLine(ln))
		if _, err := fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), line); err != nil {
			return err
		}
	}

	raw := f.GetLine(start.Line)
	from := clampCol(raw, start.Col)
	to := len(raw)
	if end.Line == start.Line {
		to = clampCol(raw, end.Col)
	}
	pad := runewidth.StringWidth(expandTabs(raw[:from]))
	width := runewidth.StringWidth(expandTabs(raw[from:max(from, to)]))
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	_, err := fmt.Fprintf(w, "%s %s%s\n",
		pal.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", pad),
		pal.caret.Sprint(underline),
	)
	return err
}

// clampCol converts a 1-based column into a byte index within line.
func clampCol(line string, col uint32) int {
	idx := int(col) - 1
	if idx < 0 {
		return 0
	}
	if idx > len(line) {
		return len(line)
	}
	return idx
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
