// Package textmetrics measures text in terminal cells for the layout engine.
package textmetrics

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/reviewlist/app/layout"
)

// Cells measures text in terminal cells: one unit per column, one per line.
// The zero value is ready to use.
type Cells struct{}

var _ layout.TextMetrics = Cells{}

// Measure wraps t at maxWidth columns. A maxWidth of zero or less disables
// wrapping; a maxHeight of zero or less leaves the height uncapped.
func (c Cells) Measure(t layout.Text, maxWidth, maxHeight float64) layout.Size {
	if c.IsEmpty(t) {
		return layout.Size{}
	}
	lines := Wrap(t.Content, int(maxWidth))
	w := 0
	for _, ln := range lines {
		w = max(w, ansi.StringWidth(ln))
	}
	h := len(lines)
	if maxHeight > 0 {
		h = min(h, int(maxHeight))
	}
	return layout.Size{W: float64(w), H: float64(h)}
}

// LineHeight is always one cell.
func (Cells) LineHeight(layout.Text) float64 { return 1 }

// IsEmpty reports whether t has no visible content.
func (Cells) IsEmpty(t layout.Text) bool {
	return strings.TrimSpace(ansi.Strip(t.Content)) == ""
}

// Wrap splits s into display lines no wider than width. Words longer than
// width are broken. A width of zero or less only splits on newlines.
func Wrap(s string, width int) []string {
	s = strings.TrimRight(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if width > 0 {
		s = ansi.Wrap(s, width, " -")
	}
	return strings.Split(s, "\n")
}

// Clip returns at most maxLines lines of s wrapped at width. A maxLines of
// zero or less returns every line.
func Clip(s string, width, maxLines int) []string {
	lines := Wrap(s, width)
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
