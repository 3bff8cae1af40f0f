package reviews

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/reviewlist/app/layout"
)

// canvas composes styled text blocks at cell positions. Blocks must not
// overlap horizontally on the same line.
type canvas struct {
	width int
	lines [][]segment
}

type segment struct {
	x, w int
	text string
}

func newCanvas(width, height int) *canvas {
	return &canvas{width: max(width, 0), lines: make([][]segment, max(height, 0))}
}

func cells(v float64) int { return int(math.Round(v)) }

// put draws block into r, one block line per canvas line. Lines beyond the
// rect height are dropped; each line is clipped or padded to the rect width.
func (c *canvas) put(r layout.Rect, block []string) {
	x, y, w, h := cells(r.X), cells(r.Y), cells(r.W), cells(r.H)
	if w <= 0 || h <= 0 {
		return
	}
	for i := 0; i < h && i < len(block); i++ {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		c.lines[row] = append(c.lines[row], segment{x: x, w: w, text: block[i]})
	}
}

func (c *canvas) render() []string {
	out := make([]string, len(c.lines))
	for i, segs := range c.lines {
		slices.SortFunc(segs, func(a, b segment) int { return a.x - b.x })
		var b strings.Builder
		col := 0
		for _, s := range segs {
			if s.x >= c.width {
				break
			}
			if s.x < col {
				continue
			}
			if s.x > col {
				b.WriteString(strings.Repeat(" ", s.x-col))
				col = s.x
			}
			w := min(s.w, c.width-col)
			text := s.text
			if tw := ansi.StringWidth(text); tw > w {
				text = ansi.Truncate(text, w, "")
			} else if tw < w {
				text += strings.Repeat(" ", w-tw)
			}
			b.WriteString(text)
			col += w
		}
		if col < c.width {
			b.WriteString(strings.Repeat(" ", c.width-col))
		}
		out[i] = b.String()
	}
	return out
}
