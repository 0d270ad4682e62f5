package layout

import (
	"strings"

	"github.com/interpretive-systems/hilabel/internal/richtext"
)

// Render draws the layout of t as exactly Bounds() rows of exactly Width
// columns. Each cell takes the attributes of the rune it starts at; the
// ellipsis takes those of the cell before it.
func (l *Layout) Render(t richtext.Text) []string {
	w, h := l.Bounds()
	rows := make([]string, h)
	blank := strings.Repeat(" ", max(w, 0))
	for i := range rows {
		rows[i] = blank
	}
	for i, line := range l.Lines {
		row := l.Top + i
		if row < 0 || row >= h {
			continue
		}
		rows[row] = renderLine(line, t, w)
	}
	return rows
}

func renderLine(line Line, t richtext.Text, w int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", line.X))
	used := line.X

	var seg strings.Builder
	var cur richtext.Attrs
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		if cur == (richtext.Attrs{}) {
			b.WriteString(seg.String())
		} else {
			b.WriteString(cur.Style().Render(seg.String()))
		}
		seg.Reset()
	}

	var prev richtext.Attrs
	for _, c := range line.Cells {
		if used+c.Width > w {
			break
		}
		attrs := prev
		if c.Index >= 0 {
			attrs = t.AttrsAt(c.Index)
		}
		if attrs != cur {
			flush()
			cur = attrs
		}
		seg.WriteString(c.Text)
		used += c.Width
		prev = attrs
	}
	flush()
	if used < w {
		b.WriteString(strings.Repeat(" ", w-used))
	}
	return b.String()
}
