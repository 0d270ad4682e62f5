package search

import (
	"github.com/interpretive-systems/hilabel/internal/region"
	"github.com/interpretive-systems/hilabel/internal/richtext"
	"github.com/interpretive-systems/hilabel/internal/tui/ansi"
)

const (
	// Match: black on bright white
	matchFg richtext.Color = "0"
	matchBg richtext.Color = "15"
)

// Preview renders the searched text on one line with every occurrence the
// query would register marked.
func (e *Engine) Preview(width int) string {
	t := richtext.Plain(e.content)
	for _, r := range e.ranges() {
		t = t.WithForeground(r, matchFg).WithBackground(r, matchBg)
	}
	return ansi.PadExact(flatten(t).Render(), width)
}

// ranges resolves each occurrence exactly as region registration will.
func (e *Engine) ranges() []richtext.Range {
	out := make([]richtext.Range, 0, e.matches)
	for i := 0; i < e.matches; i++ {
		r, ok := region.Occurrence(e.content, e.query, i)
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out
}

// flatten replaces line breaks with spaces so the preview stays one line.
func flatten(t richtext.Text) richtext.Text {
	var b richtext.Builder
	for i, r := range []rune(t.String()) {
		if r == '\n' || r == '\t' {
			r = ' '
		}
		b.Write(string(r), t.AttrsAt(i))
	}
	return b.Text()
}
