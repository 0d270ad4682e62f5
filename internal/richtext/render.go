package richtext

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style converts a to a lipgloss style.
func (a Attrs) Style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if a.Foreground.IsSet() {
		s = s.Foreground(lipgloss.Color(a.Foreground))
	}
	if a.Background.IsSet() {
		s = s.Background(lipgloss.Color(a.Background))
	}
	if a.Bold {
		s = s.Bold(true)
	}
	if a.Italic {
		s = s.Italic(true)
	}
	if a.Underline {
		s = s.Underline(true)
	}
	if a.Faint {
		s = s.Faint(true)
	}
	return s
}

// Render returns t as a terminal string, one styled segment per run.
func (t Text) Render() string {
	var b strings.Builder
	for _, run := range t.Runs() {
		if run.Attrs == (Attrs{}) {
			b.WriteString(run.Text)
			continue
		}
		b.WriteString(run.Attrs.Style().Render(run.Text))
	}
	return b.String()
}
