package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/hilabel/internal/tui/ansi"
)

// RenderOverlay renders the search overlay UI.
func (e *Engine) RenderOverlay(width int, dividerColor string) []string {
	if !e.active || width <= 0 {
		return nil
	}

	lines := make([]string, 0, 4)

	divider := lipgloss.NewStyle().
		Foreground(lipgloss.Color(dividerColor)).
		Render(strings.Repeat("─", width))
	lines = append(lines, divider)

	lines = append(lines, ansi.PadExact(e.InputView(), width))
	lines = append(lines, e.Preview(width))

	status := "Type a substring (esc: close)"
	if e.query != "" {
		if e.matches == 0 {
			status = "No matches (esc: close)"
		} else {
			status = fmt.Sprintf("%d occurrence(s)  (enter: make tappable, esc: close)", e.matches)
		}
	}

	statusStyled := lipgloss.NewStyle().Faint(true).Render(status)
	lines = append(lines, ansi.PadExact(statusStyled, width))

	return lines
}
