package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colours of the demo chrome. Label colours come from the
// configuration, not from here.
type Theme struct {
	AccentColor  string
	MutedColor   string
	DividerColor string
	CardColor    string
}

func darkTheme() Theme {
	return Theme{
		AccentColor:  "212",
		MutedColor:   "245",
		DividerColor: "240",
		CardColor:    "238",
	}
}

func lightTheme() Theme {
	return Theme{
		AccentColor:  "162",
		MutedColor:   "242",
		DividerColor: "244",
		CardColor:    "250",
	}
}

// DefaultTheme picks the theme matching the terminal background.
func DefaultTheme() Theme {
	if lipgloss.HasDarkBackground() {
		return darkTheme()
	}
	return lightTheme()
}

func (t Theme) DividerText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.DividerColor)).Render(s)
}

func (t Theme) AccentText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.AccentColor)).Bold(true).Render(s)
}

func (t Theme) MutedText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.MutedColor)).Render(s)
}

// Card frames a label; the focused card gets the accent border.
func (t Theme) Card(title, body string, focused bool) string {
	border := t.CardColor
	if focused {
		border = t.AccentColor
	}
	head := t.MutedText(title)
	if focused {
		head = t.AccentText(title)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, head, box)
}
