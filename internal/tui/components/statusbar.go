package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	message   string
	keyBuffer string
	taps      int
	clicks    int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetMessage sets the transient message; "" restores the hint.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// Message returns the transient message.
func (s *StatusBar) Message() string {
	return s.message
}

// SetKeyBuffer updates the key buffer display.
func (s *StatusBar) SetKeyBuffer(buf string) {
	s.keyBuffer = buf
}

// CountTap records a tap on a region.
func (s *StatusBar) CountTap() {
	s.taps++
}

// CountClick records a click that reached the background.
func (s *StatusBar) CountClick() {
	s.clicks++
}

// Counts returns the taps and background clicks seen so far.
func (s *StatusBar) Counts() (taps, clicks int) {
	return s.taps, s.clicks
}

// Render renders the status bar.
func (s *StatusBar) Render(width int) string {
	leftText := "h: help"
	if s.keyBuffer != "" {
		leftText = s.keyBuffer
	}
	if s.message != "" {
		leftText += "  |  " + s.message
	}

	leftStyled := lipgloss.NewStyle().Faint(true).Render(leftText)
	right := lipgloss.NewStyle().Faint(true).
		Render(fmt.Sprintf("taps: %d  clicks: %d", s.taps, s.clicks))

	// Ensure right part is always visible
	rightW := lipgloss.Width(right)
	if rightW >= width {
		return ansi.Truncate(right, width, "…")
	}

	avail := width - rightW - 1
	leftRendered := leftStyled
	if lipgloss.Width(leftRendered) > avail {
		leftRendered = ansi.Truncate(leftRendered, avail, "…")
	} else if lipgloss.Width(leftRendered) < avail {
		leftRendered = leftRendered + strings.Repeat(" ", avail-lipgloss.Width(leftRendered))
	}

	return leftRendered + " " + right
}
