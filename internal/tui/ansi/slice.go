package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ClipToWidth truncates string to at most w visual columns without ellipsis.
func ClipToWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return ansi.Truncate(s, w, "")
}

// PadExact pads or clips s to exactly w columns (ANSI-aware).
func PadExact(s string, w int) string {
	vw := VisualWidth(s)
	if vw > w {
		return ClipToWidth(s, w)
	}
	if vw == w {
		return s
	}
	return s + strings.Repeat(" ", w-vw)
}
