package ansi

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// WrapProse word-wraps a paragraph to the given width.
func WrapProse(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	return strings.Split(wordwrap.String(s, width), "\n")
}

// WrapLines wraps multiple paragraphs.
func WrapLines(lines []string, width int) []string {
	result := make([]string, 0, len(lines)*2)
	for _, line := range lines {
		result = append(result, WrapProse(line, width)...)
	}
	return result
}
