// Package layout lays attributed text out on a terminal cell grid and maps
// cells back to rune offsets. Labels render through it and the layout hit
// tester queries it, so what is drawn and what is hit always agree.
package layout

import (
	"fmt"
	"strings"
)

// BreakMode selects how text that does not fit the width is handled.
type BreakMode int

const (
	WordWrap BreakMode = iota
	CharWrap
	Clip
	TruncateHead
	TruncateTail
	TruncateMiddle
)

var breakModeNames = map[BreakMode]string{
	WordWrap:       "word",
	CharWrap:       "char",
	Clip:           "clip",
	TruncateHead:   "head",
	TruncateTail:   "tail",
	TruncateMiddle: "middle",
}

func (m BreakMode) String() string {
	if s, ok := breakModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("BreakMode(%d)", int(m))
}

// Truncates reports whether m places an ellipsis on overflow.
func (m BreakMode) Truncates() bool {
	return m == TruncateHead || m == TruncateTail || m == TruncateMiddle
}

// ParseBreakMode parses the names produced by BreakMode.String.
func ParseBreakMode(s string) (BreakMode, error) {
	for m, name := range breakModeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return WordWrap, fmt.Errorf("unknown break mode %q", s)
}

// Align positions each line horizontally.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlign parses "left", "center" or "right".
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(s) {
	case "left", "":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("unknown alignment %q", s)
}

// Point is a cell position in a host's local coordinates.
type Point struct {
	X, Y int
}

// Params describe the box text is laid out in. A Height of zero sizes the
// box to its content; MaxLines of zero means no line limit.
type Params struct {
	Width    int
	Height   int
	MaxLines int
	Mode     BreakMode
	Align    Align
}

// lineCap returns the number of lines that can be shown, 0 for unbounded.
func (p Params) lineCap() int {
	limit := p.MaxLines
	if limit < 0 {
		limit = 0
	}
	if p.Height > 0 && (limit == 0 || p.Height < limit) {
		limit = p.Height
	}
	return limit
}
