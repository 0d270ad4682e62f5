package highlight

import (
	"github.com/interpretive-systems/hilabel/internal/region"
	"github.com/interpretive-systems/hilabel/internal/richtext"
)

// Style holds the container defaults used by regions without their own
// colours. Unset colours leave the text as it is.
type Style struct {
	Color           richtext.Color
	HighlightColor  richtext.Color
	BackgroundColor richtext.Color
}

// NormalColor is the foreground a region shows at rest.
func (s Style) NormalColor(rg region.Region) richtext.Color {
	return pick(rg.NormalColor, s.Color)
}

// HighlightColors are the foreground and background a region shows while
// pressed.
func (s Style) HighlightColors(rg region.Region) (fg, bg richtext.Color) {
	return pick(rg.HighlightColor, s.HighlightColor), pick(rg.BackgroundColor, s.BackgroundColor)
}

func pick(own, fallback richtext.Color) richtext.Color {
	if own.IsSet() {
		return own
	}
	return fallback
}

// ApplyContainerColor sets c as the foreground over every region, or clears
// the foreground there when c is unset. No other attribute changes.
func ApplyContainerColor(t richtext.Text, regions []region.Region, c richtext.Color) richtext.Text {
	for _, rg := range regions {
		if c.IsSet() {
			t = t.WithForeground(rg.Range, c)
		} else {
			t = t.WithoutForeground(rg.Range)
		}
	}
	return t
}

// Highlighted returns captured, the text of rg at rest, in its pressed look.
func (s Style) Highlighted(captured richtext.Text, rg region.Region) richtext.Text {
	fg, bg := s.HighlightColors(rg)
	all := richtext.NewRange(0, captured.Len())
	if fg.IsSet() {
		captured = captured.WithForeground(all, fg)
	}
	if bg.IsSet() {
		captured = captured.WithBackground(all, bg)
	}
	return captured
}
