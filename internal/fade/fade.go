// Package fade interpolates between two renderings of the same text so that
// a label can cross-fade into and out of its highlighted state.
package fade

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/interpretive-systems/hilabel/internal/richtext"
)

const (
	// Duration is the length of one cross-fade.
	Duration = 150 * time.Millisecond
	// Steps is the default number of frames in a cross-fade.
	Steps = 6
)

// Interval returns the delay between frames of an n-step fade.
func Interval(steps int) time.Duration {
	if steps <= 0 {
		return Duration
	}
	return Duration / time.Duration(steps)
}

// Frames returns steps texts blending from into to. The last frame is always
// to itself. Colours are blended in Lab space; a colour fading to or from
// unset switches over halfway. Texts with different runes do not blend and
// yield the single frame to.
func Frames(from, to richtext.Text, steps int) []richtext.Text {
	if steps <= 1 || !from.SameRunes(to) || from.Equal(to) {
		return []richtext.Text{to}
	}
	frames := make([]richtext.Text, 0, steps)
	for k := 1; k < steps; k++ {
		t := float64(k) / float64(steps)
		frames = append(frames, to.MapAttrs(func(i int, a richtext.Attrs) richtext.Attrs {
			b := from.AttrsAt(i)
			a.Foreground = Blend(b.Foreground, a.Foreground, t)
			a.Background = Blend(b.Background, a.Background, t)
			return a
		}))
	}
	return append(frames, to)
}

// Blend mixes colour a towards b by t in [0, 1].
func Blend(a, b richtext.Color, t float64) richtext.Color {
	if a == b {
		return a
	}
	ca, okA := toRGB(a)
	cb, okB := toRGB(b)
	if !okA || !okB {
		if t < 0.5 {
			return a
		}
		return b
	}
	return richtext.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

func toRGB(c richtext.Color) (colorful.Color, bool) {
	if !c.IsSet() {
		return colorful.Color{}, false
	}
	tc := termenv.TrueColor.Color(string(c))
	if tc == nil {
		return colorful.Color{}, false
	}
	return termenv.ConvertToRGB(tc), true
}
