package fade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/hilabel/internal/richtext"
)

func TestFrames_EndsOnTarget(t *testing.T) {
	from := richtext.Plain("tap me").WithForeground(richtext.NewRange(0, 3), "#000000")
	to := from.WithForeground(richtext.NewRange(0, 3), "#ffffff").WithBackground(richtext.NewRange(0, 3), "#0000ff")

	frames := Frames(from, to, 4)
	require.Len(t, frames, 4)
	require.True(t, frames[3].Equal(to))

	mid := frames[1].AttrsAt(0).Foreground
	require.NotEqual(t, richtext.Color("#000000"), mid)
	require.NotEqual(t, richtext.Color("#ffffff"), mid)

	require.Equal(t, richtext.Color(""), frames[0].AttrsAt(0).Background, "unset colour switches halfway")
	require.Equal(t, richtext.Color("#0000ff"), frames[2].AttrsAt(0).Background)
	require.Equal(t, richtext.Attrs{}, frames[1].AttrsAt(4), "untouched runes stay untouched")
}

func TestFrames_Degenerate(t *testing.T) {
	a := richtext.Plain("abc")
	b := richtext.Plain("abd")
	require.Len(t, Frames(a, b, 5), 1)
	require.Len(t, Frames(a, a, 5), 1)
	require.Len(t, Frames(a, a.WithForeground(richtext.NewRange(0, 1), "1"), 1), 1)
}

func TestBlend(t *testing.T) {
	require.Equal(t, richtext.Color("#000000"), Blend("#000000", "#ffffff", 0))
	require.Equal(t, richtext.Color("#ffffff"), Blend("#000000", "#ffffff", 1))
	require.Equal(t, richtext.Color("9"), Blend("9", "9", 0.3))
	require.NotEqual(t, richtext.Color(""), Blend("9", "#00ff00", 0.5), "ANSI colours convert to RGB")
	require.Equal(t, richtext.Color("nope"), Blend("nope", "#00ff00", 0.2))
}

func TestInterval(t *testing.T) {
	require.Equal(t, 25*time.Millisecond, Interval(6))
	require.Equal(t, Duration, Interval(0))
}
