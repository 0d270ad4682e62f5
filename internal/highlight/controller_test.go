package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/hilabel/internal/richtext"
)

// "tap here or there": "here" covers columns 4-7, "there" 12-16.
func pressable(t *testing.T) (*fakeHost, *Highlight, *[]Tap) {
	t.Helper()
	host := newFakeHost("tap here or there")
	var taps []Tap
	h := Attach(host,
		WithStyle(Style{Color: "#00ff00", HighlightColor: "#ffffff"}),
		WithTap(func(tp Tap) { taps = append(taps, tp) }),
	)
	h.SetByText("here", 0, BackgroundColor("#0000ff"), Tag(1))
	h.SetByText("there", 0, Tag(2))
	return host, h, &taps
}

func TestPress_HighlightsOnlyTheRegion(t *testing.T) {
	host, h, _ := pressable(t)
	before := host.Text()

	require.True(t, h.HandlePointer(down(5, "s1")))
	require.Equal(t, Highlighting, h.State())

	txt := host.Text()
	require.Equal(t, richtext.Color("#ffffff"), txt.AttrsAt(4).Foreground)
	require.Equal(t, richtext.Color("#0000ff"), txt.AttrsAt(7).Background)
	for _, i := range []int{0, 3, 8, 12, 16} {
		require.Equal(t, before.AttrsAt(i), txt.AttrsAt(i), "rune %d", i)
	}
	require.Len(t, h.Regions(), 2)
	require.Equal(t, []StreamID{"s1"}, host.claimed)
}

func TestPress_DragOffAndBackThenRelease(t *testing.T) {
	host, h, taps := pressable(t)
	before := host.Text()

	require.True(t, h.HandlePointer(down(5, "s1")))
	require.True(t, h.HandlePointer(move(0, "s1")))
	require.Equal(t, Armed, h.State())
	require.True(t, before.Equal(host.Text()), "dragging off restores the region")

	require.True(t, h.HandlePointer(move(13, "s1")))
	require.Equal(t, Armed, h.State(), "another region does not highlight")

	require.True(t, h.HandlePointer(move(6, "s1")))
	require.Equal(t, Highlighting, h.State())

	require.True(t, h.HandlePointer(up(6, "s1")))
	require.Equal(t, Idle, h.State())
	require.True(t, before.Equal(host.Text()))

	require.Len(t, *taps, 1)
	tap := (*taps)[0]
	require.Equal(t, "here", tap.Text.String())
	require.Equal(t, richtext.Color("#00ff00"), tap.Text.AttrsAt(0).Foreground, "tap carries the styled text at rest")
	require.Equal(t, richtext.NewRange(4, 4), tap.Range)
	require.Equal(t, 1, tap.Tag)
	require.Same(t, host, tap.Host.(*fakeHost))
	require.Equal(t, []StreamID{"s1"}, host.released)
}

func TestPress_ReleaseElsewhereDoesNotTap(t *testing.T) {
	host, h, taps := pressable(t)
	before := host.Text()

	h.HandlePointer(down(5, "s1"))
	require.True(t, h.HandlePointer(up(14, "s1")))
	require.Empty(t, *taps)
	require.Equal(t, Idle, h.State())
	require.True(t, before.Equal(host.Text()))
}

func TestPress_CancelRestoresExactly(t *testing.T) {
	host, h, taps := pressable(t)
	before := host.Text()

	h.HandlePointer(down(13, "s1"))
	require.Equal(t, Highlighting, h.State())
	require.False(t, before.Equal(host.Text()))

	require.True(t, h.HandlePointer(cancel("s1")))
	require.Empty(t, *taps)
	require.Equal(t, Idle, h.State())
	require.True(t, before.Equal(host.Text()))
	require.Equal(t, []StreamID{"s1"}, host.released)
}

func TestPress_OutsideRegionsPassesThrough(t *testing.T) {
	host, h, taps := pressable(t)
	require.False(t, h.HandlePointer(down(1, "s1")))
	require.False(t, h.HandlePointer(move(5, "s1")))
	require.False(t, h.HandlePointer(up(5, "s1")))
	require.Empty(t, *taps)
	require.Empty(t, host.claimed)
}

func TestPress_RepeatedDownOnSameStreamIsIgnored(t *testing.T) {
	host, h, _ := pressable(t)
	require.True(t, h.HandlePointer(down(5, "s1")))
	writes := host.writes
	require.True(t, h.HandlePointer(down(5, "s1")))
	require.True(t, h.HandlePointer(down(14, "s1")))
	require.Equal(t, writes, host.writes)
	require.Equal(t, Highlighting, h.State())
	require.Len(t, host.claimed, 1)
}

func TestPress_NewStreamSupersedes(t *testing.T) {
	host, h, taps := pressable(t)
	before := host.Text()

	h.HandlePointer(down(5, "s1"))
	require.True(t, h.HandlePointer(down(14, "s2")))
	require.Equal(t, []StreamID{"s1"}, host.released)
	require.Equal(t, before.AttrsAt(5), host.Text().AttrsAt(5), "first region reverted")
	require.Equal(t, richtext.Color("#ffffff"), host.Text().AttrsAt(14).Foreground)

	require.False(t, h.HandlePointer(up(5, "s1")), "stale stream")
	require.True(t, h.HandlePointer(up(14, "s2")))
	require.Len(t, *taps, 1)
	require.Equal(t, 2, (*taps)[0].Tag)
	require.True(t, before.Equal(host.Text()))
}

func TestPress_ShowIsIdempotent(t *testing.T) {
	host, h, _ := pressable(t)
	h.HandlePointer(down(5, "s1"))
	writes := host.writes
	h.HandlePointer(move(6, "s1"))
	h.HandlePointer(move(7, "s1"))
	require.Equal(t, writes, host.writes)

	h.HandlePointer(move(0, "s1"))
	h.HandlePointer(move(1, "s1"))
	require.Equal(t, writes+1, host.writes)
}

func TestPress_ExternalChangeAbortsSession(t *testing.T) {
	host, h, taps := pressable(t)
	h.HandlePointer(down(5, "s1"))

	replaced := richtext.Plain("something else entirely")
	host.SetText(replaced)
	require.Equal(t, Idle, h.State())
	require.Equal(t, []StreamID{"s1"}, host.released)

	require.False(t, h.HandlePointer(up(5, "s1")))
	require.Empty(t, *taps)
	require.True(t, replaced.Equal(host.Text()))
}

func TestPress_TransitionsFade(t *testing.T) {
	base := newFakeHost("press me")
	host := fadingHost{base}
	h := Attach(host, WithStyle(Style{HighlightColor: "1"}))
	h.SetByText("press", 0)
	require.Zero(t, base.fades, "region colouring is not animated")

	h.HandlePointer(down(0, "s"))
	h.HandlePointer(up(0, "s"))
	require.Equal(t, 2, base.fades)
	require.Len(t, h.Regions(), 1)
}

func TestPress_UnsetHighlightColoursKeepRestLook(t *testing.T) {
	host := newFakeHost("plain region")
	h := Attach(host)
	h.SetByText("region", 0, Color("2"))
	before := host.Text()

	h.HandlePointer(down(7, ""))
	require.Equal(t, Highlighting, h.State())
	require.True(t, before.Equal(host.Text()))
	h.HandlePointer(up(7, ""))
	require.Equal(t, Idle, h.State())
}

func TestPhaseAndStateNames(t *testing.T) {
	require.Equal(t, "cancel", PointerCancel.String())
	require.Equal(t, "armed", Armed.String())
	require.Equal(t, "idle", Idle.String())
}
