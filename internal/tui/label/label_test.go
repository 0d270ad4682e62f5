package label

import (
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/hilabel/internal/highlight"
	"github.com/interpretive-systems/hilabel/internal/hittest"
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/richtext"
	"github.com/interpretive-systems/hilabel/internal/surface"
)

// TestMain initializes the global zone manager for all tests in this package.
func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// register renders m and waits for its zone to be known.
func register(t *testing.T, m *Model) *zone.ZoneInfo {
	t.Helper()
	var z *zone.ZoneInfo
	for retries := 0; retries < 10; retries++ {
		_ = zone.Scan(m.View())
		z = zone.Get(m.ID())
		if z != nil && !z.IsZero() {
			break
		}
		// Zone registration is asynchronous in bubblezone.
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z)
	require.False(t, z.IsZero())
	return z
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: action}
}

func newTestLabel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	m := New(richtext.Plain("tap here now"), layout.Params{Width: 12, Height: 1}, append([]Option{WithFadeSteps(0)}, opts...)...)
	m.Highlight().SetByText("here", 0, highlight.HighlightColor("1"), highlight.Tag(5))
	t.Cleanup(m.Close)
	return m
}

func TestView_RendersBox(t *testing.T) {
	m := New(richtext.Plain("hello world foo"), layout.Params{Width: 11, Height: 3})
	view := ansi.Strip(zone.Scan(m.View()))
	require.Equal(t, "hello world\nfoo        \n           ", view)
}

func TestPress_TapsRegion(t *testing.T) {
	m := newTestLabel(t)
	z := register(t, m)

	_, _ = m.Update(mouse(z.StartX+5, z.StartY, tea.MouseActionPress))
	require.True(t, m.Claimed())
	require.Equal(t, highlight.Highlighting, m.Highlight().State())
	require.Equal(t, richtext.Color("1"), m.display.AttrsAt(5).Foreground)

	_, cmd := m.Update(mouse(z.StartX+6, z.StartY, tea.MouseActionRelease))
	require.False(t, m.Claimed())
	require.Equal(t, richtext.Color(""), m.Text().AttrsAt(5).Foreground)

	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	tap, ok := msgs[0].(TapMsg)
	require.True(t, ok)
	require.Equal(t, m.ID(), tap.Label)
	require.Equal(t, 5, tap.Tap.Tag)
	require.Equal(t, "here", tap.Tap.Text.String())
}

func TestPress_OffRegionIsPlainClick(t *testing.T) {
	m := newTestLabel(t)
	z := register(t, m)

	_, _ = m.Update(mouse(z.StartX, z.StartY, tea.MouseActionPress))
	require.False(t, m.Claimed())
	_, cmd := m.Update(mouse(z.StartX, z.StartY, tea.MouseActionRelease))

	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	click, ok := msgs[0].(ClickMsg)
	require.True(t, ok)
	require.Equal(t, layout.Point{}, click.Point)
}

func TestPress_DragAwayAndEscape(t *testing.T) {
	m := newTestLabel(t)
	z := register(t, m)
	before := m.Text()

	_, _ = m.Update(mouse(z.StartX+4, z.StartY, tea.MouseActionPress))
	_, _ = m.Update(mouse(z.StartX+40, z.StartY+3, tea.MouseActionMotion))
	require.Equal(t, highlight.Armed, m.Highlight().State())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Empty(t, collect(cmd))
	require.Equal(t, highlight.Idle, m.Highlight().State())
	require.False(t, m.Claimed())
	require.True(t, before.Equal(m.Text()))
}

func TestSetText_ClearsRegions(t *testing.T) {
	m := newTestLabel(t)
	m.SetText(richtext.Plain("tap here later"))
	require.Empty(t, m.Highlight().Regions())
}

func TestFade_AdvancesFrames(t *testing.T) {
	m := New(richtext.Plain("fade"), layout.Params{Width: 4}, WithFadeSteps(3))
	target := m.Text().WithForeground(richtext.NewRange(0, 4), "#ffffff")

	m.FadeText(target)
	require.True(t, target.Equal(m.Text()), "logical text changes at once")
	require.True(t, m.Fading())
	require.False(t, target.Equal(m.display))

	_, cmd := m.Update(frameMsg{label: m.ID(), seq: m.frameSeq})
	require.NotNil(t, cmd)
	_, _ = m.Update(frameMsg{label: m.ID(), seq: m.frameSeq - 1})
	require.True(t, m.Fading(), "stale frame ignored")
	_, _ = m.Update(frameMsg{label: m.ID(), seq: m.frameSeq})
	require.False(t, m.Fading())
	require.True(t, target.Equal(m.display))
}

func TestSetStrategy_KeepsRegionsAndReleasesSurface(t *testing.T) {
	pool := surface.NewPool()
	m := newTestLabel(t, WithPool(pool), WithStrategy(hittest.StrategyPixel))

	_, ok := m.Highlight().Locate(layout.Point{X: 5})
	require.True(t, ok)
	require.True(t, pool.Allocated())

	m.SetStrategy(hittest.StrategyLayout)
	require.False(t, pool.Allocated())
	regions := m.Highlight().Regions()
	require.Len(t, regions, 1)
	require.Equal(t, 5, regions[0].Tag)

	rg, ok := m.Highlight().Locate(layout.Point{X: 5})
	require.True(t, ok)
	require.Equal(t, richtext.NewRange(4, 4), rg.Range)
}
