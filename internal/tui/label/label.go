// Package label is a Bubble Tea text label that can carry tappable highlight
// regions. It renders through the layout engine, so the cells it draws are
// the cells hit testing resolves.
package label

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"

	"github.com/interpretive-systems/hilabel/internal/fade"
	"github.com/interpretive-systems/hilabel/internal/highlight"
	"github.com/interpretive-systems/hilabel/internal/hittest"
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/log"
	"github.com/interpretive-systems/hilabel/internal/richtext"
	"github.com/interpretive-systems/hilabel/internal/surface"
)

// TapMsg reports a tap on one of the label's regions.
type TapMsg struct {
	Label string
	Tap   highlight.Tap
}

// ClickMsg reports a click the highlight layer did not claim.
type ClickMsg struct {
	Label string
	Point layout.Point
}

type frameMsg struct {
	label string
	seq   int
}

// Model is a label. It must be used through a pointer: the highlight layer
// keeps a reference to it as its host.
type Model struct {
	id     string
	text   richtext.Text
	params layout.Params
	cache  *layout.Cache

	strategy   hittest.Strategy
	pool       *surface.Pool
	hl         *highlight.Highlight
	fadeSteps  int
	observers  map[int]func(richtext.Text)
	observerID int

	// display is what View draws; it differs from text only mid-fade.
	display  richtext.Text
	frames   []richtext.Text
	frameSeq int
	needTick bool

	stream  highlight.StreamID
	claimed highlight.StreamID
	taps    []highlight.Tap
}

// Option configures New.
type Option func(*Model)

// WithStrategy selects the hit-test strategy.
func WithStrategy(s hittest.Strategy) Option {
	return func(m *Model) { m.strategy = s }
}

// WithPool sets the surface pool used by the pixel strategy.
func WithPool(p *surface.Pool) Option {
	return func(m *Model) { m.pool = p }
}

// WithCache shares a layout cache between labels.
func WithCache(c *layout.Cache) Option {
	return func(m *Model) { m.cache = c }
}

// WithFadeSteps sets the number of cross-fade frames; 0 or 1 disables
// fading.
func WithFadeSteps(n int) Option {
	return func(m *Model) { m.fadeSteps = n }
}

// New returns a label showing t laid out with p.
func New(t richtext.Text, p layout.Params, opts ...Option) *Model {
	m := &Model{
		id:        "label-" + uuid.NewString(),
		text:      t,
		display:   t,
		params:    p,
		fadeSteps: fade.Steps,
		observers: make(map[int]func(richtext.Text)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cache == nil {
		m.cache = layout.NewCache()
	}
	return m
}

// ID returns the label's zone id.
func (m *Model) ID() string { return m.id }

// Highlight returns the label's highlight layer, attaching it on first use.
func (m *Model) Highlight() *highlight.Highlight {
	if m.hl == nil {
		m.hl = highlight.Attach(m,
			highlight.WithTester(m.newTester()),
			highlight.WithTap(func(t highlight.Tap) { m.taps = append(m.taps, t) }),
		)
	}
	return m.hl
}

func (m *Model) newTester() hittest.Tester {
	return hittest.New(m.strategy, hittest.Options{Cache: m.cache, Pool: m.pool, Holder: m.id})
}

// Strategy returns the hit-test strategy in use.
func (m *Model) Strategy() hittest.Strategy { return m.strategy }

// SetStrategy switches hit testing to s. Regions are kept.
func (m *Model) SetStrategy(s hittest.Strategy) {
	if s == m.strategy {
		return
	}
	m.strategy = s
	if m.hl == nil {
		return
	}
	regions := m.hl.Regions()
	style := m.hl.Style()
	m.hl.Remove()
	m.hl = highlight.Attach(m,
		highlight.WithTester(m.newTester()),
		highlight.WithStyle(style),
		highlight.WithTap(func(t highlight.Tap) { m.taps = append(m.taps, t) }),
	)
	for _, rg := range regions {
		m.hl.Set(rg.Range,
			highlight.Color(rg.NormalColor),
			highlight.HighlightColor(rg.HighlightColor),
			highlight.BackgroundColor(rg.BackgroundColor),
			highlight.Tag(rg.Tag),
		)
	}
}

// Close detaches the highlight layer and releases shared resources.
func (m *Model) Close() {
	if m.hl != nil {
		m.hl.Remove()
		m.hl = nil
	}
}

// Text implements highlight.Host.
func (m *Model) Text() richtext.Text { return m.text }

// SetText implements highlight.Host. It also serves callers replacing the
// label's content, which discards its regions.
func (m *Model) SetText(t richtext.Text) {
	m.text = t
	m.display = t
	m.frames = nil
	m.frameSeq++
	m.notify()
}

// FadeText implements highlight.Fader.
func (m *Model) FadeText(t richtext.Text) {
	frames := fade.Frames(m.display, t, m.fadeSteps)
	m.text = t
	m.frameSeq++
	m.display, m.frames = frames[0], frames[1:]
	m.needTick = len(m.frames) > 0
	m.notify()
}

func (m *Model) notify() {
	for _, fn := range m.observers {
		fn(m.text)
	}
}

// Params implements highlight.Host.
func (m *Model) Params() layout.Params { return m.params }

// SetParams changes how the label lays its text out.
func (m *Model) SetParams(p layout.Params) { m.params = p }

// SetSize changes the label's box.
func (m *Model) SetSize(w, h int) {
	m.params.Width, m.params.Height = w, h
}

// OnContentChanged implements highlight.Host.
func (m *Model) OnContentChanged(fn func(richtext.Text)) func() {
	id := m.observerID
	m.observerID++
	m.observers[id] = fn
	return func() { delete(m.observers, id) }
}

// ClaimPointer implements highlight.Host.
func (m *Model) ClaimPointer(id highlight.StreamID) { m.claimed = id }

// ReleasePointer implements highlight.Host.
func (m *Model) ReleasePointer(id highlight.StreamID) {
	if m.claimed == id {
		m.claimed = ""
	}
}

// Claimed reports whether the highlight layer owns the current press.
func (m *Model) Claimed() bool { return m.claimed != "" }

// Fading reports whether a cross-fade is in progress.
func (m *Model) Fading() bool { return len(m.frames) > 0 }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))
	case tea.KeyMsg:
		if msg.String() == "esc" {
			m.cancel()
		}
	case tea.BlurMsg:
		m.cancel()
	case frameMsg:
		if msg.label == m.id && msg.seq == m.frameSeq && len(m.frames) > 0 {
			m.display, m.frames = m.frames[0], m.frames[1:]
			m.needTick = len(m.frames) > 0
		}
	}
	if m.needTick {
		m.needTick = false
		cmds = append(cmds, m.tick())
	}
	for _, t := range m.taps {
		tap := TapMsg{Label: m.id, Tap: t}
		cmds = append(cmds, func() tea.Msg { return tap })
	}
	m.taps = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) tick() tea.Cmd {
	id, seq := m.id, m.frameSeq
	return tea.Tick(fade.Interval(m.fadeSteps), func(time.Time) tea.Msg {
		return frameMsg{label: id, seq: seq}
	})
}

// handleMouse turns mouse events into pointer events. A press starts a new
// stream; motion and release belong to it until it ends.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	z := zone.Get(m.id)
	if z == nil || z.IsZero() {
		return nil
	}
	p := layout.Point{X: msg.X - z.StartX, Y: msg.Y - z.StartY}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !z.InBounds(msg) {
			return nil
		}
		m.stream = highlight.StreamID(uuid.NewString())
		m.pointer(highlight.PointerDown, p)
	case msg.Action == tea.MouseActionMotion && m.stream != "":
		m.pointer(highlight.PointerMove, p)
	case msg.Action == tea.MouseActionRelease && m.stream != "":
		claimed := m.claimed == m.stream
		m.pointer(highlight.PointerUp, p)
		m.stream = ""
		if !claimed && z.InBounds(msg) {
			id := m.id
			return func() tea.Msg { return ClickMsg{Label: id, Point: p} }
		}
	}
	return nil
}

func (m *Model) pointer(phase highlight.Phase, p layout.Point) {
	if m.hl == nil {
		return
	}
	consumed := m.hl.HandlePointer(highlight.PointerEvent{Phase: phase, Point: p, Stream: m.stream})
	log.Debug(log.CatUI, "pointer", "label", m.id, "phase", phase, "x", p.X, "y", p.Y, "consumed", consumed)
}

func (m *Model) cancel() {
	if m.stream == "" {
		return
	}
	m.pointer(highlight.PointerCancel, layout.Point{})
	m.stream = ""
}

// View draws the label as exactly its box, marked as a mouse zone.
func (m *Model) View() string {
	l := m.cache.Compute(m.display.String(), m.params)
	return zone.Mark(m.id, strings.Join(l.Render(m.display), "\n"))
}
