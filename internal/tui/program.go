// Package tui is the interactive hilabel showcase: a few labels with
// tappable regions, a region list, a substring box and runtime toggles.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/interpretive-systems/hilabel/internal/config"
	"github.com/interpretive-systems/hilabel/internal/highlight"
	"github.com/interpretive-systems/hilabel/internal/hittest"
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/log"
	"github.com/interpretive-systems/hilabel/internal/richtext"
	"github.com/interpretive-systems/hilabel/internal/tui/ansi"
	"github.com/interpretive-systems/hilabel/internal/tui/components"
	"github.com/interpretive-systems/hilabel/internal/tui/label"
	"github.com/interpretive-systems/hilabel/internal/tui/search"
	"github.com/interpretive-systems/hilabel/internal/watcher"
)

var (
	breakModes = []layout.BreakMode{
		layout.WordWrap, layout.CharWrap, layout.Clip,
		layout.TruncateHead, layout.TruncateTail, layout.TruncateMiddle,
	}
	highlightPalette = []richtext.Color{"#ffffff", "#ffd700", "#ff5f87", "#00d7af", ""}
)

// cardChrome is the horizontal space a card adds around its label.
const cardChrome = 4

// Program is the root Bubble Tea model of the showcase.
type Program struct {
	state      *State
	layout     *Layout
	keyHandler *KeyHandler
	watch      <-chan string
}

// NewProgram builds the showcase. watch, when not nil, delivers external
// replacements for the configured label's text.
func NewProgram(state *State, watch <-chan string) *Program {
	p := &Program{
		state:      state,
		layout:     NewLayout(),
		keyHandler: NewKeyHandler(),
		watch:      watch,
	}
	p.refreshRegionList()
	return p
}

// Run instantiates and runs the Bubble Tea program.
func Run(cfg config.Config, configPath string) error {
	text, err := cfg.ResolveText()
	if err != nil {
		return err
	}

	var watch <-chan string
	if cfg.TextFile != "" {
		w, err := watcher.New(watcher.DefaultConfig(cfg.TextFile))
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
		if watch, err = w.Start(); err != nil {
			return err
		}
	}

	zone.NewGlobal()
	state := NewState(cfg, configPath, text, nil)
	defer state.Close()

	p := tea.NewProgram(NewProgram(state, watch), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// State exposes the program state.
func (m *Program) State() *State {
	return m.state
}

func (m *Program) Init() tea.Cmd {
	return waitForText(m.watch)
}

func (m *Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.refreshRegionList()
	return m, cmd
}

func (m *Program) update(msg tea.Msg) tea.Cmd {
	s := m.state
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.Width, s.Height = msg.Width, msg.Height
		m.layout.SetSize(msg.Width, msg.Height)
		m.fitCards()
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			for i, c := range s.Cards {
				if z := zone.Get(c.Label.ID()); z != nil && z.InBounds(msg) {
					s.Focus = i
				}
			}
		}
		return m.broadcast(msg)

	case label.TapMsg:
		c, ok := s.CardFor(msg.Label)
		if !ok {
			return nil
		}
		s.LastTap = msg.Tap.Text.String()
		s.StatusBar.CountTap()
		log.Info(log.CatUI, "tap", "card", c.Title, "tag", msg.Tap.Tag, "range", msg.Tap.Range)
		return m.flash(fmt.Sprintf("tapped %q (tag %d) in %s", s.LastTap, msg.Tap.Tag, c.Title))

	case label.ClickMsg:
		s.StatusBar.CountClick()
		return nil

	case fileTextMsg:
		configured := s.Cards[0]
		configured.seed = richtext.Plain(msg.text)
		configured.Label.SetText(configured.seed)
		// The file replaced the text, which dropped every region;
		// register the configured ones again on the new content.
		s.Config.Apply(configured.Label.Highlight())
		return tea.Batch(m.flash("text file changed"), waitForText(m.watch))

	case copiedMsg:
		if msg.err != nil {
			return m.flash("copy failed: " + msg.err.Error())
		}
		return m.flash(fmt.Sprintf("copied %q", msg.text))

	case prefsSavedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "saving display settings", msg.err)
			return m.flash("saving settings failed: " + msg.err.Error())
		}
		return nil

	case clearStatusMsg:
		if msg.seq == s.StatusSeq {
			s.StatusBar.SetMessage("")
		}
		return nil
	}

	// Fade frames and anything else belong to the labels.
	return m.broadcast(msg)
}

func (m *Program) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.state
	if s.SearchEngine.IsActive() {
		res, cmd := s.SearchEngine.HandleKey(msg)
		if res == search.Submitted {
			subs := s.SearchEngine.Keys()
			s.Focused().Label.Highlight().SetManyByText(subs, highlight.Many{})
			return tea.Batch(cmd, m.flash(fmt.Sprintf("registered %d region(s) for %q", len(subs), s.SearchEngine.Query())))
		}
		return cmd
	}

	if msg.String() == "esc" {
		if s.ShowHelp {
			s.ShowHelp = false
			return nil
		}
		return m.broadcast(msg)
	}

	action, count := m.keyHandler.Handle(msg)
	s.StatusBar.SetKeyBuffer(m.keyHandler.KeyBuffer())
	focused := s.Focused()

	switch action {
	case ActionQuit:
		return tea.Quit
	case ActionToggleHelp:
		s.ShowHelp = !s.ShowHelp
	case ActionOpenSearch:
		s.SearchEngine.SetContent(focused.Label.Text().String())
		s.SearchEngine.Activate()
	case ActionToggleStrategy:
		next := hittest.StrategyPixel
		if s.Strategy == hittest.StrategyPixel {
			next = hittest.StrategyLayout
		}
		s.Strategy = next
		for _, c := range s.Cards {
			c.Label.SetStrategy(next)
		}
		s.Config.Strategy = next.String()
		return tea.Batch(m.flash("hit testing: "+next.String()), m.persist())
	case ActionCycleMode:
		p := focused.Label.Params()
		p.Mode = nextMode(p.Mode)
		focused.Label.SetParams(p)
		return tea.Batch(m.flash("break mode: "+p.Mode.String()), m.persistIfMain(focused, p))
	case ActionSetLines:
		p := focused.Label.Params()
		if count >= 0 {
			p.MaxLines = count
		} else {
			p.MaxLines = (p.MaxLines + 1) % 4
		}
		focused.Label.SetParams(p)
		return tea.Batch(m.flash(fmt.Sprintf("line limit: %d", p.MaxLines)), m.persistIfMain(focused, p))
	case ActionCycleColor:
		h := focused.Label.Highlight()
		c := nextColor(h.Style().HighlightColor)
		h.SetHighlightColor(c)
		focused.style.HighlightColor = c
		name := string(c)
		if name == "" {
			name = "unset"
		}
		return m.flash("highlight colour: " + name)
	case ActionRemoveRegions:
		focused.Label.Close()
		return m.flash("regions removed from " + focused.Title)
	case ActionExternalEdit:
		focused.Label.SetText(focused.Label.Text().Append(richtext.Plain(" (edited)")))
		return m.flash("text edited: regions dropped")
	case ActionRestore:
		focused.Seed()
		return m.flash("restored " + focused.Title)
	case ActionFocusNext:
		s.Focus = (s.Focus + 1) % len(s.Cards)
	case ActionFocusPrev:
		s.Focus = (s.Focus - 1 + len(s.Cards)) % len(s.Cards)
	case ActionCopyTap:
		if e := s.RegionList.SelectedEntry(); e != nil {
			return copyText(e.Text)
		}
		if s.LastTap != "" {
			return copyText(s.LastTap)
		}
	case ActionMoveUp:
		s.RegionList.MoveSelection(-1)
	case ActionMoveDown:
		s.RegionList.MoveSelection(1)
	}
	return nil
}

// broadcast hands msg to every label.
func (m *Program) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.state.Cards))
	for _, c := range m.state.Cards {
		_, cmd := c.Label.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Program) flash(text string) tea.Cmd {
	s := m.state
	s.StatusSeq++
	s.StatusBar.SetMessage(text)
	return expireStatus(s.StatusSeq)
}

func (m *Program) persist() tea.Cmd {
	return saveDisplay(m.state.ConfigPath, m.state.Config.Display())
}

// persistIfMain saves p when it belongs to the configured label.
func (m *Program) persistIfMain(c *Card, p layout.Params) tea.Cmd {
	if c != m.state.Cards[0] {
		return nil
	}
	m.state.Config.BreakMode = p.Mode.String()
	m.state.Config.Lines = p.MaxLines
	return m.persist()
}

// fitCards narrows labels that no longer fit the label pane.
func (m *Program) fitCards() {
	avail := m.layout.RightWidth() - cardChrome
	for _, c := range m.state.Cards {
		w := c.Width
		if w > avail {
			w = avail
		}
		if w < 1 {
			w = 1
		}
		p := c.Label.Params()
		c.Label.SetSize(w, p.Height)
	}
}

func (m *Program) refreshRegionList() {
	l := m.state.Focused().Label
	text := l.Text()
	var entries []components.RegionEntry
	for _, rg := range l.Highlight().Regions() {
		sub, _ := text.Slice(rg.Range)
		entries = append(entries, components.RegionEntry{Region: rg, Text: sub.String()})
	}
	m.state.RegionList.SetEntries(entries)
}

func nextMode(cur layout.BreakMode) layout.BreakMode {
	for i, mode := range breakModes {
		if mode == cur {
			return breakModes[(i+1)%len(breakModes)]
		}
	}
	return layout.WordWrap
}

func nextColor(cur richtext.Color) richtext.Color {
	for i, c := range highlightPalette {
		if c == cur {
			return highlightPalette[(i+1)%len(highlightPalette)]
		}
	}
	return highlightPalette[0]
}

func (m *Program) View() string {
	s := m.state
	if s.Width == 0 || s.Height == 0 {
		return "Loading..."
	}

	overlay := s.SearchEngine.RenderOverlay(s.Width, s.Theme.DividerColor)
	contentHeight := m.layout.ContentHeight(len(overlay))

	left := append([]string{s.Theme.AccentText("Regions")}, s.RegionList.Render(contentHeight-1)...)
	right := m.rightLines()
	if s.ShowHelp {
		right = m.helpLines(m.layout.RightWidth())
	}

	frame := m.layout.RenderFrame(
		"hilabel | "+s.Focused().Title,
		m.topRightTitle(),
		left, right, overlay,
		s.StatusBar.Render(s.Width),
		s.Theme,
	)
	return zone.Scan(frame)
}

func (m *Program) topRightTitle() string {
	p := m.state.Focused().Label.Params()
	return m.state.Theme.MutedText(fmt.Sprintf("hit: %s  mode: %s  lines: %d", m.state.Strategy, p.Mode, p.MaxLines))
}

func (m *Program) rightLines() []string {
	cards := make([]string, 0, len(m.state.Cards))
	for i, c := range m.state.Cards {
		cards = append(cards, m.state.Theme.Card(c.Title, c.Label.View(), i == m.state.Focus))
	}
	return strings.Split(lipgloss.JoinVertical(lipgloss.Left, cards...), "\n")
}

func (m *Program) helpLines(width int) []string {
	intro := []string{
		"Press and hold on a coloured region: it lights up while the pointer stays on it. " +
			"Drag off and the highlight goes away; drag back and it returns. Releasing on the region taps it.",
		"Clicks anywhere else count as background clicks.",
	}
	lines := []string{lipgloss.NewStyle().Bold(true).Render("Help (h or esc to close)"), ""}
	lines = append(lines, ansi.WrapLines(intro, width)...)
	lines = append(lines, "")
	for _, b := range keys.HelpBindings() {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%-12s %s", h.Key, h.Desc))
	}
	return lines
}
