package tui

import (
	"github.com/interpretive-systems/hilabel/internal/config"
	"github.com/interpretive-systems/hilabel/internal/highlight"
	"github.com/interpretive-systems/hilabel/internal/hittest"
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/richtext"
	"github.com/interpretive-systems/hilabel/internal/surface"
	"github.com/interpretive-systems/hilabel/internal/tui/components"
	"github.com/interpretive-systems/hilabel/internal/tui/label"
	"github.com/interpretive-systems/hilabel/internal/tui/search"
)

// Card is one showcased label with the content it was seeded with.
type Card struct {
	Title string
	Label *label.Model
	// Width is the label width asked for; the screen may clamp it.
	Width int

	seed    richtext.Text
	style   highlight.Style
	regions func(*highlight.Highlight)
}

// Seed restores the card's text, style and regions.
func (c *Card) Seed() {
	c.Label.Close()
	c.Label.SetText(c.seed)
	h := c.Label.Highlight()
	h.SetColor(c.style.Color)
	h.SetHighlightColor(c.style.HighlightColor)
	h.SetBackgroundColor(c.style.BackgroundColor)
	if c.regions != nil {
		c.regions(h)
	}
}

// State holds all application state.
type State struct {
	Config     config.Config
	ConfigPath string

	Cards    []*Card
	Focus    int
	Strategy hittest.Strategy

	// UI State
	Width     int
	Height    int
	ShowHelp  bool
	LastTap   string
	StatusSeq int

	// Components
	RegionList   *components.RegionList
	StatusBar    *components.StatusBar
	SearchEngine *search.Engine

	Theme Theme
	Pool  *surface.Pool
	Cache *layout.Cache
}

// NewState creates initial application state with the configured label
// first, followed by fixed showcase labels.
func NewState(cfg config.Config, configPath, text string, pool *surface.Pool) *State {
	if pool == nil {
		pool = surface.Shared()
	}
	s := &State{
		Config:       cfg,
		ConfigPath:   configPath,
		Strategy:     cfg.HitStrategy(),
		RegionList:   components.NewRegionList(),
		StatusBar:    components.NewStatusBar(),
		SearchEngine: search.New(),
		Theme:        DefaultTheme(),
		Pool:         pool,
		Cache:        layout.NewCache(),
	}

	s.addCard("Configured", richtext.Plain(text), cfg.Params(), cfg.Style(), cfg.Apply)

	s.addCard("Single line, middle truncation",
		richtext.Plain("Middle truncation keeps the start of this line and its footer link"),
		layout.Params{Width: 36, Height: 1, MaxLines: 1, Mode: layout.TruncateMiddle},
		highlight.Style{Color: "#ffaf5f", HighlightColor: "#000000", BackgroundColor: "#ffaf5f"},
		func(h *highlight.Highlight) {
			h.SetManyByText([]string{"start", "footer link"}, highlight.Many{Tags: []int{20, 21}})
		})

	s.addCard("Centred block",
		richtext.ParseANSI("\x1b[1mCentred\x1b[0m\nterms · privacy"),
		layout.Params{Width: 36, Height: 4, Align: layout.AlignCenter},
		highlight.Style{HighlightColor: "#ffffff", BackgroundColor: "#5f00af"},
		func(h *highlight.Highlight) {
			h.SetManyByText([]string{"terms", "privacy"}, highlight.Many{
				Colors: []richtext.Color{"#87afff", "#87afff"},
				Tags:   []int{30, 31},
			})
		})

	return s
}

func (s *State) addCard(title string, t richtext.Text, p layout.Params, style highlight.Style, regions func(*highlight.Highlight)) {
	l := label.New(t, p,
		label.WithStrategy(s.Strategy),
		label.WithPool(s.Pool),
		label.WithCache(s.Cache),
	)
	c := &Card{Title: title, Label: l, Width: p.Width, seed: t, style: style, regions: regions}
	c.Seed()
	s.Cards = append(s.Cards, c)
}

// Focused returns the focused card.
func (s *State) Focused() *Card {
	return s.Cards[s.Focus]
}

// CardFor returns the card owning label id.
func (s *State) CardFor(id string) (*Card, bool) {
	for _, c := range s.Cards {
		if c.Label.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Close releases every label's resources.
func (s *State) Close() {
	for _, c := range s.Cards {
		c.Label.Close()
	}
}
