package search

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Result tells the caller what a key did to the search box.
type Result int

const (
	Typing Result = iota
	Closed
	Submitted
)

// Engine is the substring box that registers regions on a label: every
// occurrence of the submitted query becomes a region.
type Engine struct {
	query   string
	matches int
	input   textinput.Model
	active  bool
	content string
}

// New creates a new search engine.
func New() *Engine {
	ti := textinput.New()
	ti.Placeholder = "Substring to make tappable"
	ti.Prompt = "/ "
	ti.CharLimit = 0

	return &Engine{input: ti}
}

// Activate opens the search input with an empty query.
func (e *Engine) Activate() {
	e.active = true
	e.input.SetValue("")
	e.query = ""
	e.matches = 0
	e.input.Focus()
}

// Deactivate closes search.
func (e *Engine) Deactivate() {
	e.active = false
	e.input.Blur()
}

// IsActive returns whether search is active.
func (e *Engine) IsActive() bool {
	return e.active
}

// HandleKey processes key input for search.
func (e *Engine) HandleKey(msg tea.KeyMsg) (Result, tea.Cmd) {
	switch msg.String() {
	case "esc":
		e.Deactivate()
		return Closed, nil
	case "enter":
		if e.matches == 0 {
			return Typing, nil
		}
		e.Deactivate()
		return Submitted, nil
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	e.query = e.input.Value()
	e.recomputeMatches()

	return Typing, cmd
}

// SetContent updates the plain text being searched.
func (e *Engine) SetContent(text string) {
	e.content = text
	e.recomputeMatches()
}

// Query returns the current search query.
func (e *Engine) Query() string {
	return e.query
}

// Keys returns the query once per occurrence, ready for SetManyByText.
func (e *Engine) Keys() []string {
	keys := make([]string, e.matches)
	for i := range keys {
		keys[i] = e.query
	}
	return keys
}

// recomputeMatches counts the non-overlapping occurrences of the query.
func (e *Engine) recomputeMatches() {
	if e.query == "" {
		e.matches = 0
		return
	}
	e.matches = strings.Count(e.content, e.query)
}

// MatchCount returns the number of matches.
func (e *Engine) MatchCount() int {
	return e.matches
}

// InputView returns the text input view.
func (e *Engine) InputView() string {
	return e.input.View()
}
