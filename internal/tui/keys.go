package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction represents an action triggered by a key press.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionQuit
	ActionToggleHelp
	ActionOpenSearch
	ActionToggleStrategy
	ActionCycleMode
	ActionSetLines
	ActionCycleColor
	ActionRemoveRegions
	ActionExternalEdit
	ActionRestore
	ActionFocusNext
	ActionFocusPrev
	ActionCopyTap
	ActionMoveUp
	ActionMoveDown
)

type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Search   key.Binding
	Strategy key.Binding
	Mode     key.Binding
	Lines    key.Binding
	Color    key.Binding
	Remove   key.Binding
	Edit     key.Binding
	Restore  key.Binding
	Next     key.Binding
	Prev     key.Binding
	Copy     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "toggle help")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "add regions by substring")),
	Strategy: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle hit-test strategy")),
	Mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cycle break mode")),
	Lines:    key.NewBinding(key.WithKeys("l"), key.WithHelp("[n]l", "set or cycle line limit")),
	Color:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle highlight colour")),
	Remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove all regions")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit text externally")),
	Restore:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restore text and regions")),
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus next label")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "focus previous label")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy selected region")),
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "select region")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "select region")),
}

// HelpBindings lists the bindings shown in the help overlay.
func (k keyMap) HelpBindings() []key.Binding {
	return []key.Binding{
		k.Strategy, k.Mode, k.Lines, k.Color, k.Search, k.Remove,
		k.Edit, k.Restore, k.Next, k.Up, k.Copy, k.Help, k.Quit,
	}
}

var actions = []struct {
	binding *key.Binding
	action  KeyAction
}{
	{&keys.Quit, ActionQuit},
	{&keys.Help, ActionToggleHelp},
	{&keys.Search, ActionOpenSearch},
	{&keys.Strategy, ActionToggleStrategy},
	{&keys.Mode, ActionCycleMode},
	{&keys.Lines, ActionSetLines},
	{&keys.Color, ActionCycleColor},
	{&keys.Remove, ActionRemoveRegions},
	{&keys.Edit, ActionExternalEdit},
	{&keys.Restore, ActionRestore},
	{&keys.Next, ActionFocusNext},
	{&keys.Prev, ActionFocusPrev},
	{&keys.Copy, ActionCopyTap},
	{&keys.Up, ActionMoveUp},
	{&keys.Down, ActionMoveDown},
}

// KeyHandler handles key input and maintains the numeric prefix buffer.
type KeyHandler struct {
	keyBuffer string
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

// Handle processes a key message and returns the action with its numeric
// prefix, or -1 when none was typed.
func (k *KeyHandler) Handle(msg tea.KeyMsg) (KeyAction, int) {
	s := msg.String()
	if isNumericKey(s) {
		k.keyBuffer += s
		return ActionNone, -1
	}

	count := -1
	if k.keyBuffer != "" {
		if n, err := strconv.Atoi(k.keyBuffer); err == nil {
			count = n
		}
	}
	k.keyBuffer = ""

	for _, a := range actions {
		if key.Matches(msg, *a.binding) {
			return a.action, count
		}
	}
	return ActionNone, -1
}

// KeyBuffer returns the current key buffer.
func (k *KeyHandler) KeyBuffer() string {
	return k.keyBuffer
}

// ClearBuffer clears the key buffer.
func (k *KeyHandler) ClearBuffer() {
	k.keyBuffer = ""
}

func isNumericKey(key string) bool {
	return len(key) == 1 && key >= "0" && key <= "9"
}
