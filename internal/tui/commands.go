package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/hilabel/internal/config"
)

// statusTTL is how long a transient status message stays visible.
const statusTTL = 3 * time.Second

// waitForText blocks on the watcher channel and delivers the next content.
func waitForText(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return nil
		}
		return fileTextMsg{text: text}
	}
}

// copyText writes s to the system clipboard.
func copyText(s string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: s, err: clipboard.WriteAll(s)}
	}
}

// saveDisplay persists the toggled display settings.
func saveDisplay(path string, d config.Display) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return prefsSavedMsg{err: config.SaveDisplay(path, d)}
	}
}

// expireStatus schedules removal of status message seq.
func expireStatus(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
