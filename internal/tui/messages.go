package tui

// fileTextMsg carries new content from the watched text file.
type fileTextMsg struct {
	text string
}

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	text string
	err  error
}

// prefsSavedMsg reports the outcome of persisting display settings.
type prefsSavedMsg struct {
	err error
}

// clearStatusMsg expires a transient status message.
type clearStatusMsg struct {
	seq int
}
