// Package highlight attaches tappable highlight regions to a text host.
//
// A Highlight owns the regions of one host, keeps their colours applied to
// the host's text, flashes a region while it is pressed and reports taps.
// Any change to the host's text that Highlight did not make itself discards
// every region.
//
// Everything runs on the caller's goroutine; a Highlight must only be used
// from the host's event loop.
package highlight

import (
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/richtext"
)

// StreamID identifies one pointer stream, from press to release.
type StreamID string

// Host is the widget a Highlight decorates.
type Host interface {
	// Text returns the attributed text currently displayed.
	Text() richtext.Text
	// SetText replaces the displayed text. The change must be visible to
	// the next Text call and reported to content observers.
	SetText(t richtext.Text)
	// Params describe how the host lays its text out.
	Params() layout.Params
	// OnContentChanged registers fn to run after every text change and
	// returns a function that unregisters it.
	OnContentChanged(fn func(richtext.Text)) (cancel func())
	// ClaimPointer asks the host to stop delivering stream id to anything
	// else until ReleasePointer.
	ClaimPointer(id StreamID)
	ReleasePointer(id StreamID)
}

// Fader is implemented by hosts able to cross-fade into new text. FadeText
// has the same contract as SetText; only the presentation differs.
type Fader interface {
	FadeText(t richtext.Text)
}

// Tap describes a completed tap on a region.
type Tap struct {
	Host Host
	// Text is the region's attributed text as it was when pressed.
	Text  richtext.Text
	Range richtext.Range
	Tag   int
}

// TapFunc receives taps.
type TapFunc func(Tap)
