package highlight

import (
	"github.com/interpretive-systems/hilabel/internal/log"
	"github.com/interpretive-systems/hilabel/internal/richtext"
)

// Observer tells apart text changes made through Write from changes made by
// anyone else, and calls onExternal for the latter.
type Observer struct {
	host       Host
	onExternal func()
	cancel     func()
	// token is the text of the last Write, consumed by the next
	// notification.
	token *richtext.Text
}

// NewObserver subscribes to host's content changes.
func NewObserver(host Host, onExternal func()) *Observer {
	o := &Observer{host: host, onExternal: onExternal}
	o.cancel = host.OnContentChanged(o.notify)
	return o
}

// Write sets the host's text without triggering onExternal. With fade set
// and a host that supports it, the change is cross-faded.
func (o *Observer) Write(t richtext.Text, fade bool) {
	o.token = &t
	if f, ok := o.host.(Fader); ok && fade {
		f.FadeText(t)
		return
	}
	o.host.SetText(t)
}

func (o *Observer) notify(t richtext.Text) {
	token := o.token
	o.token = nil
	if token != nil && token.Equal(t) {
		return
	}
	log.Debug(log.CatObserver, "external text change", "runes", t.Len())
	if o.onExternal != nil {
		o.onExternal()
	}
}

// Close unsubscribes from the host.
func (o *Observer) Close() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}
