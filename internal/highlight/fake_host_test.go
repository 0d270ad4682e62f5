package highlight

import (
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/richtext"
)

// fakeHost is a single-line host of fixed width.
type fakeHost struct {
	text      richtext.Text
	params    layout.Params
	observers map[int]func(richtext.Text)
	nextID    int
	writes    int
	fades     int
	claimed   []StreamID
	released  []StreamID
}

func newFakeHost(s string) *fakeHost {
	return &fakeHost{
		text:      richtext.Plain(s),
		params:    layout.Params{Width: 40},
		observers: map[int]func(richtext.Text){},
	}
}

func (h *fakeHost) Text() richtext.Text { return h.text }

func (h *fakeHost) SetText(t richtext.Text) {
	h.text = t
	h.writes++
	for _, fn := range h.observers {
		fn(t)
	}
}

func (h *fakeHost) Params() layout.Params { return h.params }

func (h *fakeHost) OnContentChanged(fn func(richtext.Text)) func() {
	id := h.nextID
	h.nextID++
	h.observers[id] = fn
	return func() { delete(h.observers, id) }
}

func (h *fakeHost) ClaimPointer(id StreamID)   { h.claimed = append(h.claimed, id) }
func (h *fakeHost) ReleasePointer(id StreamID) { h.released = append(h.released, id) }

// fadingHost records cross-fades.
type fadingHost struct {
	*fakeHost
}

func (h fadingHost) FadeText(t richtext.Text) {
	h.fades++
	h.SetText(t)
}

func down(x int, s StreamID) PointerEvent {
	return PointerEvent{Phase: PointerDown, Point: layout.Point{X: x}, Stream: s}
}

func move(x int, s StreamID) PointerEvent {
	return PointerEvent{Phase: PointerMove, Point: layout.Point{X: x}, Stream: s}
}

func up(x int, s StreamID) PointerEvent {
	return PointerEvent{Phase: PointerUp, Point: layout.Point{X: x}, Stream: s}
}

func cancel(s StreamID) PointerEvent {
	return PointerEvent{Phase: PointerCancel, Stream: s}
}
