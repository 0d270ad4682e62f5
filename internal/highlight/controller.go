package highlight

import (
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/log"
	"github.com/interpretive-systems/hilabel/internal/region"
	"github.com/interpretive-systems/hilabel/internal/richtext"
)

// Phase is the stage of a pointer stream an event belongs to.
type Phase int

const (
	PointerDown Phase = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (p Phase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is one pointer event in host-local cell coordinates.
type PointerEvent struct {
	Phase  Phase
	Point  layout.Point
	Stream StreamID
}

// State is the interaction state of a host.
type State int

const (
	// Idle: no region is pressed.
	Idle State = iota
	// Armed: a region is pressed but the pointer is off it.
	Armed
	// Highlighting: a region is pressed and shown highlighted.
	Highlighting
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Highlighting:
		return "highlighting"
	default:
		return "idle"
	}
}

type session struct {
	stream StreamID
	region region.Region
	// whole is the host text the session writes; captured is the region's
	// text at press time.
	whole        richtext.Text
	captured     richtext.Text
	highlighting bool
}

// Controller runs the press/drag/release state machine of one host.
type Controller struct {
	host   Host
	locate func(layout.Point) (region.Region, bool)
	write  func(t richtext.Text, fade bool)
	style  func() Style
	onTap  func(Tap)

	sess     *session
	lastDown StreamID
}

// State returns the current interaction state.
func (c *Controller) State() State {
	switch {
	case c.sess == nil:
		return Idle
	case c.sess.highlighting:
		return Highlighting
	default:
		return Armed
	}
}

// Handle feeds ev to the state machine and reports whether it was consumed.
// Unconsumed events belong to the host's own handling.
func (c *Controller) Handle(ev PointerEvent) bool {
	if ev.Phase == PointerDown {
		return c.down(ev)
	}
	s := c.sess
	if s == nil || !sameStream(s.stream, ev.Stream) {
		return false
	}
	switch ev.Phase {
	case PointerMove:
		c.show(c.over(ev.Point))
	case PointerUp:
		inside := c.over(ev.Point)
		c.end()
		if inside && c.onTap != nil {
			log.Info(log.CatInteract, "tap", "range", s.region.Range, "tag", s.region.Tag)
			c.onTap(Tap{Host: c.host, Text: s.captured, Range: s.region.Range, Tag: s.region.Tag})
		}
	case PointerCancel:
		c.end()
	}
	return true
}

func (c *Controller) down(ev PointerEvent) bool {
	if ev.Stream != "" && ev.Stream == c.lastDown {
		return c.sess != nil
	}
	c.lastDown = ev.Stream
	if c.sess != nil {
		log.Debug(log.CatInteract, "superseded", "stream", c.sess.stream)
		c.end()
	}

	rg, ok := c.locate(ev.Point)
	if !ok {
		return false
	}
	whole := c.host.Text()
	captured, ok := whole.Slice(rg.Range)
	if !ok {
		return false
	}
	c.sess = &session{stream: ev.Stream, region: rg, whole: whole, captured: captured}
	c.host.ClaimPointer(ev.Stream)
	log.Debug(log.CatInteract, "armed", "stream", ev.Stream, "range", rg.Range)
	c.show(true)
	return true
}

// over reports whether p is on the pressed region.
func (c *Controller) over(p layout.Point) bool {
	rg, ok := c.locate(p)
	return ok && rg.Range == c.sess.region.Range
}

// show puts the pressed region in the requested look. Asking for the look it
// already has does nothing.
func (c *Controller) show(on bool) {
	s := c.sess
	if s.highlighting == on {
		return
	}
	s.highlighting = on
	piece := s.captured
	if on {
		piece = c.style().Highlighted(s.captured, s.region)
	}
	s.whole = s.whole.Replace(s.region.Range, piece)
	c.write(s.whole, true)
}

// end reverts the pressed region and returns to Idle.
func (c *Controller) end() {
	s := c.sess
	c.show(false)
	c.sess = nil
	c.host.ReleasePointer(s.stream)
}

// abort drops the session without touching the text, which is no longer the
// text the session was made for.
func (c *Controller) abort() {
	if c.sess == nil {
		return
	}
	c.host.ReleasePointer(c.sess.stream)
	c.sess = nil
}

func sameStream(a, b StreamID) bool {
	return a == "" || b == "" || a == b
}
