package highlight

import (
	"github.com/interpretive-systems/hilabel/internal/hittest"
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/log"
	"github.com/interpretive-systems/hilabel/internal/region"
	"github.com/interpretive-systems/hilabel/internal/richtext"
)

// Highlight manages the regions of one host.
type Highlight struct {
	host     Host
	style    Style
	regions  region.Registry
	tester   hittest.Tester
	observer *Observer
	ctrl     *Controller
	onTap    TapFunc
	detached bool
}

// Option configures Attach.
type Option func(*Highlight)

// WithTester selects the hit tester. The default is a layout tester without
// a cache.
func WithTester(t hittest.Tester) Option {
	return func(h *Highlight) { h.tester = t }
}

// WithStyle sets the initial container style.
func WithStyle(s Style) Option {
	return func(h *Highlight) { h.style = s }
}

// WithTap sets the tap callback.
func WithTap(fn TapFunc) Option {
	return func(h *Highlight) { h.onTap = fn }
}

// Attach starts managing regions on host.
func Attach(host Host, opts ...Option) *Highlight {
	h := &Highlight{host: host}
	for _, opt := range opts {
		opt(h)
	}
	if h.tester == nil {
		h.tester = hittest.NewLayoutTester(nil)
	}
	h.observer = NewObserver(host, h.reset)
	h.ctrl = &Controller{
		host:   host,
		locate: h.Locate,
		write:  h.observer.Write,
		style:  func() Style { return h.style },
		onTap: func(t Tap) {
			if h.onTap != nil {
				h.onTap(t)
			}
		},
	}
	return h
}

// RegionOption sets an optional attribute of a region.
type RegionOption func(*region.Region)

// Color sets the region's foreground at rest.
func Color(c richtext.Color) RegionOption {
	return func(r *region.Region) { r.NormalColor = c }
}

// HighlightColor sets the region's foreground while pressed.
func HighlightColor(c richtext.Color) RegionOption {
	return func(r *region.Region) { r.HighlightColor = c }
}

// BackgroundColor sets the region's background while pressed.
func BackgroundColor(c richtext.Color) RegionOption {
	return func(r *region.Region) { r.BackgroundColor = c }
}

// Tag sets the region's tag.
func Tag(n int) RegionOption {
	return func(r *region.Region) { r.Tag = n }
}

// Many holds per-index attributes for SetMany and SetManyByText. Slices may
// be shorter than the list of regions; missing entries are unset.
type Many struct {
	Colors           []richtext.Color
	HighlightColors  []richtext.Color
	BackgroundColors []richtext.Color
	Tags             []int
}

func (m Many) options(i int) []RegionOption {
	var opts []RegionOption
	if i < len(m.Colors) {
		opts = append(opts, Color(m.Colors[i]))
	}
	if i < len(m.HighlightColors) {
		opts = append(opts, HighlightColor(m.HighlightColors[i]))
	}
	if i < len(m.BackgroundColors) {
		opts = append(opts, BackgroundColor(m.BackgroundColors[i]))
	}
	if i < len(m.Tags) {
		opts = append(opts, Tag(m.Tags[i]))
	}
	return opts
}

// Set registers a region over r, replacing any region with the same range,
// and paints its rest colour into the host text right away. Ranges are not
// checked against the text; one that does not fit is kept but never hit.
func (h *Highlight) Set(r richtext.Range, opts ...RegionOption) {
	if h.detached {
		return
	}
	rg := region.Region{Range: r}
	for _, opt := range opts {
		opt(&rg)
	}
	if c := h.style.NormalColor(rg); c.IsSet() {
		h.write(h.host.Text().WithForeground(r, c))
	}
	h.regions.Put(rg)
	log.Debug(log.CatRegion, "set", "range", r, "tag", rg.Tag, "count", h.regions.Len())
}

// SetMany calls Set for every range with the attributes at the same index.
func (h *Highlight) SetMany(ranges []richtext.Range, m Many) {
	for i, r := range ranges {
		h.Set(r, m.options(i)...)
	}
}

// SetByText registers a region over occurrence at (0-based) of key in the
// host's plain text. Nothing happens when there is no such occurrence.
func (h *Highlight) SetByText(key string, at int, opts ...RegionOption) {
	r, ok := region.Occurrence(h.host.Text().String(), key, at)
	if !ok {
		log.Debug(log.CatRegion, "no occurrence", "key", key, "at", at)
		return
	}
	h.Set(r, opts...)
}

// SetManyByText registers a region per key. Repeated keys take successive
// occurrences.
func (h *Highlight) SetManyByText(keys []string, m Many) {
	if h.host.Text().IsEmpty() {
		return
	}
	seen := region.Counter{}
	for i, key := range keys {
		h.SetByText(key, seen.Next(key), m.options(i)...)
	}
}

// Remove detaches h from its host. Regions are dropped, any press in
// progress is reverted and the host is no longer observed. Later calls on h
// do nothing.
func (h *Highlight) Remove() {
	if h.detached {
		return
	}
	if h.ctrl.sess != nil {
		h.ctrl.end()
	}
	h.regions.Reset()
	h.observer.Close()
	h.tester.Close()
	h.detached = true
	log.Debug(log.CatRegion, "removed")
}

// Style returns the container style.
func (h *Highlight) Style() Style {
	return h.style
}

// SetColor changes the container rest colour and reapplies it to every
// region. Unsetting it clears the foreground over every region.
func (h *Highlight) SetColor(c richtext.Color) {
	h.style.Color = c
	if h.detached || h.regions.Len() == 0 {
		return
	}
	h.write(ApplyContainerColor(h.host.Text(), h.regions.All(), c))
}

// SetHighlightColor changes the container pressed foreground.
func (h *Highlight) SetHighlightColor(c richtext.Color) {
	h.style.HighlightColor = c
}

// SetBackgroundColor changes the container pressed background.
func (h *Highlight) SetBackgroundColor(c richtext.Color) {
	h.style.BackgroundColor = c
}

// OnTap replaces the tap callback.
func (h *Highlight) OnTap(fn TapFunc) {
	h.onTap = fn
}

// HandlePointer feeds a pointer event to the interaction state machine and
// reports whether it was consumed.
func (h *Highlight) HandlePointer(ev PointerEvent) bool {
	if h.detached {
		return false
	}
	return h.ctrl.Handle(ev)
}

// Locate returns the region under p in host-local coordinates.
func (h *Highlight) Locate(p layout.Point) (region.Region, bool) {
	if h.detached || h.regions.Len() == 0 {
		return region.Region{}, false
	}
	return h.tester.Locate(hittest.Scene{
		Text:    h.host.Text().String(),
		Params:  h.host.Params(),
		Regions: h.regions.All(),
	}, p)
}

// Regions returns the registered regions, oldest first.
func (h *Highlight) Regions() []region.Region {
	return h.regions.All()
}

// State returns the interaction state.
func (h *Highlight) State() State {
	return h.ctrl.State()
}

func (h *Highlight) write(t richtext.Text) {
	if t.Equal(h.host.Text()) {
		return
	}
	h.observer.Write(t, false)
}

func (h *Highlight) reset() {
	if n := h.regions.Len(); n > 0 {
		log.Info(log.CatRegion, "text changed, regions cleared", "count", n)
	}
	h.regions.Reset()
	h.ctrl.abort()
}
