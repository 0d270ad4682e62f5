// Package richtext holds the attributed text a label displays: a rune slice
// with one attribute set per rune. Values are immutable; every edit returns a
// new Text, and edits over ranges that do not fit the text are ignored.
package richtext

import "slices"

// Color is a lipgloss colour spec ("#ff8800", "63", ...). The empty Color
// means "not set".
type Color string

// IsSet reports whether c names a colour.
func (c Color) IsSet() bool {
	return c != ""
}

// Attrs are the presentation attributes of a single rune.
type Attrs struct {
	Foreground Color
	Background Color
	Bold       bool
	Italic     bool
	Underline  bool
	Faint      bool
}

// Text is an attributed string indexed by rune.
type Text struct {
	runes []rune
	attrs []Attrs
}

// New returns s with every rune carrying a.
func New(s string, a Attrs) Text {
	runes := []rune(s)
	attrs := make([]Attrs, len(runes))
	for i := range attrs {
		attrs[i] = a
	}
	return Text{runes: runes, attrs: attrs}
}

// Plain returns s without any attributes.
func Plain(s string) Text {
	return New(s, Attrs{})
}

// Len returns the number of runes.
func (t Text) Len() int {
	return len(t.runes)
}

// IsEmpty reports whether t has no runes.
func (t Text) IsEmpty() bool {
	return len(t.runes) == 0
}

// String returns the plain text.
func (t Text) String() string {
	return string(t.runes)
}

// AttrsAt returns the attributes of rune i, or the zero Attrs when i is out
// of range.
func (t Text) AttrsAt(i int) Attrs {
	if i < 0 || i >= len(t.attrs) {
		return Attrs{}
	}
	return t.attrs[i]
}

// Slice returns the sub-text covered by r.
func (t Text) Slice(r Range) (Text, bool) {
	if !r.Valid(t.Len()) {
		return Text{}, false
	}
	return Text{
		runes: slices.Clone(t.runes[r.Start:r.End()]),
		attrs: slices.Clone(t.attrs[r.Start:r.End()]),
	}, true
}

// Replace returns t with the runes in r replaced by sub.
func (t Text) Replace(r Range, sub Text) Text {
	if !r.Valid(t.Len()) {
		return t
	}
	runes := make([]rune, 0, t.Len()-r.Length+sub.Len())
	runes = append(runes, t.runes[:r.Start]...)
	runes = append(runes, sub.runes...)
	runes = append(runes, t.runes[r.End():]...)

	attrs := make([]Attrs, 0, len(runes))
	attrs = append(attrs, t.attrs[:r.Start]...)
	attrs = append(attrs, sub.attrs...)
	attrs = append(attrs, t.attrs[r.End():]...)
	return Text{runes: runes, attrs: attrs}
}

// Append returns t followed by o.
func (t Text) Append(o Text) Text {
	return t.Replace(NewRange(t.Len(), 0), o)
}

// WithForeground sets the foreground colour over r.
func (t Text) WithForeground(r Range, c Color) Text {
	return t.modify(r, func(a *Attrs) { a.Foreground = c })
}

// WithoutForeground clears any foreground colour over r.
func (t Text) WithoutForeground(r Range) Text {
	return t.modify(r, func(a *Attrs) { a.Foreground = "" })
}

// WithBackground sets the background colour over r.
func (t Text) WithBackground(r Range, c Color) Text {
	return t.modify(r, func(a *Attrs) { a.Background = c })
}

// WithAttrs applies fn to the attributes of every rune in r.
func (t Text) WithAttrs(r Range, fn func(*Attrs)) Text {
	return t.modify(r, fn)
}

// MapAttrs returns t with the attributes of every rune i replaced by fn(i, a).
func (t Text) MapAttrs(fn func(i int, a Attrs) Attrs) Text {
	out := Text{runes: t.runes, attrs: make([]Attrs, len(t.attrs))}
	for i, a := range t.attrs {
		out.attrs[i] = fn(i, a)
	}
	return out
}

// SameRunes reports whether t and o hold the same plain text.
func (t Text) SameRunes(o Text) bool {
	return slices.Equal(t.runes, o.runes)
}

func (t Text) modify(r Range, fn func(*Attrs)) Text {
	if !r.Valid(t.Len()) || r.Length == 0 {
		return t
	}
	out := Text{runes: t.runes, attrs: slices.Clone(t.attrs)}
	for i := r.Start; i < r.End(); i++ {
		fn(&out.attrs[i])
	}
	return out
}

// Equal reports whether t and o hold the same runes with the same attributes.
func (t Text) Equal(o Text) bool {
	return slices.Equal(t.runes, o.runes) && slices.Equal(t.attrs, o.attrs)
}

// Run is a maximal stretch of runes sharing one attribute set.
type Run struct {
	Text  string
	Range Range
	Attrs Attrs
}

// Runs splits t into attribute runs.
func (t Text) Runs() []Run {
	if t.IsEmpty() {
		return nil
	}
	var runs []Run
	start := 0
	for i := 1; i <= t.Len(); i++ {
		if i < t.Len() && t.attrs[i] == t.attrs[start] {
			continue
		}
		runs = append(runs, Run{
			Text:  string(t.runes[start:i]),
			Range: NewRange(start, i-start),
			Attrs: t.attrs[start],
		})
		start = i
	}
	return runs
}

// Builder accumulates attributed segments.
type Builder struct {
	t Text
}

// Write appends s carrying a.
func (b *Builder) Write(s string, a Attrs) *Builder {
	b.t = b.t.Append(New(s, a))
	return b
}

// Text returns the accumulated text.
func (b *Builder) Text() Text {
	return b.t
}
