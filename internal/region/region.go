// Package region keeps the set of highlight regions attached to one text host.
package region

import (
	"strings"
	"unicode/utf8"

	"github.com/interpretive-systems/hilabel/internal/richtext"
)

// Region is a highlighted stretch of text. Two regions with equal ranges are
// the same region.
type Region struct {
	Range           richtext.Range
	NormalColor     richtext.Color
	HighlightColor  richtext.Color
	BackgroundColor richtext.Color
	Tag             int
}

// Registry holds regions in registration order. The zero value is ready to use.
type Registry struct {
	regions []Region
}

// Put registers rg, replacing any region with the same range. The replacement
// moves to the end, so it becomes the most recently registered.
func (r *Registry) Put(rg Region) {
	r.regions = without(r.regions, rg.Range)
	r.regions = append(r.regions, rg)
}

// Len returns the number of regions.
func (r *Registry) Len() int {
	return len(r.regions)
}

// All returns a copy of the regions in registration order.
func (r *Registry) All() []Region {
	out := make([]Region, len(r.regions))
	copy(out, r.regions)
	return out
}

// Reset drops every region.
func (r *Registry) Reset() {
	r.regions = nil
}

// Find returns the region registered for exactly rng.
func (r *Registry) Find(rng richtext.Range) (Region, bool) {
	for _, rg := range r.regions {
		if rg.Range == rng {
			return rg, true
		}
	}
	return Region{}, false
}

// Containing returns the most recently registered region whose range holds
// offset i in a text of n runes.
func (r *Registry) Containing(i, n int) (Region, bool) {
	return Containing(r.regions, i, n)
}

// Containing scans regions newest first and returns the first one holding i.
// Regions whose range does not fit a text of n runes never match.
func Containing(regions []Region, i, n int) (Region, bool) {
	for k := len(regions) - 1; k >= 0; k-- {
		rg := regions[k]
		if rg.Range.Valid(n) && rg.Range.Contains(i) {
			return rg, true
		}
	}
	return Region{}, false
}

func without(regions []Region, rng richtext.Range) []Region {
	out := regions[:0]
	for _, rg := range regions {
		if rg.Range != rng {
			out = append(out, rg)
		}
	}
	return out
}

// Occurrence locates the n-th (0-based) occurrence of key in text by
// splitting text on key and summing the segment lengths in front of it.
// Occurrences never overlap.
func Occurrence(text, key string, n int) (richtext.Range, bool) {
	if key == "" || n < 0 {
		return richtext.Range{}, false
	}
	parts := strings.Split(text, key)
	if n >= len(parts)-1 {
		return richtext.Range{}, false
	}
	keyLen := utf8.RuneCountInString(key)
	start := 0
	for _, p := range parts[:n+1] {
		start += utf8.RuneCountInString(p)
	}
	return richtext.NewRange(start+n*keyLen, keyLen), true
}

// Counter hands out increasing occurrence indices per distinct key, so that
// repeated keys resolve to successive occurrences.
type Counter map[string]int

// Next returns the next occurrence index for key.
func (c Counter) Next(key string) int {
	n := c[key]
	c[key] = n + 1
	return n
}
