package components

import (
	"fmt"

	"github.com/interpretive-systems/hilabel/internal/region"
)

// RegionEntry is one row of the region list.
type RegionEntry struct {
	Region region.Region
	Text   string
}

// RegionList manages the left pane list of the focused label's regions.
type RegionList struct {
	entries  []RegionEntry
	selected int
	offset   int
}

// NewRegionList creates a new region list.
func NewRegionList() *RegionList {
	return &RegionList{}
}

// SetEntries updates the list, keeping the selection in range.
func (r *RegionList) SetEntries(entries []RegionEntry) {
	r.entries = entries
	if r.selected >= len(entries) {
		r.selected = len(entries) - 1
	}
	if r.selected < 0 {
		r.selected = 0
	}
}

// Entries returns the current entries.
func (r *RegionList) Entries() []RegionEntry {
	return r.entries
}

// Selected returns the currently selected index.
func (r *RegionList) Selected() int {
	return r.selected
}

// SelectedEntry returns the selected entry, or nil when the list is empty.
func (r *RegionList) SelectedEntry() *RegionEntry {
	if len(r.entries) == 0 || r.selected < 0 || r.selected >= len(r.entries) {
		return nil
	}
	return &r.entries[r.selected]
}

// MoveSelection moves the selection by delta.
func (r *RegionList) MoveSelection(delta int) bool {
	if len(r.entries) == 0 {
		return false
	}

	newSel := r.selected + delta
	if newSel < 0 {
		newSel = 0
	}
	if newSel >= len(r.entries) {
		newSel = len(r.entries) - 1
	}

	changed := newSel != r.selected
	r.selected = newSel
	return changed
}

// EnsureVisible ensures the selected item is visible.
func (r *RegionList) EnsureVisible(visibleCount int) {
	if len(r.entries) == 0 || visibleCount <= 0 {
		r.offset = 0
		return
	}

	maxStart := len(r.entries) - visibleCount
	if maxStart < 0 {
		maxStart = 0
	}
	if r.offset > maxStart {
		r.offset = maxStart
	}

	if r.selected < r.offset {
		r.offset = r.selected
	} else if r.selected >= r.offset+visibleCount {
		r.offset = r.selected - visibleCount + 1
	}
}

// Render renders the list to lines.
func (r *RegionList) Render(height int) []string {
	lines := make([]string, 0, height)

	if len(r.entries) == 0 {
		lines = append(lines, "No regions")
		return lines
	}

	r.EnsureVisible(height)

	start := r.offset
	end := start + height
	if end > len(r.entries) {
		end = len(r.entries)
	}

	for i := start; i < end; i++ {
		e := r.entries[i]
		marker := "  "
		if i == r.selected {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s#%d %s %q", marker, e.Region.Tag, e.Region.Range, e.Text))
	}

	return lines
}
