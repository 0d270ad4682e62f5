package richtext

import "fmt"

// Range is a half-open rune interval [Start, Start+Length).
type Range struct {
	Start  int
	Length int
}

// NewRange returns the range starting at start covering length runes.
func NewRange(start, length int) Range {
	return Range{Start: start, Length: length}
}

// End returns the exclusive end offset.
func (r Range) End() int {
	return r.Start + r.Length
}

// Valid reports whether r lies inside a text of n runes.
func (r Range) Valid(n int) bool {
	return r.Start >= 0 && r.Length >= 0 && r.Start <= n && r.Length <= n-r.Start
}

// Contains reports whether offset i falls inside r.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i-r.Start < r.Length
}

func (r Range) String() string {
	return fmt.Sprintf("{%d, %d}", r.Start, r.Length)
}
