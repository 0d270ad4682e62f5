// Package hittest resolves a point in a label to the highlight region under
// it. Two interchangeable strategies are provided: LayoutTester asks the
// layout engine which rune sits under the point, PixelTester renders a region
// map onto an off-screen surface and samples it.
package hittest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/region"
	"github.com/interpretive-systems/hilabel/internal/surface"
)

// Scene is everything a tester needs to know about a label at the moment of
// a query.
type Scene struct {
	Text    string
	Params  layout.Params
	Regions []region.Region // registration order, oldest first
}

// textLen is the rune count that region ranges must fit inside.
func (s Scene) textLen() int {
	return utf8.RuneCountInString(s.Text)
}

// Tester maps points to regions. Points outside the label never hit, and
// repeated queries against an unchanged scene return the same answer.
type Tester interface {
	Locate(s Scene, p layout.Point) (region.Region, bool)
	// Close releases any shared resources held by the tester.
	Close()
}

// Strategy selects a Tester implementation.
type Strategy int

const (
	StrategyLayout Strategy = iota
	StrategyPixel
)

func (s Strategy) String() string {
	if s == StrategyPixel {
		return "pixel"
	}
	return "layout"
}

// ParseStrategy parses "layout" or "pixel".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "layout", "":
		return StrategyLayout, nil
	case "pixel":
		return StrategyPixel, nil
	}
	return StrategyLayout, fmt.Errorf("unknown hit-test strategy %q", s)
}

// Options configure New.
type Options struct {
	// Cache memoises layouts; nil computes every time.
	Cache *layout.Cache
	// Pool supplies the pixel surface; nil uses surface.Shared().
	Pool *surface.Pool
	// Holder identifies the label in the pool.
	Holder string
}

// New builds the tester for strategy s.
func New(s Strategy, opts Options) Tester {
	if s == StrategyPixel {
		return NewPixelTester(opts)
	}
	return NewLayoutTester(opts.Cache)
}
