package hittest

import (
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/log"
	"github.com/interpretive-systems/hilabel/internal/region"
)

// LayoutTester resolves points through the layout engine and scans regions
// newest first, so the most recently registered overlapping region wins.
// It has no region limit.
type LayoutTester struct {
	cache *layout.Cache
}

// NewLayoutTester returns a tester reusing layouts from cache.
func NewLayoutTester(cache *layout.Cache) *LayoutTester {
	return &LayoutTester{cache: cache}
}

func (t *LayoutTester) Locate(s Scene, p layout.Point) (region.Region, bool) {
	if len(s.Regions) == 0 {
		return region.Region{}, false
	}
	l := t.cache.Compute(s.Text, s.Params)
	idx, ok := l.IndexAt(p)
	if !ok {
		return region.Region{}, false
	}
	rg, ok := region.Containing(s.Regions, idx, s.textLen())
	log.Debug(log.CatHitTest, "layout locate", "x", p.X, "y", p.Y, "index", idx, "hit", ok)
	return rg, ok
}

func (t *LayoutTester) Close() {}
