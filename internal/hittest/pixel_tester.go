package hittest

import (
	"image"

	"github.com/google/uuid"

	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/log"
	"github.com/interpretive-systems/hilabel/internal/region"
	"github.com/interpretive-systems/hilabel/internal/surface"
)

// PixelTester paints each region's cells onto a shared surface in a colour
// encoding its index and samples the pixel under the point. Only the first
// surface.MaxRegions regions are painted; later ones never hit.
type PixelTester struct {
	cache  *layout.Cache
	pool   *surface.Pool
	holder string
	held   bool
}

// NewPixelTester returns a tester drawing from opts.Pool. The surface is not
// acquired until the first query that has regions to paint.
func NewPixelTester(opts Options) *PixelTester {
	pool := opts.Pool
	if pool == nil {
		pool = surface.Shared()
	}
	holder := opts.Holder
	if holder == "" {
		holder = uuid.NewString()
	}
	return &PixelTester{cache: opts.Cache, pool: pool, holder: holder}
}

func (t *PixelTester) Locate(s Scene, p layout.Point) (region.Region, bool) {
	if len(s.Regions) == 0 {
		return region.Region{}, false
	}
	l := t.cache.Compute(s.Text, s.Params)
	if !l.Contains(p) {
		return region.Region{}, false
	}
	surf := t.Render(s)
	i, ok := surface.Decode(surf.At(p.X, p.Y))
	if !ok || i >= len(s.Regions) {
		return region.Region{}, false
	}
	log.Debug(log.CatHitTest, "pixel locate", "x", p.X, "y", p.Y, "region", i)
	return s.Regions[i], true
}

// Render paints the region map of s onto the shared surface and returns it.
// The surface is reconfigured from scratch on every call.
func (t *PixelTester) Render(s Scene) *surface.Surface {
	surf := t.pool.Acquire(t.holder)
	t.held = true

	l := t.cache.Compute(s.Text, s.Params)
	w, h := l.Bounds()
	surf.Reset(w, h)

	n := min(len(s.Regions), surface.MaxRegions)
	if len(s.Regions) > n {
		log.Warn(log.CatHitTest, "regions past pixel ceiling ignored", "count", len(s.Regions))
	}
	textLen := s.textLen()
	for row, line := range l.Lines {
		y := l.Top + row
		x := line.X
		for _, c := range line.Cells {
			if k, ok := owner(s.Regions[:n], c.Index, textLen); ok {
				surf.Fill(image.Rect(x, y, x+c.Width, y+1), surface.Encode(k))
			}
			x += c.Width
		}
	}
	return surf
}

// owner returns the index of the newest region holding rune offset i.
// Regions that do not fit a text of n runes are never painted.
func owner(regions []region.Region, i, n int) (int, bool) {
	if i < 0 {
		return 0, false
	}
	for k := len(regions) - 1; k >= 0; k-- {
		if regions[k].Range.Valid(n) && regions[k].Range.Contains(i) {
			return k, true
		}
	}
	return 0, false
}

// Close returns the surface to the pool.
func (t *PixelTester) Close() {
	if t.held {
		t.pool.Release(t.holder)
		t.held = false
	}
}
