package layout

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultCacheExpiration = time.Minute
	DefaultCacheCleanup    = 5 * time.Minute
)

// Cache memoises layouts by text and params. Layouts are never mutated once
// computed, so cached values may be shared. A nil *Cache computes directly.
type Cache struct {
	c *gocache.Cache
}

// NewCache returns a cache with the default expiration.
func NewCache() *Cache {
	return &Cache{c: gocache.New(DefaultCacheExpiration, DefaultCacheCleanup)}
}

// Compute returns the layout of text in p, reusing a cached one if present.
func (c *Cache) Compute(text string, p Params) *Layout {
	if c == nil {
		return Compute(text, p)
	}
	key := cacheKey(text, p)
	if v, ok := c.c.Get(key); ok {
		if l, ok := v.(*Layout); ok {
			return l
		}
	}
	l := Compute(text, p)
	c.c.SetDefault(key, l)
	return l
}

// Len returns the number of cached layouts.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.c.ItemCount()
}

// Flush drops every cached layout.
func (c *Cache) Flush() {
	if c != nil {
		c.c.Flush()
	}
}

func cacheKey(text string, p Params) string {
	return fmt.Sprintf("%016x:%d:%d:%d:%d:%d:%d",
		xxhash.Sum64String(text), len(text), p.Width, p.Height, p.MaxLines, p.Mode, p.Align)
}
