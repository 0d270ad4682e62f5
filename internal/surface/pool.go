package surface

import (
	"sync"

	"github.com/interpretive-systems/hilabel/internal/log"
)

// Pool shares one Surface between holders. The surface is created on the
// first Acquire and dropped when the last holder releases it.
type Pool struct {
	mu      sync.Mutex
	holders map[string]struct{}
	surf    *Surface
	allocs  int
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{holders: make(map[string]struct{})}
}

var shared = NewPool()

// Shared returns the process-wide pool used by labels that do not supply
// their own.
func Shared() *Pool {
	return shared
}

// Acquire registers holder and returns the shared surface, allocating it if
// no holder had it yet. Acquiring twice with the same holder is harmless.
func (p *Pool) Acquire(holder string) *Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.holders == nil {
		p.holders = make(map[string]struct{})
	}
	p.holders[holder] = struct{}{}
	if p.surf == nil {
		p.surf = New(0, 0)
		p.allocs++
		log.Debug(log.CatSurface, "allocated", "holder", holder)
	}
	return p.surf
}

// Release drops holder. When no holders remain the surface is freed.
func (p *Pool) Release(holder string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.holders[holder]; !ok {
		return
	}
	delete(p.holders, holder)
	if len(p.holders) == 0 && p.surf != nil {
		p.surf = nil
		log.Debug(log.CatSurface, "freed", "holder", holder)
	}
}

// Holders returns the number of live holders.
func (p *Pool) Holders() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.holders)
}

// Allocated reports whether a surface currently exists.
func (p *Pool) Allocated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.surf != nil
}

// Allocations returns how many times a surface has been created.
func (p *Pool) Allocations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocs
}
