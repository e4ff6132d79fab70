package dispatch

import (
	"sync"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
)

// gate is the spam gate: a bounded LRU cache of fingerprint -> last seen
// timestamp. An update is suppressed when its fingerprint was seen within
// the TTL window; every call records the fingerprint, so a continuous
// burst stays suppressed until it pauses for a full window (sliding
// window). When the cache is full the least recently touched entry is
// evicted first.
//
// It is a best-effort heuristic: it never fails, it only answers yes/no.
type gate struct {
	mu    sync.Mutex
	cache cache.Cache[string, time.Time]
	ttl   time.Duration
	now   func() time.Time // injectable for tests
}

func newGate(ttl time.Duration, maxEntries int, now func() time.Time) *gate {
	if now == nil {
		now = time.Now
	}
	return &gate{
		// The cache's own TTL is a backstop twice the window; staleness
		// is decided against the stored timestamp so a fake clock in
		// tests stays authoritative.
		cache: cache.NewCache[string, time.Time]().WithMaxKeys(maxEntries).WithLRU().WithTTL(2 * ttl),
		ttl:   ttl,
		now:   now,
	}
}

// shouldSuppress reports whether the fingerprint was seen within the TTL
// window, and records it either way.
func (g *gate) shouldSuppress(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	last, found := g.cache.Get(key)
	g.cache.Set(key, now, 0)

	return found && now.Sub(last) < g.ttl
}

// len reports the number of live entries, for tests and stats.
func (g *gate) len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cache.Len()
}
