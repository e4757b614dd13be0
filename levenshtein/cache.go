package levenshtein

import (
	"container/list"
	"sync"
)

// DefaultCacheSize is the capacity used by NewCached when capacity <= 0.
const DefaultCacheSize = 100_000

// Cached is a size-bounded memoizing Oracle. It stores results keyed on the
// unordered pair {a, b} plus the bound, evicting the least-recently-used entry
// once capacity is exceeded. Safe for concurrent use.
type Cached struct {
	mu    sync.Mutex
	next  Oracle
	cap   int
	ll    *list.List
	m     map[pairKey]*list.Element
	hits  uint64
	miss  uint64
	evict uint64
}

// pairKey normalizes a query so (a,b) and (b,a) share an entry.
// Exact queries use bound == -1.
type pairKey struct {
	a, b  string
	bound int
}

type cacheEntry struct {
	k pairKey
	v int
}

// CacheStats is a point-in-time view of cache effectiveness.
type CacheStats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// NewCached wraps next (Exact when nil) with an LRU of the given capacity.
func NewCached(next Oracle, capacity int) *Cached {
	if next == nil {
		next = Exact{}
	}
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}

	return &Cached{
		next: next,
		cap:  capacity,
		ll:   list.New(),
		m:    make(map[pairKey]*list.Element, capacity),
	}
}

func makeKey(a, b string, bound int) pairKey {
	if b < a {
		a, b = b, a
	}
	if bound < 0 {
		bound = -1
	}

	return pairKey{a: a, b: b, bound: bound}
}

// Distance implements Oracle.
func (c *Cached) Distance(a, b string) int {
	return c.lookup(makeKey(a, b, -1), func() int { return c.next.Distance(a, b) })
}

// Bounded implements Oracle.
func (c *Cached) Bounded(a, b string, bound int) int {
	return c.lookup(makeKey(a, b, bound), func() int { return c.next.Bounded(a, b, bound) })
}

// lookup computes outside the lock; two goroutines racing on the same key both
// compute and the second store wins, which is harmless for a pure function.
func (c *Cached) lookup(k pairKey, compute func() int) int {
	c.mu.Lock()
	if e, ok := c.m[k]; ok {
		c.ll.MoveToFront(e)
		c.hits++
		v := e.Value.(*cacheEntry).v
		c.mu.Unlock()
		return v
	}
	c.miss++
	c.mu.Unlock()

	v := compute()

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[k]; ok {
		c.ll.MoveToFront(e)
		return v
	}
	c.m[k] = c.ll.PushFront(&cacheEntry{k: k, v: v})
	if c.ll.Len() > c.cap {
		if tail := c.ll.Back(); tail != nil {
			c.ll.Remove(tail)
			delete(c.m, tail.Value.(*cacheEntry).k)
			c.evict++
		}
	}

	return v
}

// Stats returns current counters.
func (c *Cached) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		Len:       c.ll.Len(),
		Capacity:  c.cap,
		Hits:      c.hits,
		Misses:    c.miss,
		Evictions: c.evict,
	}
}
