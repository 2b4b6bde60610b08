// Package cache provides an in-memory key/value store bounded by both
// capacity and entry age.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	createdAt time.Time
}

// Bounded is a TTL cache holding at most capacity entries. When full, the
// entry with the earliest creation time is evicted before an insert.
// It is safe for concurrent use.
type Bounded[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]entry[V]
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Bounded cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewBounded creates a cache. A capacity below 1 is raised to 1.
func NewBounded[K comparable, V any](capacity int, ttl time.Duration, opts ...Option) *Bounded[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if capacity < 1 {
		capacity = 1
	}
	return &Bounded[K, V]{
		entries:  make(map[K]entry[V], capacity),
		capacity: capacity,
		ttl:      ttl,
		now:      o.now,
	}
}

// Get returns the value for key if it exists and is younger than the TTL.
// Stale entries are left in place; the next Set sweeps them.
func (c *Bounded[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.createdAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, overwriting any existing entry.
func (c *Bounded[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.entries) >= c.capacity {
		c.evictOldestLocked()
	}
	for k, e := range c.entries {
		if now.Sub(e.createdAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry[V]{value: value, createdAt: now}
}

// Clear removes every entry.
func (c *Bounded[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]entry[V], c.capacity)
}

// Len counts stored entries, including stale ones not yet swept.
func (c *Bounded[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Bounded[K, V]) evictOldestLocked() {
	var (
		oldestKey K
		oldest    time.Time
		found     bool
	)
	for k, e := range c.entries {
		if !found || e.createdAt.Before(oldest) {
			oldestKey, oldest, found = k, e.createdAt, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}
