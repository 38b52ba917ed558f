// Package cache provides an in-memory cache with TTL and LRU eviction.
// It fronts whole search results; nothing is persisted.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultCapacity is used when a non-positive capacity is given.
const DefaultCapacity = 100

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	element   *list.Element
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Stats are cache counters since creation or the last Clear.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// MemoryCache is an LRU cache whose entries expire after a TTL.
type MemoryCache[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*entry[V]
	lruList  *list.List

	hits, misses, evictions int64
}

// NewMemoryCache creates a cache holding at most capacity entries, each
// living for ttl. A zero ttl means entries only leave by eviction.
//
// Example:
//
//	results := cache.NewMemoryCache[*domain.SearchResult](256, 10*time.Minute)
func NewMemoryCache[V any](capacity int, ttl time.Duration) *MemoryCache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl < 0 {
		ttl = 0
	}
	return &MemoryCache[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V]),
		lruList:  list.New(),
	}
}

// Get returns the value for key if present and not expired, marking it as
// recently used.
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if e.expired(time.Now()) {
		c.deleteEntry(e)
		c.misses++
		return zero, false
	}

	c.lruList.MoveToFront(e.element)
	c.hits++
	return e.value, true
}

// Set stores value under key with the cache TTL.
func (c *MemoryCache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with an explicit TTL (0 = no expiry).
func (c *MemoryCache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if existing, ok := c.items[key]; ok {
		existing.value = value
		existing.expiresAt = expiresAt
		c.lruList.MoveToFront(existing.element)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictLRU()
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	e.element = c.lruList.PushFront(e)
	c.items[key] = e
}

// Delete removes key.
func (c *MemoryCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.deleteEntry(e)
	}
}

// Clear removes every entry and resets the counters.
func (c *MemoryCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry[V])
	c.lruList.Init()
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// Size returns the number of stored entries, expired ones included until
// they are cleaned.
func (c *MemoryCache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity returns the maximum number of entries.
func (c *MemoryCache[V]) Capacity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capacity
}

// TTL returns the default entry lifetime.
func (c *MemoryCache[V]) TTL() time.Duration {
	return c.ttl
}

// Stats returns a snapshot of the counters.
func (c *MemoryCache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.items),
		Capacity:  c.capacity,
	}
}

// CleanExpired removes expired entries and returns how many were removed.
func (c *MemoryCache[V]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for _, e := range c.items {
		if e.expired(now) {
			c.deleteEntry(e)
			removed++
		}
	}
	return removed
}

// Keys returns the live keys, most recently used first.
func (c *MemoryCache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	keys := make([]string, 0, len(c.items))
	for el := c.lruList.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry[V])
		if !e.expired(now) {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// evictLRU must be called with c.mu held.
func (c *MemoryCache[V]) evictLRU() {
	if el := c.lruList.Back(); el != nil {
		c.deleteEntry(el.Value.(*entry[V]))
		c.evictions++
	}
}

// deleteEntry must be called with c.mu held.
func (c *MemoryCache[V]) deleteEntry(e *entry[V]) {
	delete(c.items, e.key)
	c.lruList.Remove(e.element)
}

// StartCleanupWorker runs CleanExpired every interval until ctx is done.
func (c *MemoryCache[V]) StartCleanupWorker(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.CleanExpired()
			case <-ctx.Done():
				return
			}
		}
	}()
}
