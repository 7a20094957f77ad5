// Package lfu implements a standalone least-frequently-used cache with
// frequency aging.
//
// Entries live in access-count buckets; eviction takes the oldest entry
// of the minimum bucket. Plain LFU lets counts grow without bound, so a
// formerly hot key can pin itself in the cache long after it went cold.
// The aging mechanism caps the average access count: when the running
// average exceeds MaxAverage, every entry's count is reduced by
// MaxAverage/2 (floored at 1), demoting stale hot keys so they can be
// evicted through the normal path.
//
// Like package lru this is a non-adaptive baseline for comparison with
// package arc. Safe for concurrent use.
package lfu

import (
	"container/list"
	"sync"
)

// DefaultMaxAverage is the average access count above which aging kicks
// in when NewWithAging is not used.
const DefaultMaxAverage = 10

type entry[K comparable, V any] struct {
	key  K
	val  V
	freq int
	elem *list.Element // position inside the freq bucket
}

// Cache is a mutex-guarded LFU cache with max-average-count aging.
type Cache[K comparable, V any] struct {
	mu         sync.Mutex
	cap        int
	minFreq    int
	maxAverage int
	totalFreq  int // sum of recorded accesses, reduced on eviction and aging

	items   map[K]*entry[K, V]
	buckets map[int]*list.List // freq -> entries, oldest at Front
}

// New creates an LFU cache with the default aging limit.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return NewWithAging[K, V](capacity, DefaultMaxAverage)
}

// NewWithAging creates an LFU cache whose aging pass triggers once the
// average access count exceeds maxAverage. maxAverage <= 0 applies the
// default.
func NewWithAging[K comparable, V any](capacity, maxAverage int) *Cache[K, V] {
	if maxAverage <= 0 {
		maxAverage = DefaultMaxAverage
	}
	return &Cache[K, V]{
		cap:        capacity,
		maxAverage: maxAverage,
		items:      make(map[K]*entry[K, V]),
		buckets:    make(map[int]*list.List),
	}
}

// Put inserts or updates key. Updating an existing key counts as an
// access and re-buckets it.
func (c *Cache[K, V]) Put(key K, val V) {
	if c.cap <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.val = val
		c.touchLocked(e)
		return
	}
	if len(c.items) >= c.cap {
		c.evictLocked()
	}
	e := &entry[K, V]{key: key, val: val, freq: 1}
	c.items[key] = e
	c.addToBucketLocked(e)
	c.recordAccessLocked()
	c.minFreq = 1
}

// Get returns the value for key; a hit moves the entry one bucket up.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.touchLocked(e)
	return e.val, true
}

// Remove deletes key if present and reports whether it existed.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	wasMin := e.freq == c.minFreq
	c.removeFromBucketLocked(e)
	delete(c.items, key)
	c.totalFreq -= e.freq
	if wasMin {
		if _, ok := c.buckets[c.minFreq]; !ok {
			c.updateMinFreqLocked()
		}
	}
	return true
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Purge drops every entry and resets the frequency bookkeeping.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*entry[K, V])
	c.buckets = make(map[int]*list.List)
	c.minFreq = 0
	c.totalFreq = 0
}

// ---- internals (mu held) ----

// touchLocked moves e one bucket up and records the access.
func (c *Cache[K, V]) touchLocked(e *entry[K, V]) {
	c.removeFromBucketLocked(e)
	e.freq++
	c.addToBucketLocked(e)
	if _, ok := c.buckets[e.freq-1]; !ok && e.freq-1 == c.minFreq {
		c.minFreq = e.freq
	}
	c.recordAccessLocked()
}

func (c *Cache[K, V]) addToBucketLocked(e *entry[K, V]) {
	b, ok := c.buckets[e.freq]
	if !ok {
		b = list.New()
		c.buckets[e.freq] = b
	}
	e.elem = b.PushBack(e)
}

func (c *Cache[K, V]) removeFromBucketLocked(e *entry[K, V]) {
	b, ok := c.buckets[e.freq]
	if !ok {
		return
	}
	b.Remove(e.elem)
	e.elem = nil
	if b.Len() == 0 {
		delete(c.buckets, e.freq)
	}
}

// evictLocked removes the oldest entry of the minimum bucket.
func (c *Cache[K, V]) evictLocked() {
	b, ok := c.buckets[c.minFreq]
	if !ok || b.Len() == 0 {
		return
	}
	e := b.Front().Value.(*entry[K, V])
	c.removeFromBucketLocked(e)
	delete(c.items, e.key)
	c.totalFreq -= e.freq
	if _, ok := c.buckets[c.minFreq]; !ok {
		c.updateMinFreqLocked()
	}
}

// recordAccessLocked bumps the running total and runs an aging pass when
// the average access count exceeds the cap.
func (c *Cache[K, V]) recordAccessLocked() {
	c.totalFreq++
	if len(c.items) == 0 {
		return
	}
	if c.totalFreq/len(c.items) > c.maxAverage {
		c.ageLocked()
	}
}

// ageLocked subtracts maxAverage/2 from every entry's count (floored at
// 1), re-buckets everything, and recomputes the minimum and the total.
func (c *Cache[K, V]) ageLocked() {
	cut := c.maxAverage / 2
	if cut < 1 {
		cut = 1
	}
	c.totalFreq = 0
	for _, e := range c.items {
		c.removeFromBucketLocked(e)
		e.freq -= cut
		if e.freq < 1 {
			e.freq = 1
		}
		c.addToBucketLocked(e)
		c.totalFreq += e.freq
	}
	c.updateMinFreqLocked()
}

func (c *Cache[K, V]) updateMinFreqLocked() {
	c.minFreq = 0
	for f := range c.buckets {
		if c.minFreq == 0 || f < c.minFreq {
			c.minFreq = f
		}
	}
}
