// Package lru implements a standalone least-recently-used cache and an
// LRU-K admission variant.
//
// These are single-policy baselines: unlike package arc they never adapt
// to the workload, which makes them the reference points the cmd/bench
// driver compares the adaptive cache against. Both are safe for
// concurrent use; wrap them with package sharded to spread lock
// contention across multiple instances.
package lru

import "sync"

type entry[K comparable, V any] struct {
	key        K
	val        V
	prev, next *entry[K, V]
}

// Cache is a mutex-guarded LRU cache. Put and Get both move the entry to
// the most-recently-used position.
type Cache[K comparable, V any] struct {
	mu    sync.Mutex
	cap   int
	items map[K]*entry[K, V]

	// Sentinel-bounded list: head.next is MRU, tail.prev is LRU.
	head, tail *entry[K, V]
}

// New creates an LRU cache holding up to capacity entries. A capacity
// <= 0 yields a cache that declines every Put.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	head := &entry[K, V]{}
	tail := &entry[K, V]{}
	head.next = tail
	tail.prev = head

	return &Cache[K, V]{
		cap:   capacity,
		items: make(map[K]*entry[K, V]),
		head:  head,
		tail:  tail,
	}
}

// Put inserts or updates key, evicting the LRU entry on overflow.
func (c *Cache[K, V]) Put(key K, val V) {
	if c.cap <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.val = val
		c.moveToFront(e)
		return
	}
	if len(c.items) >= c.cap {
		lru := c.tail.prev
		c.unlink(lru)
		delete(c.items, lru.key)
	}
	e := &entry[K, V]{key: key, val: val}
	c.items[key] = e
	c.pushFront(e)
}

// Get returns the value for key and promotes it to MRU on a hit.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.val, true
}

// Contains reports residency without updating recency.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// Remove deletes key if present and reports whether it existed.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.unlink(e)
	delete(c.items, key)
	return true
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// ---- list plumbing (mu held) ----

func (c *Cache[K, V]) pushFront(e *entry[K, V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *Cache[K, V]) unlink(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
}

func (c *Cache[K, V]) moveToFront(e *entry[K, V]) {
	c.unlink(e)
	c.pushFront(e)
}
