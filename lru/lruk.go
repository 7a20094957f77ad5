package lru

// KCache is an LRU-K admission filter in front of an LRU cache: a key
// enters the main cache only after it has been seen K times. The access
// history is itself a bounded LRU of counters, so cold keys age out of
// the history before they ever pollute the main cache.
//
// The two internal caches lock independently; a Get and a Put racing on
// the same key may each observe a consistent but different history count,
// which only delays admission by one access.
type KCache[K comparable, V any] struct {
	main    *Cache[K, V]
	history *Cache[K, int] // key -> observed access count
	k       int
}

// NewK creates an LRU-K cache. k <= 1 degenerates to plain LRU
// admission; historyCapacity bounds how many candidate keys are tracked.
func NewK[K comparable, V any](capacity, historyCapacity, k int) *KCache[K, V] {
	if k < 1 {
		k = 1
	}
	return &KCache[K, V]{
		main:    New[K, V](capacity),
		history: New[K, int](historyCapacity),
		k:       k,
	}
}

// Get returns the value if the key has been admitted. A miss still
// counts toward the admission threshold.
func (c *KCache[K, V]) Get(key K) (V, bool) {
	if v, ok := c.main.Get(key); ok {
		return v, true
	}
	n, _ := c.history.Get(key)
	c.history.Put(key, n+1)
	var zero V
	return zero, false
}

// Put records an access and writes through to the main cache once the
// key's observed count reaches K. Updates to already-admitted keys are
// applied directly.
func (c *KCache[K, V]) Put(key K, val V) {
	if c.main.Contains(key) {
		c.main.Put(key, val)
		return
	}
	n, _ := c.history.Get(key)
	n++
	c.history.Put(key, n)

	if n >= c.k {
		c.history.Remove(key)
		c.main.Put(key, val)
	}
}

// Len returns the number of admitted entries (history is not counted).
func (c *KCache[K, V]) Len() int { return c.main.Len() }
