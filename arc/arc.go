package arc

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/IvanBrykalov/arcache/internal/singleflight"
	"github.com/IvanBrykalov/arcache/internal/util"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
var ErrNoLoader = errors.New("arc: no Loader provided")

// partition is the capability the two halves share. The get signatures
// legitimately differ (the recency side carries the promotion signal), so
// the orchestrator holds concrete fields; the interface documents the
// common surface and keeps both types honest at compile time.
type partition[K comparable] interface {
	contains(K) bool
	checkGhost(K) bool
	grow()
	shrink() bool
	len() int
	capacity() int
	ghostLen() int
}

var (
	_ partition[int] = (*recencyPart[int, int])(nil)
	_ partition[int] = (*frequencyPart[int, int])(nil)
)

// adaptive is the orchestrator: it owns one recency partition and one
// frequency partition, routes operations between them, and moves capacity
// on ghost hits. It holds no lock of its own; each partition call is
// internally locked, so the ghost check and the subsequent route may
// interleave with other goroutines' operations on the sibling partition.
// That relaxation is accepted (see the package documentation).
type adaptive[K comparable, V any] struct {
	recency   *recencyPart[K, V]
	frequency *frequencyPart[K, V]

	opt    Options[K, V]
	closed atomic.Bool

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]

	// hot counters, padded to avoid false sharing
	_          util.CacheLinePad
	hits       util.PaddedAtomicInt64
	misses     util.PaddedAtomicInt64
	ghostHits  util.PaddedAtomicUint64
	promotions util.PaddedAtomicUint64
}

// New constructs an adaptive replacement cache with the provided Options.
// Both partitions start at Options.Capacity; their ghost stores are fixed
// at that size for the cache's lifetime. A negative capacity is treated
// as zero (every Put declines).
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.Capacity < 0 {
		opt.Capacity = 0
	}
	if opt.PromoteThreshold <= 0 {
		opt.PromoteThreshold = DefaultPromoteThreshold
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	c := &adaptive[K, V]{opt: opt}
	c.recency = newRecencyPart[K, V](opt.Capacity, opt.PromoteThreshold, opt.Metrics, opt.OnEvict)
	c.frequency = newFrequencyPart[K, V](opt.Capacity, opt.Metrics, opt.OnEvict)
	opt.Metrics.Capacity(opt.Capacity, opt.Capacity)
	return c
}

// ---- Cache[K,V] implementation ----

// Put inserts or updates k→v. A key returning from either ghost store
// re-enters through the recency partition; otherwise the write goes to
// the frequency partition only if the key is already resident there.
func (c *adaptive[K, V]) Put(k K, v V) {
	if c.closed.Load() {
		return
	}
	if c.checkGhosts(k) {
		// Returning keys earn promotion again through repeated access.
		c.recency.put(k, v)
		return
	}
	if c.frequency.contains(k) {
		c.frequency.put(k, v)
		return
	}
	c.recency.put(k, v)
}

// Get returns the value for k and a presence flag. The ghost consultation
// runs for its capacity-rebalancing side effect only; its result does not
// mask residency.
func (c *adaptive[K, V]) Get(k K) (V, bool) {
	var zero V
	if c.closed.Load() {
		return zero, false
	}
	c.checkGhosts(k)

	if v, promote, ok := c.recency.get(k); ok {
		if promote {
			// Additive promotion: the recency copy stays resident until
			// ordinary capacity pressure evicts it.
			c.frequency.put(k, v)
			c.promotions.Add(1)
			c.opt.Metrics.Promotion()
		}
		c.hits.Add(1)
		c.opt.Metrics.Hit()
		return v, true
	}
	if v, ok := c.frequency.get(k); ok {
		c.hits.Add(1)
		c.opt.Metrics.Hit()
		return v, true
	}
	c.misses.Add(1)
	c.opt.Metrics.Miss()
	return zero, false
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key (singleflight).
func (c *adaptive[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	// fast path
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return c.sf.Do(ctx, k, func() (V, error) {
		// double-check after flight join
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err == nil {
			c.Put(k, v)
		}
		return v, err
	})
}

// Len returns the combined main-store size of both partitions.
func (c *adaptive[K, V]) Len() int {
	return c.recency.len() + c.frequency.len()
}

// Stats returns a snapshot of the cache counters and partition sizes.
func (c *adaptive[K, V]) Stats() Stats {
	return Stats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		GhostHits:  c.ghostHits.Load(),
		Promotions: c.promotions.Load(),
		Evictions:  c.recency.evicts.Load() + c.frequency.evicts.Load(),

		RecencyLen:        c.recency.len(),
		RecencyCapacity:   c.recency.capacity(),
		FrequencyLen:      c.frequency.len(),
		FrequencyCapacity: c.frequency.capacity(),
	}
}

// Close marks the cache as closed. Future operations are ignored.
func (c *adaptive[K, V]) Close() error {
	c.closed.Store(true)
	return nil
}

// ---- internals ----

// checkGhosts consults both ghost stores and transfers one capacity unit
// toward the partition whose ghost recorded the key. The hit consumes the
// ghost entry. A repeat access to a recently-evicted-by-recency key reads
// as "recency pressure should increase", and symmetrically for frequency.
// Reports whether the key was found in either ghost.
func (c *adaptive[K, V]) checkGhosts(k K) bool {
	switch {
	case c.recency.checkGhost(k):
		c.ghostHits.Add(1)
		c.opt.Metrics.GhostHit(Recency)
		if c.frequency.shrink() {
			c.recency.grow()
			c.opt.Metrics.Rebalance(Recency)
			c.opt.Metrics.Capacity(c.recency.capacity(), c.frequency.capacity())
		}
		return true

	case c.frequency.checkGhost(k):
		c.ghostHits.Add(1)
		c.opt.Metrics.GhostHit(Frequency)
		if c.recency.shrink() {
			c.frequency.grow()
			c.opt.Metrics.Rebalance(Frequency)
			c.opt.Metrics.Capacity(c.recency.capacity(), c.frequency.capacity())
		}
		return true
	}
	return false
}
