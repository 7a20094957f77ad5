// Package sharded partitions a key space across N independent cache
// instances to reduce lock contention. The shards never cooperate: each
// key is served by exactly one shard chosen by hash, so the wrapper adds
// no cross-shard consistency concerns on top of the shard's own.
package sharded

import (
	"github.com/IvanBrykalov/arcache/internal/util"
)

// Store is the minimal surface a shard must provide. Both the adaptive
// cache and the baseline policies satisfy it.
type Store[K comparable, V any] interface {
	Put(k K, v V)
	Get(k K) (V, bool)
}

// Cache fans operations out to hash-selected shards.
type Cache[K comparable, V any] struct {
	shards []Store[K, V]
	hash   func(K) uint64
}

// New builds a sharded cache: capacity is split evenly across n shards
// (ceil division) and factory is called once per shard with its slice of
// the capacity. n <= 0 picks a heuristic from CPU parallelism.
func New[K comparable, V any](capacity, n int, factory func(capacity int) Store[K, V]) *Cache[K, V] {
	if n <= 0 {
		n = util.ReasonableShardCount()
	}
	per := (capacity + n - 1) / n

	shards := make([]Store[K, V], n)
	for i := range shards {
		shards[i] = factory(per)
	}
	return &Cache[K, V]{
		shards: shards,
		hash:   util.Fnv64a[K],
	}
}

// Put routes the write to the key's shard.
func (c *Cache[K, V]) Put(k K, v V) {
	c.shard(k).Put(k, v)
}

// Get routes the read to the key's shard.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	return c.shard(k).Get(k)
}

// Shards returns the number of shards.
func (c *Cache[K, V]) Shards() int { return len(c.shards) }

func (c *Cache[K, V]) shard(k K) Store[K, V] {
	return c.shards[util.ShardIndex(c.hash(k), len(c.shards))]
}
