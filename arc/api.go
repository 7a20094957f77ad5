package arc

import "context"

// Cache is an in-process adaptive replacement cache.
// All methods are safe for concurrent use by multiple goroutines.
//
// Typical operation cost is amortized O(1): a constant number of map
// accesses and pointer fixes under the partition locks.
type Cache[K comparable, V any] interface {
	// Put inserts or updates k→v. It always succeeds unless the total
	// capacity is zero, in which case it is a no-op.
	Put(k K, v V)

	// Get returns the value for k if resident in either partition, plus
	// a presence flag. A hit also mutates recency/frequency/ghost state:
	// ghost consultation may transfer capacity, and crossing the
	// promotion threshold copies the entry into the frequency partition.
	Get(k K) (V, bool)

	// GetOrLoad returns the value for k, loading it via Options.Loader
	// on miss. Concurrent loads for the same key are coalesced
	// (singleflight). If no Loader was configured, returns ErrNoLoader.
	GetOrLoad(ctx context.Context, k K) (V, error)

	// Len returns the number of resident entries across both main
	// stores. A key inside its dual-residency window (promoted but not
	// yet evicted from the recency partition) is counted twice.
	Len() int

	// Stats returns a snapshot of operation counters and partition
	// sizes.
	Stats() Stats

	// Close marks the cache closed; later operations are ignored.
	Close() error
}

// Stats is a point-in-time snapshot of cache counters. Counters are read
// atomically but the snapshot as a whole is not; concurrent operations
// may land between fields.
type Stats struct {
	Hits       int64
	Misses     int64
	GhostHits  uint64
	Promotions uint64
	Evictions  uint64

	RecencyLen        int
	RecencyCapacity   int
	FrequencyLen      int
	FrequencyCapacity int
}
