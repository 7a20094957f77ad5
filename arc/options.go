package arc

import "context"

// DefaultPromoteThreshold is the access count at which a recency-resident
// key becomes eligible for the frequency partition when Options leaves
// PromoteThreshold unset.
const DefaultPromoteThreshold = 3

// Options configures the cache. Zero values are safe; defaults are
// applied in New():
//   - PromoteThreshold <= 0 => DefaultPromoteThreshold
//   - nil Metrics           => NoopMetrics
type Options[K comparable, V any] struct {
	// Capacity is the initial entry limit of each partition's main
	// store. Ghost capacities are frozen at this value and do not follow
	// later capacity transfers. With Capacity 0, Put is a no-op.
	Capacity int

	// PromoteThreshold is the access count at which a recency-resident
	// key is additionally written into the frequency partition.
	PromoteThreshold int

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called whenever a partition moves a resident entry to
	// its ghost store. It runs under the partition lock; keep callbacks
	// lightweight.
	OnEvict func(k K, v V)

	// Metrics receives hit/miss/evict/ghost/promotion/capacity signals.
	Metrics Metrics
}
