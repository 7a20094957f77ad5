package arc

// Partition identifies which half of the cache produced a signal.
type Partition int

const (
	// Recency is the LRU-like partition.
	Recency Partition = iota
	// Frequency is the LFU-like partition.
	Frequency
)

// String returns a stable label value for the partition.
func (p Partition) String() string {
	if p == Frequency {
		return "frequency"
	}
	return "recency"
}

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	// Evict is recorded when a partition moves a resident entry to its
	// ghost store.
	Evict(Partition)
	// GhostHit is recorded when a key is found (and consumed) in a
	// partition's ghost store.
	GhostHit(Partition)
	// Rebalance is recorded when one capacity unit is granted to the
	// given partition.
	Rebalance(to Partition)
	// Promotion is recorded when a recency-resident key is copied into
	// the frequency partition.
	Promotion()
	// Capacity reports both partitions' main-store capacities after a
	// change.
	Capacity(recency, frequency int)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// Safe for concurrent use; the default when no backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                            {}
func (NoopMetrics) Miss()                           {}
func (NoopMetrics) Evict(Partition)                 {}
func (NoopMetrics) GhostHit(Partition)              {}
func (NoopMetrics) Rebalance(Partition)             {}
func (NoopMetrics) Promotion()                      {}
func (NoopMetrics) Capacity(recency, frequency int) {}

var _ Metrics = NoopMetrics{}
