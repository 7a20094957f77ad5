// Package arc provides a generic, in-process Adaptive Replacement Cache:
// a self-tuning eviction policy that blends an LRU-like recency partition
// with an LFU-like frequency partition and shifts capacity between them
// based on which partition's ghost history records a repeat access.
//
// Design
//
//   - Partitions: the cache owns two cooperating stores. The recency
//     partition keeps an intrusive MRU↔LRU list; the frequency partition
//     keeps access-count buckets with a tracked minimum. Each partition
//     also keeps a bounded "ghost" record of recently evicted keys
//     (keys only, no values).
//
//   - Adaptation: every Put/Get first consults both ghost stores. A hit in
//     the recency ghost means a recently-evicted-by-recency key came back,
//     so one capacity unit moves from the frequency partition to the
//     recency partition (and symmetrically for the frequency ghost). Ghost
//     capacities are frozen at the construction-time capacity and do not
//     follow later transfers.
//
//   - Promotion: a recency-resident key accessed PromoteThreshold times is
//     additionally written into the frequency partition. The write is
//     additive: the recency copy stays resident until ordinary capacity
//     pressure evicts it, so a key may briefly live in both main stores.
//
//   - Concurrency: each partition guards its own state with one mutex held
//     for the duration of each operation; the orchestrator holds no lock of
//     its own and composes internally-locked partition calls. The
//     checkGhosts + route sequence is therefore not atomic across the two
//     partitions. This relaxation is deliberate: a global lock would
//     reintroduce the contention that sharding (see package sharded) exists
//     to avoid. All operations remain individually consistent and total.
//
//   - Metrics: Options.Metrics receives hit/miss/ghost-hit/promotion/
//     capacity signals. NoopMetrics is the default; metrics/prom provides a
//     Prometheus adapter.
//
// Basic usage
//
//	c := arc.New[string, []byte](arc.Options[string, []byte]{Capacity: 10_000})
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//
// With GetOrLoad (singleflight)
//
//	c := arc.New[string, string](arc.Options[string, string]{
//	    Capacity: 1024,
//	    Loader: func(ctx context.Context, k string) (string, error) {
//	        return "v:" + k, nil
//	    },
//	})
//	v, err := c.GetOrLoad(context.Background(), "key")
//
// Failure semantics
//
// Absence is reported via boolean results, never errors: a miss is
// indistinguishable from "evicted long ago". A cache built with Capacity 0
// degrades Put to a no-op without corrupting any state. The only error the
// package returns is ErrNoLoader from GetOrLoad.
package arc
