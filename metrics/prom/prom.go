// Package prom exports arc cache metrics to Prometheus.
package prom

import (
	"github.com/IvanBrykalov/arcache/arc"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements arc.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits       prometheus.Counter
	misses     prometheus.Counter
	evicts     *prometheus.CounterVec
	ghostHits  *prometheus.CounterVec
	rebalances *prometheus.CounterVec
	promotions prometheus.Counter
	capacity   *prometheus.GaugeVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache misses",
			ConstLabels: constLabels,
		}),
		evicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "evictions_total",
				Help:        "Entries moved to a ghost store, by partition",
				ConstLabels: constLabels,
			},
			[]string{"partition"},
		),
		ghostHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "ghost_hits_total",
				Help:        "Repeat accesses caught by a ghost store, by partition",
				ConstLabels: constLabels,
			},
			[]string{"partition"},
		),
		rebalances: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "rebalances_total",
				Help:        "Capacity units granted, by receiving partition",
				ConstLabels: constLabels,
			},
			[]string{"partition"},
		),
		promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "promotions_total",
			Help:        "Recency-resident keys copied into the frequency partition",
			ConstLabels: constLabels,
		}),
		capacity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "capacity_entries",
				Help:        "Main-store capacity, by partition",
				ConstLabels: constLabels,
			},
			[]string{"partition"},
		),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.ghostHits, a.rebalances, a.promotions, a.capacity)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Evict increments the eviction counter for the partition.
func (a *Adapter) Evict(p arc.Partition) {
	a.evicts.WithLabelValues(p.String()).Inc()
}

// GhostHit increments the ghost-hit counter for the partition.
func (a *Adapter) GhostHit(p arc.Partition) {
	a.ghostHits.WithLabelValues(p.String()).Inc()
}

// Rebalance increments the rebalance counter for the receiving partition.
func (a *Adapter) Rebalance(to arc.Partition) {
	a.rebalances.WithLabelValues(to.String()).Inc()
}

// Promotion increments the promotion counter.
func (a *Adapter) Promotion() { a.promotions.Inc() }

// Capacity updates both capacity gauges.
func (a *Adapter) Capacity(recency, frequency int) {
	a.capacity.WithLabelValues(arc.Recency.String()).Set(float64(recency))
	a.capacity.WithLabelValues(arc.Frequency.String()).Set(float64(frequency))
}

// Compile-time check: ensure Adapter implements arc.Metrics.
var _ arc.Metrics = (*Adapter)(nil)
