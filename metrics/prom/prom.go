// Package prom adapts cache.Metrics onto Prometheus counters.
package prom

import (
	"github.com/lookaside-cache/lookaside/cache"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements cache.Metrics and exports three Prometheus counters.
// Safe for concurrent use; Prometheus counters are goroutine-safe even
// though the cache they instrument is not (§5) — nothing prevents a
// caller from wiring the same Adapter into several independent caches
// running on separate goroutines (cmd/benchlfu instead gives each of its
// two caches its own Adapter).
type Adapter struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
}

// New constructs a Prometheus metrics adapter and registers its counters.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Lookups that found a resident key",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Lookups that found no resident key",
			ConstLabels: constLabels,
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "evictions_total",
			Help:        "Entries reclaimed by the eviction policy to make room for an insert",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.evictions)
	return a
}

// RecordTick implements cache.Metrics.
func (a *Adapter) RecordTick(e cache.Event) {
	switch e {
	case cache.EventHit:
		a.hits.Inc()
	case cache.EventMiss:
		a.misses.Inc()
	case cache.EventEviction:
		a.evictions.Inc()
	}
}

var _ cache.Metrics = (*Adapter)(nil)
