// Package prom adapts skiplist.Metrics and icache.Metrics to Prometheus
// counters and gauges.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ivbrk/priocache/icache"
	"github.com/ivbrk/priocache/skiplist"
)

// CacheAdapter implements icache.Metrics and exports Prometheus
// counters/gauges. Safe for concurrent use; Prometheus metric types are
// goroutine-safe.
type CacheAdapter struct {
	hits    prometheus.Counter
	misses  prometheus.Counter
	evicts  *prometheus.CounterVec
	sizeEnt prometheus.Gauge
}

// NewCacheAdapter constructs a Prometheus metrics adapter for icache.Cache.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func NewCacheAdapter(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *CacheAdapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &CacheAdapter{
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
				Help:        "Cache evictions by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		sizeEnt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of resident entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.sizeEnt)
	return a
}

func (a *CacheAdapter) Hit()  { a.hits.Inc() }
func (a *CacheAdapter) Miss() { a.misses.Inc() }

func (a *CacheAdapter) Evict(r icache.EvictReason) {
	a.evicts.WithLabelValues(cacheEvictReason(r)).Inc()
}

func (a *CacheAdapter) Size(entries int) { a.sizeEnt.Set(float64(entries)) }

func cacheEvictReason(r icache.EvictReason) string {
	switch r {
	case icache.EvictTTL:
		return "ttl"
	case icache.EvictCapacity:
		return "capacity"
	default:
		return "unknown"
	}
}

// Compile-time check: ensure CacheAdapter implements icache.Metrics.
var _ icache.Metrics = (*CacheAdapter)(nil)

// SkiplistAdapter implements skiplist.Metrics and exports Prometheus
// counters/gauges for the underlying priority skip list's structural
// events: inserts, removals, min-evictions, background unlink activity,
// and contention retries.
type SkiplistAdapter struct {
	inserted        prometheus.Counter
	removed         prometheus.Counter
	evictedMin      prometheus.Counter
	unlinkScheduled prometheus.Counter
	unlinkCompleted prometheus.Counter
	contentionRetry prometheus.Counter
	orchFailed      prometheus.Counter
	count           prometheus.Gauge
}

// NewSkiplistAdapter constructs a Prometheus metrics adapter for
// skiplist.List.
func NewSkiplistAdapter(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *SkiplistAdapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}
	a := &SkiplistAdapter{
		inserted:        counter("inserted_total", "Keys spliced into the list"),
		removed:         counter("removed_total", "Keys logically deleted via TryRemove or TryRemoveMin"),
		evictedMin:      counter("evicted_min_total", "Keys removed via TryRemoveMin"),
		unlinkScheduled: counter("unlink_scheduled_total", "Background unlink jobs scheduled"),
		unlinkCompleted: counter("unlink_completed_total", "Background unlink jobs completed"),
		contentionRetry: counter("contention_retry_total", "Writer retries due to lost validation races"),
		orchFailed:      counter("orchestrator_failed_total", "Background unlink orchestrator failures"),
		count: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "count",
			Help:        "Current element count",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.inserted, a.removed, a.evictedMin, a.unlinkScheduled,
		a.unlinkCompleted, a.contentionRetry, a.orchFailed, a.count)
	return a
}

func (a *SkiplistAdapter) Inserted()           { a.inserted.Inc() }
func (a *SkiplistAdapter) Removed()            { a.removed.Inc() }
func (a *SkiplistAdapter) EvictedMin()         { a.evictedMin.Inc() }
func (a *SkiplistAdapter) UnlinkScheduled()    { a.unlinkScheduled.Inc() }
func (a *SkiplistAdapter) UnlinkCompleted()    { a.unlinkCompleted.Inc() }
func (a *SkiplistAdapter) ContentionRetry()    { a.contentionRetry.Inc() }
func (a *SkiplistAdapter) OrchestratorFailed() { a.orchFailed.Inc() }
func (a *SkiplistAdapter) Count(n int)         { a.count.Set(float64(n)) }

// Compile-time check: ensure SkiplistAdapter implements skiplist.Metrics.
var _ skiplist.Metrics = (*SkiplistAdapter)(nil)
