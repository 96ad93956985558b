package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes Prometheus metrics for the resolver and the award
// status engine. All observation methods are nil-safe so library users can
// run without metrics.
type Collector struct {
	registry           *prometheus.Registry
	resolutionsTotal   *prometheus.CounterVec
	resolverCacheHits  prometheus.Counter
	statusLookupsTotal *prometheus.CounterVec
	transitionsTotal   prometheus.Counter
	invalidationsTotal prometheus.Counter
}

// NewCollector constructs a collector with its own registry.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	resolutionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dxtrack",
		Subsystem: "resolver",
		Name:      "resolutions_total",
		Help:      "Callsign resolutions by dataset and outcome.",
	}, []string{"dataset", "result"})

	resolverCacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dxtrack",
		Subsystem: "resolver",
		Name:      "cache_hits_total",
		Help:      "Resolutions served from the per-callsign cache.",
	})

	statusLookupsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dxtrack",
		Subsystem: "awards",
		Name:      "status_lookups_total",
		Help:      "Award status lookups by outcome (cached, computed, error).",
	}, []string{"result"})

	transitionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dxtrack",
		Subsystem: "awards",
		Name:      "transitions_total",
		Help:      "Incremental status transitions applied on the fast path.",
	})

	invalidationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dxtrack",
		Subsystem: "awards",
		Name:      "cache_invalidations_total",
		Help:      "Partial-key invalidations of the status cache.",
	})

	for _, c := range []prometheus.Collector{
		resolutionsTotal,
		resolverCacheHits,
		statusLookupsTotal,
		transitionsTotal,
		invalidationsTotal,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:           registry,
		resolutionsTotal:   resolutionsTotal,
		resolverCacheHits:  resolverCacheHits,
		statusLookupsTotal: statusLookupsTotal,
		transitionsTotal:   transitionsTotal,
		invalidationsTotal: invalidationsTotal,
	}, nil
}

// Handler returns an HTTP handler exposing the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveResolution records one resolution against a dataset
// ("current" or "historical") with its outcome ("resolved" or "unknown").
func (c *Collector) ObserveResolution(dataset, result string) {
	if c == nil {
		return
	}
	c.resolutionsTotal.WithLabelValues(dataset, result).Inc()
}

// ObserveResolverCacheHit records a resolution served from the callsign cache.
func (c *Collector) ObserveResolverCacheHit() {
	if c == nil {
		return
	}
	c.resolverCacheHits.Inc()
}

// ObserveStatusLookup records an award status lookup outcome
// ("cached", "computed", or "error").
func (c *Collector) ObserveStatusLookup(result string) {
	if c == nil {
		return
	}
	c.statusLookupsTotal.WithLabelValues(result).Inc()
}

// ObserveTransition records a fast-path transition.
func (c *Collector) ObserveTransition() {
	if c == nil {
		return
	}
	c.transitionsTotal.Inc()
}

// ObserveInvalidation records a partial-key status cache invalidation.
func (c *Collector) ObserveInvalidation() {
	if c == nil {
		return
	}
	c.invalidationsTotal.Inc()
}
