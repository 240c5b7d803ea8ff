package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"agendad/internal/models"
	"agendad/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncFeedFailures()
	ObserveResolveDuration(duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
	SetResolvedEvents(cohort string, count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	feedFailures        prometheus.Counter
	resolveDuration     prometheus.Histogram
	persistenceDuration prometheus.Histogram
	resolvedEvents      *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncFeedFailures() {
	m.feedFailures.Inc()
}

func (m *MetricsProvider) ObserveResolveDuration(duration time.Duration) {
	m.resolveDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetResolvedEvents(cohort string, count int) {
	m.resolvedEvents.WithLabelValues(cohort).Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, prefs *models.PrefStore) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "agendad_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agendad_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agendad_cache_hits_total",
			Help: "Total number of resolution cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agendad_cache_misses_total",
			Help: "Total number of resolution cache misses",
		}),

		feedFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "agendad_feed_failures_total",
			Help: "Total number of failed upstream feed fetches",
		}),

		resolveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "agendad_resolve_duration_seconds",
			Help:    "Duration of full schedule resolutions in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "agendad_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		resolvedEvents: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "agendad_resolved_events",
			Help: "Number of events in the last resolution per cohort",
		}, []string{"cohort"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "agendad_preferences_total",
		Help: "Current number of stored user preferences",
	}, func() float64 {
		return float64(prefs.Len())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncFeedFailures()                                 {}
func (n *noopMetrics) ObserveResolveDuration(_ time.Duration)           {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetResolvedEvents(_ string, _ int)                {}
