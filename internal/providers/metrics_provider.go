package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cjd/internal/models"
	"cjd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	SetMediaBytes(bytes int64)
	IncBadgeAwards(category string)
	SetLockState(state string)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	mediaBytes          prometheus.Gauge
	badgeAwards         *prometheus.CounterVec
	lockState           prometheus.Gauge
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

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetMediaBytes(bytes int64) {
	m.mediaBytes.Set(float64(bytes))
}

func (m *MetricsProvider) IncBadgeAwards(category string) {
	m.badgeAwards.WithLabelValues(category).Inc()
}

var lockStateCodes = map[string]float64{
	models.LockActive:           0,
	models.LockGracePeriod:      1,
	models.LockCompleted:        2,
	models.LockTimeManipulation: 3,
}

func (m *MetricsProvider) SetLockState(state string) {
	m.lockState.Set(lockStateCodes[state])
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

func NewMetricsProvider(conf *structures.Config, store *models.Store) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cjd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cjd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cjd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cjd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cjd_persistence_duration_seconds",
			Help:    "Duration of store snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		mediaBytes: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cjd_media_bytes",
			Help: "Total bytes of stored media files",
		}),

		badgeAwards: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cjd_badge_awards_total",
			Help: "Badges awarded, by category",
		}, []string{"category"}),

		lockState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cjd_lock_state",
			Help: "Current service lock state (0 active, 1 grace, 2 completed, 3 tamper)",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cjd_entries_total",
		Help: "Current number of journal entries",
	}, func() float64 {
		return float64(store.EntriesCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetMediaBytes(_ int64)                            {}
func (n *noopMetrics) IncBadgeAwards(_ string)                          {}
func (n *noopMetrics) SetLockState(_ string)                            {}
