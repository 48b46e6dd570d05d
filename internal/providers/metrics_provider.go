package providers

import (
	"comicbot/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	ObserveCatalogRequest(endpoint string, status int, duration time.Duration)
	IncCommand(command string)
	AddAnnouncements(count int)
	IncSelectorOutcome(outcome string)
	SetFollowedTotal(count int)
	SetOpenSessions(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	catalogRequests     *prometheus.CounterVec
	catalogDuration     *prometheus.HistogramVec
	commandsTotal       *prometheus.CounterVec
	announcementsTotal  prometheus.Counter
	selectorOutcomes    *prometheus.CounterVec
	followedTotal       prometheus.Gauge
	openSessions        prometheus.Gauge
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

// ObserveCatalogRequest records one catalog call. status 0 means the request never got a response.
func (m *MetricsProvider) ObserveCatalogRequest(endpoint string, status int, duration time.Duration) {
	bucket := "error"
	if status > 0 {
		bucket = httpStatusBucket(status)
	}
	m.catalogRequests.WithLabelValues(endpoint, bucket).Inc()
	m.catalogDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCommand(command string) {
	m.commandsTotal.WithLabelValues(command).Inc()
}

func (m *MetricsProvider) AddAnnouncements(count int) {
	m.announcementsTotal.Add(float64(count))
}

func (m *MetricsProvider) IncSelectorOutcome(outcome string) {
	m.selectorOutcomes.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) SetFollowedTotal(count int) {
	m.followedTotal.Set(float64(count))
}

func (m *MetricsProvider) SetOpenSessions(count int) {
	m.openSessions.Set(float64(count))
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

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "comicbot_http_requests_total",
			Help: "Total number of keep-alive HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "comicbot_http_request_duration_seconds",
			Help:    "Keep-alive HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "comicbot_catalog_cache_hits_total",
			Help: "Total number of catalog cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "comicbot_catalog_cache_misses_total",
			Help: "Total number of catalog cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "comicbot_persistence_duration_seconds",
			Help:    "Duration of follow store writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		catalogRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "comicbot_catalog_requests_total",
			Help: "Total number of catalog API requests",
		}, []string{"endpoint", "status"}),

		catalogDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "comicbot_catalog_request_duration_seconds",
			Help:    "Catalog API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		commandsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "comicbot_commands_total",
			Help: "Total number of chat commands handled",
		}, []string{"command"}),

		announcementsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "comicbot_announcements_total",
			Help: "Total number of release announcements sent",
		}),

		selectorOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "comicbot_selector_sessions_total",
			Help: "Finished selection dialogs by outcome",
		}, []string{"outcome"}),

		followedTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "comicbot_followed_series_total",
			Help: "Number of followed series across all users",
		}),

		openSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "comicbot_selector_open_sessions",
			Help: "Selection dialogs currently waiting for a reply",
		}),
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                       {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)       {}
func (n *noopMetrics) IncCacheHits()                                          {}
func (n *noopMetrics) IncCacheMisses()                                        {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)             {}
func (n *noopMetrics) ObserveCatalogRequest(_ string, _ int, _ time.Duration) {}
func (n *noopMetrics) IncCommand(_ string)                                    {}
func (n *noopMetrics) AddAnnouncements(_ int)                                 {}
func (n *noopMetrics) IncSelectorOutcome(_ string)                            {}
func (n *noopMetrics) SetFollowedTotal(_ int)                                 {}
func (n *noopMetrics) SetOpenSessions(_ int)                                  {}
