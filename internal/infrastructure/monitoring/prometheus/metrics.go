package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/turtacn/molgen/internal/application/molgen"
)

var (
	DefaultHTTPDurationBuckets       = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultGenerationDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
)

// AppMetrics holds every MolGen series.
type AppMetrics struct {
	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPActiveRequests  prometheus.Gauge
}

// NewAppMetrics registers all series on c.
func NewAppMetrics(c *Collector) *AppMetrics {
	return &AppMetrics{
		GenerationsTotal: c.counterVec("generations_total",
			"Molecule generations by outcome.", "status"),
		GenerationDuration: c.histogramVec("generation_duration_seconds",
			"Time to build, describe and render a molecule.", DefaultGenerationDurationBuckets, "status"),
		CacheHitsTotal:   c.counter("cache_hits_total", "Generation result cache hits."),
		CacheMissesTotal: c.counter("cache_misses_total", "Generation result cache misses."),

		HTTPRequestsTotal: c.counterVec("http_requests_total",
			"Total HTTP requests.", "method", "path", "status_code"),
		HTTPRequestDuration: c.histogramVec("http_request_duration_seconds",
			"HTTP request duration.", DefaultHTTPDurationBuckets, "method", "path"),
		HTTPActiveRequests: c.gauge("http_active_requests", "In-flight HTTP requests."),
	}
}

var _ molgen.Recorder = (*AppMetrics)(nil)

func (m *AppMetrics) ObserveGeneration(status string, elapsed time.Duration) {
	m.GenerationsTotal.WithLabelValues(status).Inc()
	m.GenerationDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

func (m *AppMetrics) CacheHit()  { m.CacheHitsTotal.Inc() }
func (m *AppMetrics) CacheMiss() { m.CacheMissesTotal.Inc() }

// RequestStarted marks a request in flight until its ObserveHTTP call.
func (m *AppMetrics) RequestStarted() { m.HTTPActiveRequests.Inc() }

// ObserveHTTP records one finished request. path should be the route
// template, not the raw URL, to keep label cardinality bounded.
func (m *AppMetrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
	m.HTTPActiveRequests.Dec()
}

//Personal.AI order the ending
