package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the agent.
type Metrics struct {
	registry               *prometheus.Registry
	requestsTotal          prometheus.Counter
	errorsTotal            prometheus.Counter
	sessionsLoadedTotal    prometheus.Counter
	segmentsCommittedTotal prometheus.Counter
	loopSeeksTotal         prometheus.Counter
	activeSegments         prometheus.Gauge
}

// New creates and registers Prometheus metrics for the agent.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loopdeck_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loopdeck_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	sessionsLoadedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loopdeck_sessions_loaded_total",
		Help: "Total number of videos loaded into a session",
	})
	segmentsCommittedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loopdeck_segments_committed_total",
		Help: "Total number of loop segments committed",
	})
	loopSeeksTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loopdeck_loop_seeks_total",
		Help: "Total number of loop-back seeks issued by the synchronizer",
	})
	activeSegments := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "loopdeck_active_segments",
		Help: "Number of segments in the current session",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		sessionsLoadedTotal,
		segmentsCommittedTotal,
		loopSeeksTotal,
		activeSegments,
	)

	return &Metrics{
		registry:               registry,
		requestsTotal:          requestsTotal,
		errorsTotal:            errorsTotal,
		sessionsLoadedTotal:    sessionsLoadedTotal,
		segmentsCommittedTotal: segmentsCommittedTotal,
		loopSeeksTotal:         loopSeeksTotal,
		activeSegments:         activeSegments,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncSessionsLoaded increments the sessions loaded counter.
func (m *Metrics) IncSessionsLoaded() {
	m.sessionsLoadedTotal.Inc()
}

// IncSegmentsCommitted increments the segments committed counter.
func (m *Metrics) IncSegmentsCommitted() {
	m.segmentsCommittedTotal.Inc()
}

// IncLoopSeeks increments the loop-back seek counter.
func (m *Metrics) IncLoopSeeks() {
	m.loopSeeksTotal.Inc()
}

// SetActiveSegments sets the active segments gauge.
func (m *Metrics) SetActiveSegments(n int) {
	m.activeSegments.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
