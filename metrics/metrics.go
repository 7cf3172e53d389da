package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pickem"

// Metrics holds the service's Prometheus collectors.
// A nil *Metrics is valid and records nothing, which keeps tests free of registries.
type Metrics struct {
	resultsWritten   *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	refreshRuns      *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewRegistry returns a registry carrying the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resultsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_written_total",
			Help:      "Pick outcomes written, by outcome and source.",
		}, []string{"outcome", "source"}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Requests made to the odds provider, by endpoint and status.",
		}, []string{"endpoint", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaderboard_cache_lookups_total",
			Help:      "Leaderboard cache lookups, by result.",
		}, []string{"result"}),
		refreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_runs_total",
			Help:      "Scheduled result refreshes, by status.",
		}, []string{"status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.resultsWritten,
			m.providerRequests,
			m.cacheLookups,
			m.refreshRuns,
			m.httpRequests,
			m.httpDuration,
		)
	}
	return m
}

// Handler serves the registry in the Prometheus exposition format
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// ResultWritten counts one persisted outcome. Source is "calculated" or "manual".
func (m *Metrics) ResultWritten(outcome, source string) {
	if m == nil {
		return
	}
	m.resultsWritten.WithLabelValues(outcome, source).Inc()
}

// ProviderRequest counts one odds provider call. A zero status means the request failed before a response.
func (m *Metrics) ProviderRequest(endpoint string, status int) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.providerRequests.WithLabelValues(endpoint, label).Inc()
}

// CacheHit counts a leaderboard served from cache
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss counts a leaderboard computed from storage
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// RefreshRun counts one background refresh
func (m *Metrics) RefreshRun(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.refreshRuns.WithLabelValues(status).Inc()
}

// HTTPRequest records one served request
func (m *Metrics) HTTPRequest(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
