package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "warpviz"

// Metrics holds all Prometheus metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Interpreter metrics
	InterpretTotal    *prometheus.CounterVec
	InterpretDuration *prometheus.HistogramVec

	// Store metrics
	StoreWrites *prometheus.CounterVec

	startTime time.Time
	storeOnce sync.Once

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current values for the JSON API.
type Snapshot struct {
	TotalRequests   int64   `json:"total_requests"`
	TotalErrors     int64   `json:"total_errors"`
	TotalRuns       int64   `json:"total_runs"`
	FailedRuns      int64   `json:"failed_runs"`
	AverageRunMilli float64 `json:"average_run_ms"`
	UptimeSeconds   float64 `json:"uptime_seconds"`

	runSeconds float64
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		InterpretTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "interpret_total",
				Help:      "Total number of paragraph runs by interpreter and result code",
			},
			[]string{"interpreter", "code"},
		),
		InterpretDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "interpret_duration_seconds",
				Help:      "Paragraph run duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"interpreter"},
		),

		StoreWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_writes_total",
				Help:      "Store mutations made through the host API",
			},
			[]string{"op"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// TrackStore exposes the entry count of s. Only the first call registers.
func (m *Metrics) TrackStore(s interface{ Len() int }) {
	m.storeOnce.Do(func() {
		promauto.With(m.registry).NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_entries",
				Help:      "Number of entries in the shared store",
			},
			func() float64 { return float64(s.Len()) },
		)
	})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordInterpret records one paragraph run.
func (m *Metrics) RecordInterpret(name, code string, duration time.Duration) {
	m.InterpretTotal.WithLabelValues(name, code).Inc()
	m.InterpretDuration.WithLabelValues(name).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRuns++
	if code != "SUCCESS" {
		m.snapshot.FailedRuns++
	}
	m.snapshot.runSeconds += duration.Seconds()
	m.mu.Unlock()
}

// RecordStoreWrite counts a put or remove.
func (m *Metrics) RecordStoreWrite(op string) {
	m.StoreWrites.WithLabelValues(op).Inc()
}

// Snapshot returns a copy of the current values.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	s := m.snapshot
	m.mu.RUnlock()

	if s.TotalRuns > 0 {
		s.AverageRunMilli = s.runSeconds / float64(s.TotalRuns) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
