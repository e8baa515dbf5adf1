package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bavobbr/dmon-scheduler/internal/orchestrator"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the solve-job lifecycle.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	solveStarted    prometheus.Counter
	solveFinished   *prometheus.CounterVec
	solveDuration   prometheus.Histogram
	tickDuration    prometheus.Histogram
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	solveStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solve_jobs_started_total",
		Help: "Total solve jobs submitted to the solving service",
	})

	solveFinished := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solve_jobs_finished_total",
		Help: "Total solve jobs reaching a terminal state",
	}, []string{"state"})

	solveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solve_job_duration_seconds",
		Help:    "Wall-clock time from submission to terminal state",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	tickDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solve_poll_tick_duration_seconds",
		Help:    "Duration of one polling tick including dependent fetches",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, solveStarted, solveFinished, solveDuration, tickDuration, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solveStarted:    solveStarted,
		solveFinished:   solveFinished,
		solveDuration:   solveDuration,
		tickDuration:    tickDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// SolveStarted implements orchestrator.Metrics.
func (m *MetricsService) SolveStarted() {
	if m == nil {
		return
	}
	m.solveStarted.Inc()
}

// SolveFinished implements orchestrator.Metrics.
func (m *MetricsService) SolveFinished(state orchestrator.State, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.solveFinished.WithLabelValues(string(state)).Inc()
	m.solveDuration.Observe(elapsed.Seconds())
}

// PollTick implements orchestrator.Metrics.
func (m *MetricsService) PollTick(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(elapsed.Seconds())
}
