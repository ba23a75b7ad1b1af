// Package metrics exposes Prometheus collectors for the FitQuest server:
// HTTP traffic plus the XP, level-up and hydration counters fed by the
// activity endpoints.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fitquest"

// Sources of XP.
const (
	SourceWater   = "water"
	SourceWorkout = "workout"
)

// Metrics owns a private registry so several servers (or tests) can coexist
// in one process.
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	xpAwarded   *prometheus.CounterVec
	levelUps    prometheus.Counter
	waterCups   prometheus.Counter
	workouts    prometheus.Counter
	loginResult *prometheus.CounterVec
}

// New builds the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "route"}),

		xpAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "progression",
			Name:      "xp_awarded_total",
			Help:      "Experience points awarded, by source.",
		}, []string{"source"}),
		levelUps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "progression",
			Name:      "level_ups_total",
			Help:      "Updates that raised a user's level.",
		}),
		waterCups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "activity",
			Name:      "water_cups_total",
			Help:      "Cups of water logged.",
		}),
		workouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "activity",
			Name:      "workouts_total",
			Help:      "Workouts logged.",
		}),
		loginResult: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
	}

	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.xpAwarded,
		m.levelUps,
		m.waterCups,
		m.workouts,
		m.loginResult,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	return m
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// StartRequest marks a request as in flight and returns the func that ends it.
func (m *Metrics) StartRequest() func() {
	m.httpInFlight.Inc()
	return m.httpInFlight.Dec
}

// ObserveRequest records a finished HTTP request. route is the matched route
// pattern, never the raw path.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveProgress records XP gained from source and whether it leveled up.
func (m *Metrics) ObserveProgress(source string, xp int64, leveledUp bool) {
	if xp > 0 {
		m.xpAwarded.WithLabelValues(source).Add(float64(xp))
	}
	if leveledUp {
		m.levelUps.Inc()
	}
}

// ObserveWater records cups logged in one call.
func (m *Metrics) ObserveWater(cups int64) {
	if cups > 0 {
		m.waterCups.Add(float64(cups))
	}
}

// ObserveWorkout counts one logged workout.
func (m *Metrics) ObserveWorkout() {
	m.workouts.Inc()
}

// ObserveLogin counts a login attempt; result is e.g. "ok" or "incorrect_password".
func (m *Metrics) ObserveLogin(result string) {
	m.loginResult.WithLabelValues(result).Inc()
}
