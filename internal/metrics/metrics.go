// Package metrics owns the Prometheus collectors for monitor runs, push
// delivery and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/steelbuild/internal/push"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "steelbuild"

type Metrics struct {
	Registry *prometheus.Registry

	monitorRuns       *prometheus.CounterVec
	monitorAlerts     *prometheus.CounterVec
	monitorDuration   prometheus.Histogram
	notificationsSent prometheus.Counter
	pushFailures      *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New registers a fresh set of collectors on their own registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		monitorRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "monitor_runs_total",
			Help:      "Total monitorCriticalEvents runs.",
		}, []string{"success"}),
		monitorAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "monitor_alerts_total",
			Help:      "New alerts raised by the monitor, by type.",
		}, []string{"type"}),
		monitorDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "monitor_duration_seconds",
			Help:      "Duration of monitor runs.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Notifications created and pushed.",
		}),
		pushFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "push_failures_total",
			Help:      "Failed push deliveries, by error code.",
		}, []string{"code"}),
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
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"method", "route"}),
	}
	m.Registry.MustRegister(
		m.monitorRuns,
		m.monitorAlerts,
		m.monitorDuration,
		m.notificationsSent,
		m.pushFailures,
		m.httpRequests,
		m.httpDuration,
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveMonitorRun(success bool, d time.Duration) {
	m.monitorRuns.WithLabelValues(strconv.FormatBool(success)).Inc()
	m.monitorDuration.Observe(d.Seconds())
}

func (m *Metrics) AlertRaised(alertType string) {
	m.monitorAlerts.WithLabelValues(alertType).Inc()
}

func (m *Metrics) NotificationsSent(n int) {
	m.notificationsSent.Add(float64(n))
}

// OnPushComplete makes Metrics a push.Observer.
func (m *Metrics) OnPushComplete(e push.PushEvent) {
	if !e.Success {
		m.pushFailures.WithLabelValues(e.ErrorCode).Inc()
	}
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var _ push.Observer = (*Metrics)(nil)
