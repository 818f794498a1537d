// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "omara"

// Metrics is the set of collectors for one process.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	reconciled     prometheus.Counter
	overdue        prometheus.Gauge
	aiCalls        *prometheus.CounterVec
	reminders      prometheus.Counter
	wardrobeItems  prometheus.Gauge
	importedImages prometheus.Counter
}

// New creates the collectors on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		reconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciled_wear_entries_total",
			Help:      "Wear log entries created from past plans.",
		}),
		overdue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "laundry_overdue_items",
			Help:      "Items in the laundry longer than the alert threshold.",
		}),
		aiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_requests_total",
			Help:      "AI collaborator requests by operation.",
		}, []string{"operation"}),
		reminders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Daily planning reminders sent.",
		}),
		wardrobeItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wardrobe_items",
			Help:      "Clothing items in the wardrobe.",
		}),
		importedImages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imported_images_total",
			Help:      "Images read from bulk import archives.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.reconciled,
		m.overdue,
		m.aiCalls,
		m.reminders,
		m.wardrobeItems,
		m.importedImages,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one finished HTTP request. Nil-safe.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// AddReconciled counts wear entries created by the reconciler.
func (m *Metrics) AddReconciled(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.reconciled.Add(float64(n))
}

// SetOverdue sets the number of overdue laundry items.
func (m *Metrics) SetOverdue(n int) {
	if m == nil {
		return
	}
	m.overdue.Set(float64(n))
}

// AICall counts one AI request for operation.
func (m *Metrics) AICall(operation string) {
	if m == nil {
		return
	}
	m.aiCalls.WithLabelValues(operation).Inc()
}

// ReminderSent counts one delivered reminder.
func (m *Metrics) ReminderSent() {
	if m == nil {
		return
	}
	m.reminders.Inc()
}

// SetWardrobeSize sets the number of clothing items.
func (m *Metrics) SetWardrobeSize(n int) {
	if m == nil {
		return
	}
	m.wardrobeItems.Set(float64(n))
}

// AddImported counts images read from an import archive.
func (m *Metrics) AddImported(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.importedImages.Add(float64(n))
}
