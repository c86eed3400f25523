// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "alitaram"

// Turn outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeFallback = "fallback"
)

// Metrics holds every collector on its own registry. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	turnDuration   *prometheus.HistogramVec
	turns          *prometheus.CounterVec
	suggestions    prometheus.Counter
	busyRejects    prometheus.Counter
	activeSessions prometheus.Gauge
	wsConnections  prometheus.Gauge
	consultations  *prometheus.CounterVec
}

// New registers the collectors on a fresh registry, together with the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		turnDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assistant_turn_duration_seconds",
			Help:      "Latency of assistant provider calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"provider"}),
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_turns_total",
			Help:      "Assistant turns by provider and outcome.",
		}, []string{"provider", "outcome"}),
		suggestions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_product_suggestions_total",
			Help:      "Products suggested in assistant replies.",
		}),
		busyRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_busy_rejections_total",
			Help:      "Messages refused because a reply was pending.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "Open websocket connections.",
		}),
		consultations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consultation_requests_total",
			Help:      "Consultation form events.",
		}, []string{"event"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.turnDuration,
		m.turns,
		m.suggestions,
		m.busyRejects,
		m.activeSessions,
		m.wsConnections,
		m.consultations,
	)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveTurn(provider, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.turnDuration.WithLabelValues(provider).Observe(d.Seconds())
	m.turns.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) AddSuggestions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.suggestions.Add(float64(n))
}

func (m *Metrics) BusyRejected() {
	if m == nil {
		return
	}
	m.busyRejects.Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

func (m *Metrics) ConnectionOpened() {
	if m == nil {
		return
	}
	m.wsConnections.Inc()
}

func (m *Metrics) ConnectionClosed() {
	if m == nil {
		return
	}
	m.wsConnections.Dec()
}

// ConsultationEvent counts consultation form events by name.
func (m *Metrics) ConsultationEvent(event string) {
	if m == nil {
		return
	}
	m.consultations.WithLabelValues(event).Inc()
}
