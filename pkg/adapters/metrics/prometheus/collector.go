package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aescanero/statebus/pkg/eventbus"
)

// Collector implements eventbus.Metrics using Prometheus
type Collector struct {
	emits       *prometheus.CounterVec
	emitTime    *prometheus.HistogramVec
	diagnostics *prometheus.CounterVec
	listeners   *prometheus.GaugeVec
}

var _ eventbus.Metrics = (*Collector)(nil)

// NewCollector creates a collector whose metrics are registered with reg.
// A nil reg registers with the default Prometheus registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		emits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statebus_emits_total",
				Help: "Total number of dispatched emits",
			},
			[]string{"event", "status"},
		),
		emitTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "statebus_emit_duration_seconds",
				Help:    "Time spent running the callbacks of one emit",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
			[]string{"event"},
		),
		diagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statebus_diagnostics_total",
				Help: "Total number of non-fatal diagnostics by operation",
			},
			[]string{"op"},
		),
		listeners: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "statebus_listeners",
				Help: "Current number of registered callbacks per event",
			},
			[]string{"event"},
		),
	}
}

// RecordEmit records one dispatched emit
func (c *Collector) RecordEmit(event, status string, duration time.Duration) {
	c.emits.WithLabelValues(event, status).Inc()
	c.emitTime.WithLabelValues(event).Observe(duration.Seconds())
}

// RecordDiagnostic counts a diagnostic for op
func (c *Collector) RecordDiagnostic(op string) {
	c.diagnostics.WithLabelValues(op).Inc()
}

// SetListeners sets the callback count for an event
func (c *Collector) SetListeners(event string, count int) {
	c.listeners.WithLabelValues(event).Set(float64(count))
}
