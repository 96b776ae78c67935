// Package metrics exposes the Prometheus counters/gauges for the
// dispatcher and the instrumented emitter to update, grounded on the
// retrieved pack's market-maker-bot monitoring/metrics.go
// (prometheus.NewCounter / NewHistogram collected in a Metrics value
// and registered with a caller-supplied registry rather than the
// global default one, so tests can construct their own and never
// collide with each other).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"matchcore/internal/events"
)

type Metrics struct {
	OrdersAdded     prometheus.Counter
	Executions      prometheus.Counter
	CancelsAccepted prometheus.Counter
	CancelsRejected prometheus.Counter
	CommandLatency  prometheus.Histogram
	RestingDepth    *prometheus.GaugeVec
	SequenceValue   prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		OrdersAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_orders_added_total",
			Help: "Resting orders added across all instruments.",
		}),
		Executions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_executions_total",
			Help: "Fill events emitted across all instruments.",
		}),
		CancelsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_cancels_accepted_total",
			Help: "Cancel commands that removed a resting order.",
		}),
		CancelsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_cancels_rejected_total",
			Help: "Cancel commands for an id that was not resting.",
		}),
		CommandLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchcore_command_latency_seconds",
			Help:    "Time spent dispatching one ingress command.",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 12),
		}),
		RestingDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "matchcore_resting_depth",
			Help: "Resting order count per instrument and side.",
		}, []string{"instrument", "side"}),
		SequenceValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchcore_sequence_value",
			Help: "Most recently issued sequence number.",
		}),
	}
}

// InstrumentedEmitter decorates an events.Emitter so every OrderAdded
// / OrderExecuted event it forwards also increments the matching
// counter, without internal/book needing to know metrics exist at
// all.
type InstrumentedEmitter struct {
	next    events.Emitter
	metrics *Metrics
}

func NewInstrumentedEmitter(next events.Emitter, m *Metrics) *InstrumentedEmitter {
	return &InstrumentedEmitter{next: next, metrics: m}
}

func (e *InstrumentedEmitter) Emit(ev events.Event) {
	switch ev.(type) {
	case events.OrderAdded:
		e.metrics.OrdersAdded.Inc()
	case events.OrderExecuted:
		e.metrics.Executions.Inc()
	}
	e.next.Emit(ev)
}

// Register adds every collector to reg. Tests that don't care about
// metrics can call New() and never Register it at all.
func (m *Metrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		m.OrdersAdded,
		m.Executions,
		m.CancelsAccepted,
		m.CancelsRejected,
		m.CommandLatency,
		m.RestingDepth,
		m.SequenceValue,
	)
}
