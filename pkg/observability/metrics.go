package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/automata/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by the engine hooks.
type Metrics struct {
	Runs      *prometheus.CounterVec
	Steps     *prometheus.HistogramVec
	Timelines *prometheus.GaugeVec
	Vanished  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil registerer leaves them unregistered (handy in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_runs_total",
				Help: "Total number of halted runs by verdict",
			},
			[]string{"machine", "result"},
		),
		Steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_run_steps",
				Help:    "Generations needed for a run to halt",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"machine"},
		),
		Timelines: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "automata_running_timelines",
				Help: "Running timelines after the latest generation",
			},
			[]string{"machine"},
		),
		Vanished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_vanished_timelines_total",
				Help: "Timelines that produced no successor",
			},
			[]string{"machine"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Steps, m.Timelines, m.Vanished)
	}
	return m
}

// Hooks returns lifecycle hooks recording into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Timelines.WithLabelValues(e.Machine).Set(float64(e.Running))
			if e.Vanished > 0 {
				m.Vanished.WithLabelValues(e.Machine).Add(float64(e.Vanished))
			}
		},
		OnRunHalt: func(_ context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(e.Machine, string(e.Result)).Inc()
			m.Steps.WithLabelValues(e.Machine).Observe(float64(e.Steps))
			m.Timelines.WithLabelValues(e.Machine).Set(0)
		},
	}
}
