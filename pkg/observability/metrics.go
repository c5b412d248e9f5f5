package observability

import (
	"context"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by controller hooks.
type Metrics struct {
	started  *prometheus.CounterVec
	finished *prometheus.CounterVec
	steps    *prometheus.CounterVec
	faults   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_tours_started_total",
				Help: "Total number of tours that became active",
			},
			[]string{"tour"},
		),
		finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_tours_finished_total",
				Help: "Total number of finished tour requests by reason",
			},
			[]string{"tour", "reason"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_step_views_total",
				Help: "Total number of step entries",
			},
			[]string{"tour", "step"},
		),
		faults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waypoint_faults_total",
				Help: "Total number of soft faults by kind",
			},
			[]string{"tour", "kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waypoint_tour_duration_seconds",
				Help:    "Time from tour start to its end",
				Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 1800},
			},
			[]string{"tour", "reason"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.started, m.finished, m.steps, m.faults, m.duration)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTourStart: func(_ context.Context, e *domain.TourEvent) {
			m.started.WithLabelValues(e.TourID).Inc()
		},
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(e.TourID, e.StepID).Inc()
		},
		OnFault: func(_ context.Context, e *domain.FaultEvent) {
			m.faults.WithLabelValues(e.TourID, string(e.Kind)).Inc()
		},
		OnTourEnd: func(_ context.Context, e *domain.EndEvent) {
			m.finished.WithLabelValues(e.TourID, string(e.Reason)).Inc()
			// Tours that never started have no duration.
			if e.Duration > 0 {
				m.duration.WithLabelValues(e.TourID, string(e.Reason)).Observe(e.Duration.Seconds())
			}
		},
	}
}
