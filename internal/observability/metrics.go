// Package observability turns lifecycle hooks into Prometheus metrics.
package observability

import (
	"context"
	"errors"
	"strconv"

	"github.com/aretw0/rpda/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine collectors.
type Metrics struct {
	Steps       *prometheus.CounterVec
	Runs        *prometheus.CounterVec
	Validations *prometheus.CounterVec
	StackDepth  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpda_steps_total",
				Help: "Step attempts by direction and outcome (matched, rejected).",
			},
			[]string{"direction", "outcome"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpda_runs_total",
				Help: "Completed runs by direction and verdict.",
			},
			[]string{"direction", "accepted"},
		),
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rpda_validations_total",
				Help: "Reversibility checks by result (reversible or the violation kind).",
			},
			[]string{"result"},
		),
		StackDepth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rpda_stack_depth",
				Help:    "Stack depth after each matched step.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Runs, m.Validations, m.StackDepth)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Direction.Name(), "matched").Inc()
			m.StackDepth.Observe(float64(e.Depth))
		},
		OnReject: func(_ context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Direction.Name(), "rejected").Inc()
		},
		OnRunComplete: func(_ context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(e.Direction.Name(), strconv.FormatBool(e.Result.Accepted)).Inc()
		},
	}
}

// ObserveValidation records the outcome of a reversibility check.
func (m *Metrics) ObserveValidation(err error) {
	if err == nil {
		m.Validations.WithLabelValues("reversible").Inc()
		return
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		m.Validations.WithLabelValues(string(verr.Kind)).Inc()
		return
	}
	m.Validations.WithLabelValues("error").Inc()
}

// Combine chains hooks so each event reaches every non-nil handler in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			for _, h := range hooks {
				if h.OnStep != nil {
					h.OnStep(ctx, e)
				}
			}
		},
		OnReject: func(ctx context.Context, e *domain.StepEvent) {
			for _, h := range hooks {
				if h.OnReject != nil {
					h.OnReject(ctx, e)
				}
			}
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			for _, h := range hooks {
				if h.OnRunComplete != nil {
					h.OnRunComplete(ctx, e)
				}
			}
		},
	}
}
