package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/aiforms/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by form lifecycle hooks.
type Metrics struct {
	steps       *prometheus.CounterVec
	completions *prometheus.CounterVec
	progress    *prometheus.HistogramVec
	registry    prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses a fresh registry, which Handler then serves.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg == nil {
		r := prometheus.NewRegistry()
		reg, gatherer = r, r
	} else if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	m := &Metrics{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aiforms_field_events_total",
				Help: "Conversation steps by form, field and event type",
			},
			[]string{"form", "field", "event"},
		),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aiforms_completions_total",
				Help: "Number of forms completed",
			},
			[]string{"form"},
		),
		progress: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aiforms_answer_progress_percent",
				Help:    "Progress reached after each accepted answer",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
			[]string{"form"},
		),
		registry: gatherer,
	}

	for _, c := range []prometheus.Collector{m.steps, m.completions, m.progress} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	step := func(_ context.Context, e *domain.FieldEvent) {
		m.steps.WithLabelValues(e.Form, e.Field, string(e.Type)).Inc()
	}
	return domain.LifecycleHooks{
		OnQuestion: step,
		OnSkip:     step,
		OnReject:   step,
		OnAnswer: func(ctx context.Context, e *domain.FieldEvent) {
			step(ctx, e)
			m.progress.WithLabelValues(e.Form).Observe(e.Progress)
		},
		OnComplete: func(_ context.Context, e *domain.CompleteEvent) {
			m.completions.WithLabelValues(e.Form).Inc()
		},
	}
}

// Steps exposes the per-field step counter.
func (m *Metrics) Steps() *prometheus.CounterVec { return m.steps }

// Handler serves the registry the collectors were registered with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
