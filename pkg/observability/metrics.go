package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the Prometheus collectors fed by the engine hooks.
type Metrics struct {
	registry *prometheus.Registry

	Conversions    *prometheus.CounterVec
	Duration       *prometheus.HistogramVec
	Validations    *prometheus.CounterVec
	HistoryEntries prometheus.Gauge
}

// NewMetrics creates the collectors on a dedicated registry, so several
// engines (and tests) never collide on the global one.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worldforge_conversions_total",
				Help: "Total number of conversions by direction and outcome",
			},
			[]string{"direction", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "worldforge_conversion_duration_seconds",
				Help:    "Duration of conversions",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"direction"},
		),
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worldforge_validations_total",
				Help: "Total number of pre-checks by direction and result",
			},
			[]string{"direction", "valid"},
		),
		HistoryEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "worldforge_history_entries",
				Help: "Number of entries currently held in the history log",
			},
		),
	}
	m.registry.MustRegister(m.Conversions, m.Duration, m.Validations, m.HistoryEntries)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConvert: func(ctx context.Context, e *domain.ConversionEvent) {
			outcome := OutcomeOK
			if e.IsError {
				outcome = OutcomeError
			}
			m.Conversions.WithLabelValues(directionLabel(e.Direction), outcome).Inc()
			m.Duration.WithLabelValues(directionLabel(e.Direction)).Observe(e.Duration.Seconds())
		},
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			m.Validations.WithLabelValues(directionLabel(e.Direction), strconv.FormatBool(e.Result.Valid)).Inc()
		},
	}
}

// SetHistoryEntries publishes the current history size.
func (m *Metrics) SetHistoryEntries(n int) {
	m.HistoryEntries.Set(float64(n))
}

// Registry exposes the registry for gathering in tests or custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// directionLabel keeps label cardinality bounded for unknown directions.
func directionLabel(d domain.Direction) string {
	if d.Valid() {
		return string(d)
	}
	return "unknown"
}
