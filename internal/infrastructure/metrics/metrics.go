// Package metrics expone en Prometheus los eventos del motor de ajustes.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/internal/domain"
)

var _ inventory.Observer = (*Registry)(nil)

// Registry agrupa los colectores del servicio sobre un registro propio (sin el global).
type Registry struct {
	reg             *prometheus.Registry
	Applied         *prometheus.CounterVec
	Rejected        *prometheus.CounterVec
	ConflictRetries *prometheus.CounterVec
	Exhausted       *prometheus.CounterVec
	LatencySec      *prometheus.HistogramVec
	Attempts        prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_adjustments_applied_total",
		Help: "Ajustes de inventario aplicados.",
	}, []string{"op"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_adjustments_rejected_total",
		Help: "Ajustes rechazados por motivo.",
	}, []string{"op", "reason"})
	retries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_conflict_retries_total",
		Help: "Conflictos de versión observados en la escritura condicional.",
	}, []string{"op"})
	exhausted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_retries_exhausted_total",
		Help: "Ajustes abandonados por agotar los reintentos.",
	}, []string{"op"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_adjustment_latency_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	attempts := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inventory_adjustment_attempts",
		Buckets: []float64{1, 2, 3, 5, 8, 13},
	})

	r.MustRegister(applied, rejected, retries, exhausted, latency, attempts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:             r,
		Applied:         applied,
		Rejected:        rejected,
		ConflictRetries: retries,
		Exhausted:       exhausted,
		LatencySec:      latency,
		Attempts:        attempts,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

func (r *Registry) AdjustmentApplied(op inventory.Op, attempts int, elapsed time.Duration) {
	r.Applied.WithLabelValues(string(op)).Inc()
	r.LatencySec.WithLabelValues(string(op)).Observe(elapsed.Seconds())
	r.Attempts.Observe(float64(attempts))
}

func (r *Registry) AdjustmentRejected(op inventory.Op, err error) {
	r.Rejected.WithLabelValues(string(op), Reason(err)).Inc()
}

func (r *Registry) ConflictRetried(op inventory.Op) {
	r.ConflictRetries.WithLabelValues(string(op)).Inc()
}

func (r *Registry) RetriesExhausted(op inventory.Op) {
	r.Exhausted.WithLabelValues(string(op)).Inc()
}

// Reason clasifica el error en una etiqueta de cardinalidad acotada.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidInput):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "store_error"
	}
}
