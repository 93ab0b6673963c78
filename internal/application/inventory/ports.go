package inventory

import "time"

// Observer recibe los eventos del motor de ajustes (métricas). Implementado por
// infrastructure/metrics; NopObserver cuando las métricas están deshabilitadas.
type Observer interface {
	AdjustmentApplied(op Op, attempts int, elapsed time.Duration)
	AdjustmentRejected(op Op, err error)
	ConflictRetried(op Op)
	RetriesExhausted(op Op)
}

// NopObserver descarta todos los eventos.
type NopObserver struct{}

func (NopObserver) AdjustmentApplied(Op, int, time.Duration) {}
func (NopObserver) AdjustmentRejected(Op, error)             {}
func (NopObserver) ConflictRetried(Op)                       {}
func (NopObserver) RetriesExhausted(Op)                      {}
