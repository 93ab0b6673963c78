package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("producto no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInsufficientStock = errors.New("inventario insuficiente")
	ErrDuplicate         = errors.New("recurso duplicado")
	// ErrConflict lo devuelve el store cuando la versión esperada ya no coincide.
	ErrConflict = errors.New("conflicto de versión")
	// ErrTransientConflict indica que se agotaron los reintentos; el cliente puede reintentar más tarde.
	ErrTransientConflict = errors.New("conflicto transitorio, reintente más tarde")
)

// AdjustmentError agrega contexto a un rechazo del motor de ajustes.
// Unwrap devuelve el error de dominio para usar errors.Is.
type AdjustmentError struct {
	Op        string // order, restock, set, adjust
	ProductID string
	// Delta es el delta solicitado; en "set" es el valor absoluto pedido.
	Delta int64
	// CurrentCount solo se informa cuando es seguro revelarlo (stock insuficiente).
	CurrentCount *int64
	Attempts     int
	Err          error
}

func (e *AdjustmentError) Error() string {
	if e.CurrentCount != nil {
		return fmt.Sprintf("%s: %v: producto %s, delta %d, inventario actual %d", e.Op, e.Err, e.ProductID, e.Delta, *e.CurrentCount)
	}
	return fmt.Sprintf("%s: %v: producto %s, delta %d", e.Op, e.Err, e.ProductID, e.Delta)
}

func (e *AdjustmentError) Unwrap() error { return e.Err }
