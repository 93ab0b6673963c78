package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// StockRecordRepository define el puerto de persistencia para StockRecord (DIP).
// Es el único componente que muta inventory_count; ConditionalUpdate es su primitiva atómica.
type StockRecordRepository interface {
	// Create inserta un registro nuevo (seed/admin). domain.ErrDuplicate si el id ya existe.
	Create(ctx context.Context, rec *entity.StockRecord) error
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.StockRecord, error)
	// List devuelve todos los registros ordenados por nombre ascendente.
	List(ctx context.Context) ([]*entity.StockRecord, error)
	// ConditionalUpdate persiste newCount y updatedAt solo si la versión almacenada es expectedVersion.
	// Devuelve la nueva versión, domain.ErrConflict o domain.ErrNotFound.
	ConditionalUpdate(ctx context.Context, id string, expectedVersion, newCount int64, updatedAt time.Time) (int64, error)
}

// StockRecordTxRunner ejecuta fn con un repo atado a una transacción (todo o nada).
// Solo lo ofrecen los backends transaccionales; el resto devuelve nil.
type StockRecordTxRunner interface {
	Run(ctx context.Context, fn func(repo StockRecordRepository) error) error
}
