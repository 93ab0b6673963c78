package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/internal/infrastructure/collation"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación en memoria de StockRecordRepository (tests y STORE_DRIVER=memory).
type StockRecordRepo struct {
	mu      sync.RWMutex
	records map[string]entity.StockRecord
}

// NewStockRecordRepository construye un store vacío.
func NewStockRecordRepository() *StockRecordRepo {
	return &StockRecordRepo{records: make(map[string]entity.StockRecord)}
}

// Create inserta un registro nuevo con versión 0.
func (r *StockRecordRepo) Create(_ context.Context, rec *entity.StockRecord) error {
	if rec.Count < 0 {
		return domain.ErrInvalidQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.ID]; ok {
		return domain.ErrDuplicate
	}
	stored := *rec
	stored.Version = 0
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now().UTC()
	}
	r.records[rec.ID] = stored
	rec.Version = 0
	return nil
}

// GetByID devuelve una copia del registro.
func (r *StockRecordRepo) GetByID(_ context.Context, id string) (*entity.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// List devuelve copias ordenadas por nombre.
func (r *StockRecordRepo) List(_ context.Context) ([]*entity.StockRecord, error) {
	r.mu.RLock()
	list := make([]*entity.StockRecord, 0, len(r.records))
	for _, rec := range r.records {
		rec := rec
		list = append(list, &rec)
	}
	r.mu.RUnlock()

	collation.SortRecords(list)
	return list, nil
}

// ConditionalUpdate compara versión y escribe bajo el mismo lock.
func (r *StockRecordRepo) ConditionalUpdate(_ context.Context, id string, expectedVersion, newCount int64, updatedAt time.Time) (int64, error) {
	if newCount < 0 {
		return 0, domain.ErrInvalidQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if rec.Version != expectedVersion {
		return 0, domain.ErrConflict
	}
	rec.Count = newCount
	rec.Version++
	rec.UpdatedAt = updatedAt.UTC()
	r.records[id] = rec
	return rec.Version, nil
}
