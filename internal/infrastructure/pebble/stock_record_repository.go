// Package pebble implementa el store de inventario embebido sobre PebbleDB.
// Cada producto es un valor JSON bajo product/<id>; la escritura condicional se
// serializa con un mutex del proceso (Pebble no ofrece compare-and-swap).
package pebble

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/internal/infrastructure/collation"
)

var keyPrefix = []byte("product/")

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación de StockRecordRepository sobre PebbleDB.
type StockRecordRepo struct {
	db *pebble.DB
	mu sync.Mutex // serializa lectura+escritura en Create y ConditionalUpdate
}

type storedRecord struct {
	Name      string    `json:"name"`
	Count     int64     `json:"inventory_count"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Open abre (o crea) la base en dir.
func Open(dir string) (*StockRecordRepo, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &StockRecordRepo{db: db}, nil
}

// Close cierra la base.
func (r *StockRecordRepo) Close() error { return r.db.Close() }

func productKey(id string) []byte {
	return append(append([]byte(nil), keyPrefix...), id...)
}

func (r *StockRecordRepo) load(id string) (storedRecord, error) {
	v, closer, err := r.db.Get(productKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return storedRecord{}, domain.ErrNotFound
	}
	if err != nil {
		return storedRecord{}, fmt.Errorf("pebble get %s: %w", id, err)
	}
	defer closer.Close()

	var st storedRecord
	if err := json.Unmarshal(v, &st); err != nil {
		return storedRecord{}, fmt.Errorf("decode %s: %w", id, err)
	}
	return st, nil
}

func (r *StockRecordRepo) store(id string, st storedRecord) error {
	bytes, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}
	if err := r.db.Set(productKey(id), bytes, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set %s: %w", id, err)
	}
	return nil
}

// Create inserta un producto nuevo con versión 0.
func (r *StockRecordRepo) Create(_ context.Context, rec *entity.StockRecord) error {
	if rec.Count < 0 {
		return domain.ErrInvalidQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.load(rec.ID); err == nil {
		return domain.ErrDuplicate
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	rec.Version = 0
	return r.store(rec.ID, storedRecord{Name: rec.Name, Count: rec.Count, UpdatedAt: rec.UpdatedAt})
}

// GetByID obtiene un producto por ID.
func (r *StockRecordRepo) GetByID(_ context.Context, id string) (*entity.StockRecord, error) {
	st, err := r.load(id)
	if err != nil {
		return nil, err
	}
	return &entity.StockRecord{ID: id, Name: st.Name, Count: st.Count, Version: st.Version, UpdatedAt: st.UpdatedAt}, nil
}

// List recorre el rango product/ y ordena por nombre.
func (r *StockRecordRepo) List(_ context.Context) ([]*entity.StockRecord, error) {
	upper := append(append([]byte(nil), keyPrefix[:len(keyPrefix)-1]...), keyPrefix[len(keyPrefix)-1]+1)
	it, err := r.db.NewIter(&pebble.IterOptions{LowerBound: keyPrefix, UpperBound: upper})
	if err != nil {
		return nil, fmt.Errorf("pebble iter: %w", err)
	}
	defer it.Close()

	list := make([]*entity.StockRecord, 0)
	for it.First(); it.Valid(); it.Next() {
		id := string(it.Key()[len(keyPrefix):])
		var st storedRecord
		if err := json.Unmarshal(it.Value(), &st); err != nil {
			return nil, fmt.Errorf("decode %s: %w", id, err)
		}
		list = append(list, &entity.StockRecord{ID: id, Name: st.Name, Count: st.Count, Version: st.Version, UpdatedAt: st.UpdatedAt})
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("pebble iter: %w", err)
	}
	collation.SortRecords(list)
	return list, nil
}

// ConditionalUpdate compara versión y escribe bajo el mutex.
func (r *StockRecordRepo) ConditionalUpdate(_ context.Context, id string, expectedVersion, newCount int64, updatedAt time.Time) (int64, error) {
	if newCount < 0 {
		return 0, domain.ErrInvalidQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	st, err := r.load(id)
	if err != nil {
		return 0, err
	}
	if st.Version != expectedVersion {
		return 0, domain.ErrConflict
	}
	st.Count = newCount
	st.Version++
	st.UpdatedAt = updatedAt.UTC()
	if err := r.store(id, st); err != nil {
		return 0, err
	}
	return st.Version, nil
}
