package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación de StockRecordRepository sobre PostgreSQL (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

// Create persiste un producto nuevo con versión 0.
func (r *StockRecordRepo) Create(ctx context.Context, rec *entity.StockRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO products (id, name, inventory_count, version, updated_at)
		VALUES ($1, $2, $3, 0, $4)`
	_, err := r.q.Exec(ctx, query, rec.ID, rec.Name, rec.Count, rec.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidQuantity
		}
		return fmt.Errorf("insert product: %w", err)
	}
	rec.Version = 0
	return nil
}

// GetByID obtiene un producto por ID.
func (r *StockRecordRepo) GetByID(ctx context.Context, id string) (*entity.StockRecord, error) {
	query := `
		SELECT id, name, inventory_count, version, updated_at
		FROM products WHERE id = $1`
	var rec entity.StockRecord
	err := r.q.QueryRow(ctx, query, id).Scan(&rec.ID, &rec.Name, &rec.Count, &rec.Version, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &rec, nil
}

// List lista todos los productos ordenados por nombre.
func (r *StockRecordRepo) List(ctx context.Context) ([]*entity.StockRecord, error) {
	query := `
		SELECT id, name, inventory_count, version, updated_at
		FROM products ORDER BY name, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockRecord, 0)
	for rows.Next() {
		var rec entity.StockRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Count, &rec.Version, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// ConditionalUpdate escribe newCount solo si la versión almacenada es expectedVersion.
// Sin fila afectada distingue conflicto de inexistencia con una segunda consulta.
func (r *StockRecordRepo) ConditionalUpdate(ctx context.Context, id string, expectedVersion, newCount int64, updatedAt time.Time) (int64, error) {
	query := `
		UPDATE products
		SET inventory_count = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $2
		RETURNING version`
	var version int64
	err := r.q.QueryRow(ctx, query, id, expectedVersion, newCount, updatedAt).Scan(&version)
	if err == nil {
		return version, nil
	}
	if isCheckViolation(err) {
		return 0, domain.ErrInvalidQuantity
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("update inventory: %w", err)
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrConflict
}
