package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación de StockRecordRepository sobre MySQL.
type StockRecordRepo struct {
	db *sql.DB
}

// NewStockRecordRepository construye el adaptador.
func NewStockRecordRepository(db *sql.DB) *StockRecordRepo {
	return &StockRecordRepo{db: db}
}

// Create inserta un producto nuevo con versión 0.
func (r *StockRecordRepo) Create(ctx context.Context, rec *entity.StockRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, inventory_count, version, updated_at)
		VALUES (?, ?, ?, 0, ?)`,
		rec.ID, rec.Name, rec.Count, rec.UpdatedAt,
	)
	if err != nil {
		if isMySQLError(err, errDuplicateEntry) {
			return domain.ErrDuplicate
		}
		if isMySQLError(err, errCheckConstraint) {
			return domain.ErrInvalidQuantity
		}
		return fmt.Errorf("insert product: %w", err)
	}
	rec.Version = 0
	return nil
}

// GetByID obtiene un producto por ID.
func (r *StockRecordRepo) GetByID(ctx context.Context, id string) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, inventory_count, version, updated_at
		FROM products WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Count, &rec.Version, &rec.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &rec, nil
}

// List lista todos los productos ordenados por nombre.
func (r *StockRecordRepo) List(ctx context.Context) ([]*entity.StockRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, inventory_count, version, updated_at
		FROM products ORDER BY name, id`)
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
func (r *StockRecordRepo) ConditionalUpdate(ctx context.Context, id string, expectedVersion, newCount int64, updatedAt time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET inventory_count = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		newCount, updatedAt, id, expectedVersion,
	)
	if err != nil {
		if isMySQLError(err, errCheckConstraint) {
			return 0, domain.ErrInvalidQuantity
		}
		return 0, fmt.Errorf("update inventory: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if rows == 1 {
		return expectedVersion + 1, nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = ?)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrConflict
}
