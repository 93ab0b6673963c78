package postgres

import (
	"context"
	"fmt"
)

const createProductsTable = `
CREATE TABLE IF NOT EXISTS products (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	inventory_count BIGINT NOT NULL DEFAULT 0 CHECK (inventory_count >= 0),
	version         BIGINT NOT NULL DEFAULT 0,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const createProductsNameIndex = `CREATE INDEX IF NOT EXISTS idx_products_name ON products (name, id)`

// EnsureSchema crea la tabla products si no existe (DB_AUTO_MIGRATE).
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range []string{createProductsTable, createProductsNameIndex} {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrar products: %w", err)
		}
	}
	return nil
}
