package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Open abre el pool database/sql con el driver de MySQL y verifica la conexión.
func Open(ctx context.Context, dsn string, maxConns int) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	// updated_at se escanea como time.Time
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("abrir mysql: %w", err)
	}
	if maxConns <= 0 {
		maxConns = 10
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxIdleTime(30 * time.Second)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

const createProductsTable = `
CREATE TABLE IF NOT EXISTS products (
	id              VARCHAR(64) NOT NULL PRIMARY KEY,
	name            VARCHAR(255) NOT NULL,
	inventory_count BIGINT NOT NULL DEFAULT 0,
	version         BIGINT NOT NULL DEFAULT 0,
	updated_at      DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
	CONSTRAINT chk_products_inventory CHECK (inventory_count >= 0),
	INDEX idx_products_name (name, id)
)`

// EnsureSchema crea la tabla products si no existe (DB_AUTO_MIGRATE).
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createProductsTable); err != nil {
		return fmt.Errorf("migrar products: %w", err)
	}
	return nil
}

// Códigos de error del servidor MySQL.
const (
	errDuplicateEntry  = 1062
	errCheckConstraint = 3819
)

func isMySQLError(err error, code uint16) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == code
}
