// Package storage selecciona e inicializa el backend del store según STORE_DRIVER.
package storage

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-service/internal/infrastructure/mysql"
	"github.com/jhoicas/inventory-service/internal/infrastructure/pebble"
	"github.com/jhoicas/inventory-service/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-service/internal/infrastructure/redis"
	"github.com/jhoicas/inventory-service/pkg/config"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

// Store es el backend abierto. Tx es nil si el backend no es transaccional.
type Store struct {
	Driver  string
	Repo    repository.StockRecordRepository
	Tx      repository.StockRecordTxRunner
	closers []func() error
}

// Close libera conexiones y archivos del backend.
func (s *Store) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open abre el backend configurado y, en los SQL, aplica la migración si DB_AUTO_MIGRATE.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	st := &Store{Driver: cfg.Store.Driver}

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		st.closers = append(st.closers, func() error { pool.Close(); return nil })
		if cfg.Store.AutoMigrate {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				_ = st.Close()
				return nil, err
			}
		}
		st.Repo = postgres.NewStockRecordRepository(pool)
		st.Tx = postgres.NewTxRunner(pool)

	case config.DriverMySQL:
		db, err := mysql.Open(ctx, cfg.Store.MySQLDSN, cfg.DB.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("conexión a MySQL: %w", err)
		}
		st.closers = append(st.closers, db.Close)
		if cfg.Store.AutoMigrate {
			if err := mysql.EnsureSchema(ctx, db); err != nil {
				_ = st.Close()
				return nil, err
			}
		}
		st.Repo = mysql.NewStockRecordRepository(db)

	case config.DriverRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.DB.MaxConns,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		st.closers = append(st.closers, client.Close)
		st.Repo = redis.NewStockRecordRepository(client)

	case config.DriverPebble:
		repo, err := pebble.Open(cfg.Store.PebbleDir)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, repo.Close)
		st.Repo = repo

	case config.DriverMemory:
		st.Repo = memory.NewStockRecordRepository()

	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
	}

	log.Info().Str("driver", st.Driver).Bool("transactional", st.Tx != nil).Msg("store inicializado")
	return st, nil
}
