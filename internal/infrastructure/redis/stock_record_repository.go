// Package redis implementa el store de inventario sobre Redis: un hash por producto
// (product:{id}) y un set con los IDs. La escritura condicional es un script Lua atómico.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/internal/infrastructure/collation"
)

const (
	productKeyPrefix = "product:"
	productIDsKey    = "products:ids"
)

// Resultados especiales de los scripts.
const (
	resultNotFound = -1
	resultConflict = -2
	resultExists   = -3
)

var createScript = redis.NewScript(`
local key = KEYS[1]
if redis.call('EXISTS', key) == 1 then
	return -3
end
redis.call('HSET', key, 'name', ARGV[2], 'count', ARGV[3], 'version', 0, 'updated_at', ARGV[4])
redis.call('SADD', KEYS[2], ARGV[1])
return 0
`)

var conditionalUpdateScript = redis.NewScript(`
local key = KEYS[1]
local version = redis.call('HGET', key, 'version')
if not version then
	return -1
end
if tonumber(version) ~= tonumber(ARGV[1]) then
	return -2
end
local next = tonumber(version) + 1
redis.call('HSET', key, 'count', ARGV[2], 'version', next, 'updated_at', ARGV[3])
return next
`)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación de StockRecordRepository sobre Redis.
type StockRecordRepo struct {
	client *redis.Client
}

// NewStockRecordRepository construye el adaptador.
func NewStockRecordRepository(client *redis.Client) *StockRecordRepo {
	return &StockRecordRepo{client: client}
}

func productKey(id string) string { return productKeyPrefix + id }

// Create inserta un producto nuevo con versión 0.
func (r *StockRecordRepo) Create(ctx context.Context, rec *entity.StockRecord) error {
	if rec.Count < 0 {
		return domain.ErrInvalidQuantity
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	res, err := createScript.Run(ctx, r.client,
		[]string{productKey(rec.ID), productIDsKey},
		rec.ID, rec.Name, rec.Count, rec.UpdatedAt.UnixNano(),
	).Int64()
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	if res == resultExists {
		return domain.ErrDuplicate
	}
	rec.Version = 0
	return nil
}

// GetByID obtiene un producto por ID.
func (r *StockRecordRepo) GetByID(ctx context.Context, id string) (*entity.StockRecord, error) {
	fields, err := r.client.HGetAll(ctx, productKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrNotFound
	}
	return decode(id, fields)
}

// List lee todos los hashes en un pipeline y los ordena por nombre.
func (r *StockRecordRepo) List(ctx context.Context) ([]*entity.StockRecord, error) {
	ids, err := r.client.SMembers(ctx, productIDsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = p.HGetAll(ctx, productKey(id))
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("list products: %w", err)
	}

	list := make([]*entity.StockRecord, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		rec, err := decode(ids[i], fields)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	collation.SortRecords(list)
	return list, nil
}

// ConditionalUpdate compara versión y escribe dentro del script Lua.
func (r *StockRecordRepo) ConditionalUpdate(ctx context.Context, id string, expectedVersion, newCount int64, updatedAt time.Time) (int64, error) {
	if newCount < 0 {
		return 0, domain.ErrInvalidQuantity
	}
	res, err := conditionalUpdateScript.Run(ctx, r.client,
		[]string{productKey(id)},
		expectedVersion, newCount, updatedAt.UnixNano(),
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("update inventory: %w", err)
	}
	switch res {
	case resultNotFound:
		return 0, domain.ErrNotFound
	case resultConflict:
		return 0, domain.ErrConflict
	}
	return res, nil
}

func decode(id string, fields map[string]string) (*entity.StockRecord, error) {
	count, err := strconv.ParseInt(fields["count"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode count de %s: %w", id, err)
	}
	version, err := strconv.ParseInt(fields["version"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode version de %s: %w", id, err)
	}
	rec := &entity.StockRecord{ID: id, Name: fields["name"], Count: count, Version: version}
	if ns, err := strconv.ParseInt(fields["updated_at"], 10, 64); err == nil {
		rec.UpdatedAt = time.Unix(0, ns).UTC()
	}
	return rec, nil
}
