package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

func TestStockRecordRepo_CreateYGet(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRecordRepository()

	require.NoError(t, repo.Create(ctx, &entity.StockRecord{ID: "p1", Name: "Widget", Count: 10, Version: 7}))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Count)
	assert.Equal(t, int64(0), got.Version, "la versión inicial siempre es 0")

	err = repo.Create(ctx, &entity.StockRecord{ID: "p1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Create(ctx, &entity.StockRecord{ID: "neg", Name: "Negativo", Count: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = repo.GetByID(ctx, "neg")
	assert.ErrorIs(t, err, domain.ErrNotFound, "un inventario negativo no se siembra")
}

func TestStockRecordRepo_GetDevuelveCopia(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRecordRepository()
	require.NoError(t, repo.Create(ctx, &entity.StockRecord{ID: "p1", Name: "Widget", Count: 10}))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	got.Count = 999

	again, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), again.Count)
}

func TestStockRecordRepo_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRecordRepository()
	require.NoError(t, repo.Create(ctx, &entity.StockRecord{ID: "p1", Name: "Widget", Count: 10}))

	stamp := time.Date(2024, 3, 1, 12, 0, 0, 123000, time.UTC)
	v, err := repo.ConditionalUpdate(ctx, "p1", 0, 6, stamp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// versión obsoleta: sin efecto
	_, err = repo.ConditionalUpdate(ctx, "p1", 0, 1, time.Now())
	assert.ErrorIs(t, err, domain.ErrConflict)

	// negativo: sin efecto
	_, err = repo.ConditionalUpdate(ctx, "p1", 1, -1, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Count)
	assert.Equal(t, int64(1), got.Version)
	assert.True(t, stamp.Equal(got.UpdatedAt), "guarda el updatedAt recibido")

	_, err = repo.ConditionalUpdate(ctx, "missing", 0, 1, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockRecordRepo_ListOrdenadoPorNombre(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRecordRepository()
	for _, rec := range []*entity.StockRecord{
		{ID: "a", Name: "Tornillo"},
		{ID: "b", Name: "Arandela"},
		{ID: "c", Name: "Martillo"},
	} {
		require.NoError(t, repo.Create(ctx, rec))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Arandela", list[0].Name)
	assert.Equal(t, "Martillo", list[1].Name)
	assert.Equal(t, "Tornillo", list[2].Name)
}
