package seed

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/internal/infrastructure/memory"
)

func TestGenerate(t *testing.T) {
	recs := Generate(10, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, recs, 10)

	ids := map[string]bool{}
	for _, rec := range recs {
		assert.NotEmpty(t, rec.Name)
		assert.GreaterOrEqual(t, rec.Count, int64(MinCount))
		assert.LessOrEqual(t, rec.Count, int64(MaxCount))
		assert.False(t, ids[rec.ID], "ids únicos")
		ids[rec.ID] = true
	}
}

func TestReadCSV(t *testing.T) {
	in := "name,inventory_count,id\nWidget, 10,p1\nTuerca,0\n"
	recs, err := ReadCSV(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, entity.StockRecord{ID: "p1", Name: "Widget", Count: 10}, recs[0])
	assert.Equal(t, "Tuerca", recs[1].Name)
	assert.NotEmpty(t, recs[1].ID)
}

func TestReadCSV_Latin1(t *testing.T) {
	// "Café" en ISO-8859-1: é = 0xE9
	in := "name,inventory_count\nCaf\xe9,3\n"
	recs, err := ReadCSV(strings.NewReader(in), true)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Café", recs[0].Name)
}

func TestReadCSV_Invalido(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("name,inventory_count\nWidget,-1\n"), false)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = ReadCSV(strings.NewReader("name,inventory_count\n,4\n"), false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSeeder_SinTxOmiteDuplicados(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStockRecordRepository()
	require.NoError(t, repo.Create(ctx, &entity.StockRecord{ID: "p1", Name: "Widget", Count: 1}))

	n, err := NewSeeder(repo, nil, nil).Seed(ctx, []entity.StockRecord{
		{ID: "p1", Name: "Widget", Count: 9},
		{ID: "p2", Name: "Tuerca", Count: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.Count, "no sobrescribe productos existentes")
}

// fakeTx simula una transacción: escribe en un store temporal y solo copia si fn termina bien.
type fakeTx struct {
	target repository.StockRecordRepository
}

func (f fakeTx) Run(ctx context.Context, fn func(repository.StockRecordRepository) error) error {
	staging := memory.NewStockRecordRepository()
	if err := fn(staging); err != nil {
		return err
	}
	list, _ := staging.List(ctx)
	for _, rec := range list {
		if err := f.target.Create(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func TestSeeder_ConTxEsAtomico(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStockRecordRepository()
	seeder := NewSeeder(repo, fakeTx{target: repo}, nil)

	n, err := seeder.Seed(ctx, []entity.StockRecord{
		{ID: "p1", Name: "Widget", Count: 1},
		{ID: "p1", Name: "Widget", Count: 2},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Zero(t, n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	n, err = seeder.Seed(ctx, Generate(5, nil))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
