package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/pkg/config"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}}
	st, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, config.DriverMemory, st.Driver)
	assert.NotNil(t, st.Repo)
	assert.Nil(t, st.Tx)
}

func TestOpen_PebbleReabre(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverPebble, PebbleDir: t.TempDir()}}

	st, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, st.Repo.Create(ctx, &entity.StockRecord{ID: "p1", Name: "Widget", Count: 3}))
	require.NoError(t, st.Close())

	st, err = Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer st.Close()
	rec, err := st.Repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.Count)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}, nil)
	assert.Error(t, err)
}
