package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 3002, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:3002", cfg.HTTP.Addr())
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.True(t, cfg.Store.AutoMigrate)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 5, cfg.Adjust.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, cfg.Adjust.InitialBackoff)
	assert.Equal(t, 2*time.Second, cfg.Adjust.MaxElapsed)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("ADJUST_MAX_ATTEMPTS", "9")
	t.Setenv("ADJUST_INITIAL_BACKOFF", "1ms")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 9, cfg.Adjust.MaxAttempts)
	assert.Equal(t, time.Millisecond, cfg.Adjust.InitialBackoff)
	assert.True(t, cfg.App.SeedDemo)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "inventory", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/inventory?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
