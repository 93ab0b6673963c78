// @title        Inventory Service API
// @version      1.0
// @description  Servicio de inventario con ajustes concurrentes seguros (CAS por versión).
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/inventory-service/docs"
	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/internal/application/seed"
	"github.com/jhoicas/inventory-service/internal/infrastructure/metrics"
	"github.com/jhoicas/inventory-service/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventory-service/internal/interfaces/http"
	"github.com/jhoicas/inventory-service/pkg/config"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar store")
		}
	}()

	if cfg.App.SeedDemo {
		if _, err := seed.NewSeeder(store.Repo, store.Tx, log).Seed(ctx, seed.Generate(10, nil)); err != nil {
			log.Error().Err(err).Msg("siembra de productos demo")
		}
	}

	var observer inventory.Observer = inventory.NopObserver{}
	var registry *metrics.Registry
	if cfg.App.MetricsEnabled {
		registry = metrics.NewRegistry()
		observer = registry
	}

	engine := inventory.NewAdjustmentEngine(store.Repo, log, observer, inventory.RetryPolicy{
		MaxAttempts:    cfg.Adjust.MaxAttempts,
		InitialBackoff: cfg.Adjust.InitialBackoff,
		MaxBackoff:     cfg.Adjust.MaxBackoff,
		MaxElapsed:     cfg.Adjust.MaxElapsed,
	})
	queryUC := inventory.NewQueryUseCase(store.Repo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Service API",
	}))

	deps := httpRouter.RouterDeps{
		Query:   queryUC,
		Engine:  engine,
		Log:     log,
		AppName: cfg.App.Name,
	}
	if registry != nil {
		deps.Metrics = registry.Handler()
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
