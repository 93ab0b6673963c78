// seed puebla el store configurado (STORE_DRIVER) con productos de ejemplo.
//
// Uso: go run ./cmd/seed [-n 10] [-file productos.csv] [-latin1]
// Sin -file genera n productos con inventario entre 5 y 50.
// El CSV lleva cabecera y columnas name,inventory_count[,id].
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/inventory-service/internal/application/seed"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/infrastructure/storage"
	"github.com/jhoicas/inventory-service/pkg/config"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

func main() {
	n := flag.Int("n", 10, "cantidad de productos a generar")
	file := flag.String("file", "", "CSV con productos (name,inventory_count[,id])")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	var recs []entity.StockRecord
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
			os.Exit(1)
		}
		recs, err = seed.ReadCSV(f, *latin1)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
			os.Exit(1)
		}
	} else {
		recs = seed.Generate(*n, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	created, err := seed.NewSeeder(store.Repo, store.Tx, log).Seed(ctx, recs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sembrar: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Productos creados: %d de %d\n", created, len(recs))
}
