// stress lanza pedidos concurrentes contra una instancia de la API y verifica
// que el inventario final cuadre con los pedidos aceptados.
//
// Uso: go run ./cmd/stress -url http://localhost:3002 -product <id> [-stock 20] [-requests 50]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/inventory-service/internal/stress"
)

func main() {
	cfg := stress.Config{}
	flag.StringVar(&cfg.BaseURL, "url", "http://localhost:3002", "URL base de la API")
	flag.StringVar(&cfg.ProductID, "product", "", "ID del producto a usar")
	flag.Int64Var(&cfg.InitialStock, "stock", 20, "inventario inicial")
	flag.IntVar(&cfg.Requests, "requests", 50, "pedidos concurrentes")
	flag.Int64Var(&cfg.Quantity, "qty", 1, "unidades por pedido")
	flag.IntVar(&cfg.Retries, "retries", 3, "reintentos del cliente ante 503")
	flag.Parse()

	if cfg.ProductID == "" {
		fmt.Fprintln(os.Stderr, "falta -product")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := stress.Run(ctx, stress.NewClient(cfg), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stress: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("========== RESULTADO ==========")
	fmt.Printf("Inventario inicial: %d\n", cfg.InitialStock)
	fmt.Printf("Pedidos:            %d x %d\n", cfg.Requests, cfg.Quantity)
	fmt.Printf("Aceptados:          %d\n", res.Accepted)
	fmt.Printf("Sin inventario:     %d\n", res.Rejected)
	fmt.Printf("No disponibles:     %d\n", res.Unavailable)
	fmt.Printf("Fallidos:           %d\n", res.Failed)
	fmt.Printf("Duración:           %v\n", res.Duration)
	fmt.Printf("Inventario final:   %d (esperado %d)\n", res.FinalCount, res.ExpectedLeft)
	fmt.Println("===============================")

	if !res.Consistent() {
		fmt.Println("FAIL: el inventario final no cuadra con los pedidos aceptados")
		os.Exit(1)
	}
	fmt.Println("PASS")
}
