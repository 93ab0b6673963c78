// Package stress dispara pedidos concurrentes contra la API HTTP y verifica que el
// inventario final cuadre con los pedidos aceptados.
package stress

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/inventory-service/internal/application/dto"
)

// Config parámetros de la corrida.
type Config struct {
	BaseURL      string
	ProductID    string
	InitialStock int64
	Requests     int
	Quantity     int64
	// Retries reintentos del cliente ante 503 (contención); 0 los deshabilita.
	Retries int
}

// Result resumen de la corrida.
type Result struct {
	Accepted     int32
	Rejected     int32 // 400 inventario insuficiente
	Unavailable  int32 // 503 tras agotar reintentos
	Failed       int32 // otros estados o errores de red
	FinalCount   int64
	ExpectedLeft int64
	Duration     time.Duration
}

// Consistent indica que ningún pedido aceptado se perdió ni se duplicó.
func (r Result) Consistent() bool {
	return r.FinalCount == r.ExpectedLeft && r.FinalCount >= 0
}

// NewClient construye el cliente resty con reintentos ante 503.
func NewClient(cfg Config) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json")
	if cfg.Retries > 0 {
		client.
			SetRetryCount(cfg.Retries).
			SetRetryWaitTime(10 * time.Millisecond).
			SetRetryMaxWaitTime(200 * time.Millisecond).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err == nil && r.StatusCode() == http.StatusServiceUnavailable
			})
	}
	return client
}

// Run fija el inventario inicial, lanza los pedidos en paralelo y lee el resultado final.
func Run(ctx context.Context, client *resty.Client, cfg Config) (Result, error) {
	if cfg.Quantity <= 0 {
		cfg.Quantity = 1
	}
	path := "/api/products/" + cfg.ProductID

	resp, err := client.R().SetContext(ctx).
		SetBody(map[string]int64{"quantity": cfg.InitialStock}).
		Put(path)
	if err != nil {
		return Result{}, fmt.Errorf("fijar inventario: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Result{}, fmt.Errorf("fijar inventario: estado %d: %s", resp.StatusCode(), resp.String())
	}

	var res Result
	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < cfg.Requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.R().SetContext(ctx).
				SetBody(map[string]int64{"quantity": cfg.Quantity}).
				Post(path + "/order")
			switch {
			case err != nil:
				atomic.AddInt32(&res.Failed, 1)
			case resp.StatusCode() == http.StatusOK:
				atomic.AddInt32(&res.Accepted, 1)
			case resp.StatusCode() == http.StatusBadRequest:
				atomic.AddInt32(&res.Rejected, 1)
			case resp.StatusCode() == http.StatusServiceUnavailable:
				atomic.AddInt32(&res.Unavailable, 1)
			default:
				atomic.AddInt32(&res.Failed, 1)
			}
		}()
	}
	wg.Wait()
	res.Duration = time.Since(start)

	var product dto.ProductResponse
	resp, err = client.R().SetContext(ctx).SetResult(&product).Get(path)
	if err != nil {
		return res, fmt.Errorf("leer inventario final: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return res, fmt.Errorf("leer inventario final: estado %d", resp.StatusCode())
	}
	res.FinalCount = product.InventoryCount
	res.ExpectedLeft = cfg.InitialStock - int64(res.Accepted)*cfg.Quantity
	return res, nil
}
