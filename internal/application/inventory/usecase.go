package inventory

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

// Op identifica la intención del llamador; define qué validaciones aplican.
type Op string

const (
	OpOrder   Op = "order"
	OpRestock Op = "restock"
	OpSet     Op = "set"
	OpAdjust  Op = "adjust"
)

// RetryPolicy acota el bucle optimista en intentos y tiempo total.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxElapsed     time.Duration
}

// DefaultRetryPolicy 5 intentos, backoff 10ms..200ms, máximo 2s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    5,
		InitialBackoff: 10 * time.Millisecond,
		MaxBackoff:     200 * time.Millisecond,
		MaxElapsed:     2 * time.Second,
	}
}

// AdjustmentEngine aplica deltas sobre inventory_count con lectura optimista y escritura
// condicional por versión (CAS). Es el único camino de mutación del inventario.
type AdjustmentEngine struct {
	repo   repository.StockRecordRepository
	log    *logger.Logger
	obs    Observer
	policy RetryPolicy
}

// NewAdjustmentEngine construye el motor. obs puede ser nil.
func NewAdjustmentEngine(repo repository.StockRecordRepository, log *logger.Logger, obs Observer, policy RetryPolicy) *AdjustmentEngine {
	if obs == nil {
		obs = NopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &AdjustmentEngine{
		repo:   repo,
		log:    log.Component("adjustment_engine"),
		obs:    obs,
		policy: policy,
	}
}

// computeFn calcula el nuevo inventario a partir del registro leído; un error es un rechazo definitivo.
type computeFn func(cur *entity.StockRecord) (int64, error)

// Apply suma delta (negativo = pedido, positivo = reposición) respetando count >= 0.
func (e *AdjustmentEngine) Apply(ctx context.Context, id string, delta int64) (entity.StockRecord, error) {
	return e.applyDelta(ctx, OpAdjust, id, delta)
}

// PlaceOrder descuenta quantity unidades; quantity debe ser > 0.
func (e *AdjustmentEngine) PlaceOrder(ctx context.Context, id string, quantity int64) (entity.StockRecord, error) {
	if quantity <= 0 {
		return entity.StockRecord{}, e.fail(OpOrder, e.reject(OpOrder, id, -quantity, nil, domain.ErrInvalidQuantity))
	}
	return e.applyDelta(ctx, OpOrder, id, -quantity)
}

// Restock suma quantity unidades; quantity debe ser > 0.
func (e *AdjustmentEngine) Restock(ctx context.Context, id string, quantity int64) (entity.StockRecord, error) {
	if quantity <= 0 {
		return entity.StockRecord{}, e.fail(OpRestock, e.reject(OpRestock, id, quantity, nil, domain.ErrInvalidQuantity))
	}
	return e.applyDelta(ctx, OpRestock, id, quantity)
}

// SetCount fija el inventario a un valor absoluto (>= 0). Pasa por el mismo CAS que los
// pedidos para que un ajuste administrativo y un pedido concurrente no pierdan escrituras.
func (e *AdjustmentEngine) SetCount(ctx context.Context, id string, count int64) (entity.StockRecord, error) {
	if count < 0 {
		return entity.StockRecord{}, e.fail(OpSet, e.reject(OpSet, id, count, nil, domain.ErrInvalidQuantity))
	}
	return e.run(ctx, OpSet, id, count, func(*entity.StockRecord) (int64, error) {
		return count, nil
	})
}

func (e *AdjustmentEngine) applyDelta(ctx context.Context, op Op, id string, delta int64) (entity.StockRecord, error) {
	if delta == 0 {
		return entity.StockRecord{}, e.fail(op, e.reject(op, id, delta, nil, domain.ErrInvalidQuantity))
	}
	return e.run(ctx, op, id, delta, func(cur *entity.StockRecord) (int64, error) {
		if delta > 0 && cur.Count > math.MaxInt64-delta {
			return 0, e.reject(op, id, delta, nil, domain.ErrInvalidQuantity)
		}
		candidate := cur.Count + delta
		if candidate < 0 {
			current := cur.Count
			return 0, e.reject(op, id, delta, &current, domain.ErrInsufficientStock)
		}
		return candidate, nil
	})
}

// run ejecuta el bucle Reading -> Validating -> Writing -> (Done | Retry | Failed).
// Solo ErrConflict se reintenta; negocio y fallas del store son definitivos.
func (e *AdjustmentEngine) run(ctx context.Context, op Op, id string, delta int64, compute computeFn) (entity.StockRecord, error) {
	start := time.Now()
	attempts := 0

	operation := func() (entity.StockRecord, error) {
		attempts++

		cur, err := e.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return entity.StockRecord{}, backoff.Permanent(e.reject(op, id, delta, nil, domain.ErrNotFound))
			}
			return entity.StockRecord{}, backoff.Permanent(err)
		}

		newCount, err := compute(cur)
		if err != nil {
			return entity.StockRecord{}, backoff.Permanent(err)
		}

		// precisión de microsegundos, la que guardan postgres y mysql
		stamp := time.Now().UTC().Truncate(time.Microsecond)
		version, err := e.repo.ConditionalUpdate(ctx, id, cur.Version, newCount, stamp)
		switch {
		case err == nil:
			cur.Count = newCount
			cur.Version = version
			cur.UpdatedAt = stamp
			return *cur, nil
		case errors.Is(err, domain.ErrConflict):
			e.obs.ConflictRetried(op)
			return entity.StockRecord{}, err
		case errors.Is(err, domain.ErrNotFound):
			// borrado entre la lectura y la escritura
			return entity.StockRecord{}, backoff.Permanent(e.reject(op, id, delta, nil, domain.ErrNotFound))
		default:
			return entity.StockRecord{}, backoff.Permanent(err)
		}
	}

	rec, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(&backoff.ExponentialBackOff{
			InitialInterval:     e.policy.InitialBackoff,
			RandomizationFactor: 0.5,
			Multiplier:          2,
			MaxInterval:         e.policy.MaxBackoff,
		}),
		backoff.WithMaxTries(uint(e.policy.MaxAttempts)),
		backoff.WithMaxElapsedTime(e.policy.MaxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			e.log.Debug().
				Str("op", string(op)).
				Str("product_id", id).
				Int("attempt", attempts).
				Dur("backoff", next).
				Err(err).
				Msg("conflicto de versión, reintentando")
		}),
	)
	if err == nil {
		e.obs.AdjustmentApplied(op, attempts, time.Since(start))
		e.log.Debug().
			Str("op", string(op)).
			Str("product_id", id).
			Int64("delta", delta).
			Int64("inventory_count", rec.Count).
			Int64("version", rec.Version).
			Int("attempts", attempts).
			Msg("ajuste aplicado")
		return rec, nil
	}

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}

	if errors.Is(err, domain.ErrConflict) {
		e.obs.RetriesExhausted(op)
		e.log.Warn().
			Str("op", string(op)).
			Str("product_id", id).
			Int64("delta", delta).
			Int("attempts", attempts).
			Dur("elapsed", time.Since(start)).
			Msg("reintentos agotados por contención")
		return entity.StockRecord{}, &domain.AdjustmentError{
			Op:        string(op),
			ProductID: id,
			Delta:     delta,
			Attempts:  attempts,
			Err:       domain.ErrTransientConflict,
		}
	}

	return entity.StockRecord{}, e.fail(op, err)
}

func (e *AdjustmentEngine) fail(op Op, err error) error {
	e.obs.AdjustmentRejected(op, err)
	return err
}

func (e *AdjustmentEngine) reject(op Op, id string, delta int64, current *int64, err error) error {
	return &domain.AdjustmentError{
		Op:           string(op),
		ProductID:    id,
		Delta:        delta,
		CurrentCount: current,
		Err:          err,
	}
}
