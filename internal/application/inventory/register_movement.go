package inventory

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// ExecuteFromRequest adapta el body HTTP {quantity} a la intención indicada por op.
// Una cantidad ausente o fraccionaria se rechaza como ErrInvalidQuantity antes de leer el store.
func (e *AdjustmentEngine) ExecuteFromRequest(ctx context.Context, op Op, id string, in dto.QuantityRequest) (entity.StockRecord, error) {
	qty, ok := in.Int()
	if !ok {
		return entity.StockRecord{}, e.fail(op, e.reject(op, id, 0, nil, domain.ErrInvalidQuantity))
	}
	switch op {
	case OpOrder:
		return e.PlaceOrder(ctx, id, qty)
	case OpRestock:
		return e.Restock(ctx, id, qty)
	case OpSet:
		return e.SetCount(ctx, id, qty)
	case OpAdjust:
		return e.Apply(ctx, id, qty)
	}
	return entity.StockRecord{}, domain.ErrInvalidInput
}
