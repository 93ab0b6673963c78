package inventory

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

// QueryUseCase vistas de solo lectura sobre el store (get / list).
type QueryUseCase struct {
	repo repository.StockRecordRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(repo repository.StockRecordRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// Get obtiene un producto por ID; domain.ErrNotFound si no existe.
func (uc *QueryUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToProductResponse(rec)
	return &out, nil
}

// List lista todos los productos ordenados por nombre.
func (uc *QueryUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, ToProductResponse(rec))
	}
	return items, nil
}

// ToProductResponse convierte la entidad al DTO de salida.
func ToProductResponse(rec *entity.StockRecord) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             rec.ID,
		Name:           rec.Name,
		InventoryCount: rec.Count,
		Version:        rec.Version,
		UpdatedAt:      rec.UpdatedAt.UTC(),
	}
}
