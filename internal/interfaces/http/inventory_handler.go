package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

// InventoryHandler maneja los ajustes de inventario; todos pasan por el motor CAS.
type InventoryHandler struct {
	engine *inventory.AdjustmentEngine
	log    *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *inventory.AdjustmentEngine, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{engine: engine, log: log}
}

// UpdateInventory godoc
// @Summary      Fijar inventario
// @Description  Reemplaza inventoryCount por quantity (entero >= 0).
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del producto"
// @Param        body  body  dto.QuantityRequest  true  "quantity"
// @Success      200   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.AdjustmentErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.AdjustmentErrorResponse
// @Router       /api/products/{id} [put]
func (h *InventoryHandler) UpdateInventory(c *fiber.Ctx) error {
	return h.adjust(c, inventory.OpSet, "inventario actualizado")
}

// PlaceOrder godoc
// @Summary      Registrar pedido
// @Description  Descuenta quantity (> 0) del inventario; 400 si no alcanza.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del producto"
// @Param        body  body  dto.QuantityRequest  true  "quantity"
// @Success      200   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.AdjustmentErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.AdjustmentErrorResponse
// @Router       /api/products/{id}/order [post]
func (h *InventoryHandler) PlaceOrder(c *fiber.Ctx) error {
	return h.adjust(c, inventory.OpOrder, "pedido registrado")
}

// Restock godoc
// @Summary      Reponer inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del producto"
// @Param        body  body  dto.QuantityRequest  true  "quantity"
// @Success      200   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.AdjustmentErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.AdjustmentErrorResponse
// @Router       /api/products/{id}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	return h.adjust(c, inventory.OpRestock, "reposición registrada")
}

func (h *InventoryHandler) adjust(c *fiber.Ctx, op inventory.Op, message string) error {
	var in dto.QuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.engine.ExecuteFromRequest(c.Context(), op, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.AdjustmentResponse{
		Message: message,
		Product: inventory.ToProductResponse(&rec),
	})
}
