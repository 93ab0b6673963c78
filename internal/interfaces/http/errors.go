package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

// writeError traduce errores de dominio a HTTP: NotFound 404, validación y stock 400,
// contención o deadline 503 con Retry-After, el resto 500.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var status int
	var code, msg string
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "producto no encontrado"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code, msg = fiber.StatusBadRequest, "INSUFFICIENT_STOCK", "inventario insuficiente"
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", "quantity debe ser un entero válido"
	case errors.Is(err, domain.ErrTransientConflict),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		c.Set(fiber.HeaderRetryAfter, "1")
		status, code, msg = fiber.StatusServiceUnavailable, "CONFLICT_RETRY", "producto con alta contención, reintente"
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}

	var adjErr *domain.AdjustmentError
	if errors.As(err, &adjErr) {
		return c.Status(status).JSON(dto.AdjustmentErrorResponse{
			Code:         code,
			Message:      msg,
			ProductID:    adjErr.ProductID,
			Delta:        adjErr.Delta,
			CurrentCount: adjErr.CurrentCount,
		})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
