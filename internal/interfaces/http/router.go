package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/swaggo/swag"

	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Query   *inventory.QueryUseCase
	Engine  *inventory.AdjustmentEngine
	Log     *logger.Logger
	Metrics nethttp.Handler // nil deshabilita /metrics
	AppName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}
	// Documento OpenAPI registrado por el paquete docs (swag)
	app.Get("/api-docs/swagger.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "documentación no registrada"})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Query, log)
	inventoryHandler := NewInventoryHandler(deps.Engine, log)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", inventoryHandler.UpdateInventory)
	products.Post("/:id/order", inventoryHandler.PlaceOrder)
	products.Post("/:id/restock", inventoryHandler.Restock)
}
