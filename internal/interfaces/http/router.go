package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/application/replenishment"
	"github.com/jhoicas/kardex-api/internal/application/transfer"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LocationUC      *usecase.LocationUseCase
	LedgerUC        *ledger.UseCase
	TransferUC      *transfer.UseCase
	ReplenishmentUC *replenishment.UseCase
	Metrics         *Metrics
	JWTSecret       string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token;
// la configuración (ubicaciones, reglas) exige además rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", MetricsHandler())

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Locations
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Post("/", RequireRole("admin"), locationHandler.Create)
	locations.Put("/:id", RequireRole("admin"), locationHandler.Update)
	locations.Post("/:id/deactivate", RequireRole("admin"), locationHandler.Deactivate)

	// Kardex / inventario
	inventory := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.Metrics)
	inventory.Post("/movements", inventoryHandler.RecordMovement)
	inventory.Get("/balance", inventoryHandler.GetBalance)
	inventory.Get("/kardex", inventoryHandler.GetKardex)
	inventory.Post("/reconcile", inventoryHandler.Reconcile)

	// Traslados
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC, deps.Metrics)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/send", transferHandler.Send)
	transfers.Post("/:id/receive", transferHandler.Receive)
	transfers.Post("/:id/cancel", transferHandler.Cancel)

	// Reposición
	repl := api.Group("/replenishment")
	replenishmentHandler := NewReplenishmentHandler(deps.ReplenishmentUC)
	repl.Get("/evaluate", replenishmentHandler.Evaluate)
	repl.Get("/suggestions", replenishmentHandler.ListSuggestions)
	repl.Get("/rules", replenishmentHandler.ListRules)
	repl.Put("/rules", RequireRole("admin"), replenishmentHandler.UpsertRule)
}
