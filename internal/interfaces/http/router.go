package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventory-tracker/internal/application/analytics"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/purchasing"
	"github.com/jhoicas/inventory-tracker/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC           *usecase.ItemUseCase
	Ledger           *inventory.LedgerUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	SupplierUC       *purchasing.SupplierUseCase
	PurchaseOrderUC  *purchasing.PurchaseOrderUseCase
	PurchaseOrderPDF *purchasing.PDFUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	JWTSecret        string
	RequestTimeout   time.Duration
	ServiceName      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	api := app.Group("/api", RequestTimeout(timeout), ActorMiddleware(deps.JWTSecret))

	// Items + ledger
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.Ledger)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Get("/:id/movements", itemHandler.Movements)
	items.Post("/:id/adjust", itemHandler.Adjust)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Purchase orders
	orders := api.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC, deps.PurchaseOrderPDF)
	orders.Post("/", poHandler.Create)
	orders.Get("/", poHandler.List)
	orders.Get("/:id", poHandler.GetByID)
	orders.Put("/:id", poHandler.Update)
	orders.Delete("/:id", poHandler.Delete)
	orders.Post("/:id/receive", poHandler.Receive)
	orders.Post("/:id/cancel", poHandler.Cancel)
	orders.Get("/:id/pdf", poHandler.DownloadPDF)

	// Inventory
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Replenishment)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
