package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stock-api/internal/application/bulk"
	"github.com/jhoicas/Stock-api/internal/application/inventory"
	"github.com/jhoicas/Stock-api/internal/application/orders"
	"github.com/jhoicas/Stock-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC         *usecase.ProductUseCase
	SiteUC            *usecase.SiteUseCase
	SupplierUC        *usecase.SupplierUseCase
	ProductSupplierUC *usecase.ProductSupplierUseCase
	RecordMovement    *inventory.RecordMovementUseCase
	StockViews        *inventory.StockViewUseCase
	OrderUC           *orders.UseCase
	TemplateUC        *orders.TemplateUseCase
	ExportUC          *bulk.ExportUseCase
	ImportUC          *bulk.ImportUseCase
	JWTSecret         string
}

// Router registra las rutas de la API. Todo /api exige Bearer Token; la
// importación masiva además exige rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Vínculos producto-proveedor (subrecurso de products)
	linkHandler := NewProductSupplierHandler(deps.ProductSupplierUC)
	products.Get("/:id/suppliers", linkHandler.List)
	products.Post("/:id/suppliers", linkHandler.Add)
	products.Put("/:id/suppliers/:supplierId/primary", linkHandler.SetPrimary)
	products.Delete("/:id/suppliers/:supplierId", linkHandler.Remove)

	// Sites
	sites := api.Group("/sites")
	siteHandler := NewSiteHandler(deps.SiteUC)
	sites.Post("/", siteHandler.Create)
	sites.Get("/", siteHandler.List)
	sites.Get("/:id", siteHandler.GetByID)
	sites.Put("/:id", siteHandler.Update)
	sites.Delete("/:id", siteHandler.Delete)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Stock movements (inmutables: sin PUT ni DELETE)
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.RecordMovement)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)

	// Stocks (solo lectura)
	stocks := api.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockViews)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/alerts", stockHandler.Alerts)
	stocks.Get("/product/:productId", stockHandler.ByProduct)
	stocks.Get("/site/:siteId", stockHandler.BySite)

	// Orders
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Post("/:id/receive-all", orderHandler.ReceiveAll)
	ordersGroup.Post("/:id/items/:itemId/receive", orderHandler.ReceiveItem)

	// Order templates (modelos de pedido reutilizables)
	templates := api.Group("/order-templates")
	templateHandler := NewOrderTemplateHandler(deps.TemplateUC)
	templates.Post("/", templateHandler.Create)
	templates.Get("/", templateHandler.List)
	templates.Get("/:id", templateHandler.GetByID)
	templates.Put("/:id", templateHandler.Update)
	templates.Delete("/:id", templateHandler.Delete)

	// Export / Import Excel
	bulkHandler := NewBulkHandler(deps.ExportUC, deps.ImportUC)
	api.Get("/export/stocks", bulkHandler.ExportStocks)
	api.Get("/export/movements", bulkHandler.ExportMovements)
	api.Post("/import/stocks", RequireRole(RoleAdmin), bulkHandler.ImportStocks)
}
