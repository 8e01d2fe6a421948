package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-multibodega/internal/application/analytics"
	"github.com/jhoicas/inventario-multibodega/internal/application/auth"
	"github.com/jhoicas/inventario-multibodega/internal/application/movements"
	"github.com/jhoicas/inventario-multibodega/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine        *movements.Engine
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	ClientUC      *usecase.ClientUseCase
	UnitUC        *usecase.UnitUseCase
	AuthUC        *auth.UseCase
	AnalyticsUC   *analytics.UseCase
	JWTSecret     string
	DefaultTenant string
}

// Router registra las rutas de la API. Todo pasa primero por TenantMiddleware,
// que deja la clave de tenant resuelta en el contexto; las rutas protegidas
// exigen además un Bearer Token válido.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", TenantMiddleware(deps.JWTSecret, deps.DefaultTenant))

	// Auth y tenants disponibles (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	dashboardHandler := NewDashboardHandler(deps.AnalyticsUC)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/bodegas-disponibles", dashboardHandler.Bodegas)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solo un admin puede crear usuarios
	protected.Post("/auth/register", RequireAdmin(), authHandler.Register)

	// Movimientos
	movHandler := NewMovementHandler(deps.Engine)
	movs := protected.Group("/movimientos")
	movs.Get("/", movHandler.List)
	movs.Post("/entrada", movHandler.CreateEntrada)
	movs.Post("/salida", movHandler.CreateSalida)
	movs.Post("/dividir", movHandler.DividirProducto)
	movs.Post("/combo", movHandler.CrearCombo)
	movs.Get("/producto/:codigo", movHandler.ByCodigo)
	movs.Get("/:id", movHandler.GetByID)
	movs.Put("/:id", RequireAdmin(), movHandler.Update)
	movs.Delete("/:id", RequireAdmin(), movHandler.Delete)

	// Inventario y reportes
	invHandler := NewInventoryHandler(deps.Engine)
	inv := protected.Group("/inventario")
	inv.Get("/", invHandler.InventarioGeneral)
	inv.Get("/kardex/:id", invHandler.Kardex)
	inv.Get("/stock/:id", invHandler.Stock)
	inv.Get("/exportar", invHandler.ExportInventario)
	inv.Get("/exportar-movimientos", invHandler.ExportMovimientos)
	inv.Get("/plantilla", invHandler.ExportPlantilla)
	inv.Post("/importar", invHandler.ImportXLSX)

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/productos")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireAdmin(), productHandler.Delete)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := protected.Group("/bodegas")
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", RequireAdmin(), warehouseHandler.Delete)

	clientHandler := NewClientHandler(deps.ClientUC)
	clients := protected.Group("/clientes")
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", RequireAdmin(), clientHandler.Delete)

	unitHandler := NewUnitHandler(deps.UnitUC)
	units := protected.Group("/unidades-medida")
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Put("/:id", unitHandler.Update)
	units.Delete("/:id", RequireAdmin(), unitHandler.Delete)

	// Dashboard
	protected.Get("/dashboard", dashboardHandler.Dashboard)
}
