package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/analytics"
	"github.com/jhoicas/inventario-stock/internal/application/auth"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory *inventory.InventoryService
	History   *inventory.MovementHistoryUseCase
	Report    *analytics.StockReportUseCase
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	Verifier  TokenVerifier
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authn := AuthMiddleware(deps.Verifier)
	adminOnly := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleEmpleado)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authn, authHandler.Me)

	// Products: lectura pública, escritura por rol.
	// search va antes de /:id para que no lo capture el parámetro.
	productHandler := NewProductHandler(deps.Inventory)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/search/name", productHandler.SearchByName)
	products.Get("/search/category", productHandler.SearchByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authn, adminOnly, productHandler.Create)
	products.Put("/:id", authn, staff, productHandler.Update)
	products.Delete("/:id", authn, adminOnly, productHandler.Delete)

	// Stock (protegido)
	stockHandler := NewStockHandler(deps.Inventory, deps.History, deps.Report)
	stock := api.Group("/stock", authn)
	stock.Post("/movements", staff, stockHandler.RegisterMovement)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/alerts/low-stock", stockHandler.LowStock)
	stock.Get("/alerts/out-of-stock", stockHandler.OutOfStock)
	stock.Get("/products/:id/low-stock", stockHandler.CheckLowStock)
	stock.Get("/statistics", stockHandler.Statistics)
	stock.Get("/report.pdf", adminOnly, stockHandler.ReportPDF)

	// Administración de usuarios (solo ADMIN)
	userHandler := NewUserHandler(deps.UserUC)
	admin := api.Group("/admin", authn, adminOnly)
	admin.Get("/roles", userHandler.ListRoles)
	users := admin.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Put("/:id/password", userHandler.ResetPassword)
	users.Put("/:id/roles", userHandler.AssignRoles)
}
