package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	LocationUC       *usecase.LocationUseCase
	MovementTypeUC   *usecase.MovementTypeUseCase
	ProductUC        *usecase.ProductUseCase
	StockUC          *usecase.StockUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *inventory.MovementQueryUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
	RevokedTokens    repository.RevokedTokenRepository
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (signup y login públicos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token no revocado)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.RevokedTokens))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/profile", authHandler.Profile)
	protected.Get("/auth/users", RequireRole(entity.RoleAdmin), authHandler.ListUsers)

	// Categorías
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Proveedores
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Ubicaciones
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Tipos de movimiento
	movementTypes := protected.Group("/movement-types")
	movementTypeHandler := NewMovementTypeHandler(deps.MovementTypeUC)
	movementTypes.Post("/", movementTypeHandler.Create)
	movementTypes.Get("/", movementTypeHandler.List)
	movementTypes.Get("/:id", movementTypeHandler.GetByID)
	movementTypes.Put("/:id", movementTypeHandler.Update)
	movementTypes.Delete("/:id", movementTypeHandler.Delete)

	// Productos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/detail", productHandler.GetDetail)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Post("/", stockHandler.Create)
	stock.Get("/", stockHandler.List)
	stock.Get("/:product_id/:location_id", stockHandler.Get)

	// Movimientos de inventario
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementQuery)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
}
