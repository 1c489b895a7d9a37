package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.RunMigrations(cfg.DB.ConnectionString(), "migrations"); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	movementTypeRepo := postgres.NewMovementTypeRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	revokedTokenRepo := postgres.NewRevokedTokenRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo, stockRepo, movementRepo)
	movementTypeUC := usecase.NewMovementTypeUseCase(movementTypeRepo, movementRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo, stockRepo, movementRepo)
	stockUC := usecase.NewStockUseCase(stockRepo, productRepo, locationRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, movementTypeRepo, locationRepo, stockRepo)
	movementQueryUC := inventory.NewMovementQueryUseCase(movementRepo, movementTypeRepo, productRepo, locationRepo)
	authUC := auth.NewAuthUseCase(userRepo, revokedTokenRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:       categoryUC,
		SupplierUC:       supplierUC,
		LocationUC:       locationUC,
		MovementTypeUC:   movementTypeUC,
		ProductUC:        productUC,
		StockUC:          stockUC,
		RegisterMovement: registerMovementUC,
		MovementQuery:    movementQueryUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
		RevokedTokens:    revokedTokenRepo,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
