package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-multibodega/internal/application/analytics"
	"github.com/jhoicas/inventario-multibodega/internal/application/auth"
	"github.com/jhoicas/inventario-multibodega/internal/application/movements"
	"github.com/jhoicas/inventario-multibodega/internal/application/usecase"
	"github.com/jhoicas/inventario-multibodega/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-multibodega/internal/interfaces/http"
	"github.com/jhoicas/inventario-multibodega/internal/tenant"
	"github.com/jhoicas/inventario-multibodega/pkg/config"
	"github.com/jhoicas/inventario-multibodega/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("bodega_default", tenant.DefaultOr(cfg.Tenant.Default)).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	sessions := postgres.NewSessionManager(pool)

	engine := movements.NewEngine(sessions)
	productUC := usecase.NewProductUseCase(sessions)
	warehouseUC := usecase.NewWarehouseUseCase(sessions)
	clientUC := usecase.NewClientUseCase(sessions)
	unitUC := usecase.NewUnitUseCase(sessions)
	analyticsUC := analytics.NewUseCase(sessions)
	authUC := auth.NewUseCase(sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:        engine,
		ProductUC:     productUC,
		WarehouseUC:   warehouseUC,
		ClientUC:      clientUC,
		UnitUC:        unitUC,
		AuthUC:        authUC,
		AnalyticsUC:   analyticsUC,
		JWTSecret:     cfg.JWT.Secret,
		DefaultTenant: tenant.DefaultOr(cfg.Tenant.Default),
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
