package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JAGR1792/Inventarios/internal/application/cash"
	"github.com/JAGR1792/Inventarios/internal/application/catalog"
	"github.com/JAGR1792/Inventarios/internal/application/pos"
	"github.com/JAGR1792/Inventarios/internal/application/reporting"
	"github.com/JAGR1792/Inventarios/internal/infrastructure/postgres"
	httpRouter "github.com/JAGR1792/Inventarios/internal/interfaces/http"
	"github.com/JAGR1792/Inventarios/pkg/config"
	"github.com/JAGR1792/Inventarios/pkg/logger"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

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

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	auditRepo := postgres.NewStockAuditRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	cashRepo := postgres.NewCashRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := pos.NewStockLedgerUseCase(txRunner, productRepo, auditRepo)
	checkoutUC := pos.NewCheckoutUseCase(txRunner, productRepo, ledgerUC)
	panelUC := cash.NewPanelUseCase(txRunner, cashRepo, saleRepo)
	closeUC := cash.NewCloseUseCase(txRunner, cfg.Cash.Tolerance)
	summaryUC := reporting.NewSummaryUseCase(saleRepo, cashRepo)
	catalogUC := catalog.NewUseCase(productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Core API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CheckoutUC: checkoutUC,
		LedgerUC:   ledgerUC,
		PanelUC:    panelUC,
		CloseUC:    closeUC,
		SummaryUC:  summaryUC,
		CatalogUC:  catalogUC,
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
