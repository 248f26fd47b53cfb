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

	_ "github.com/jhoicas/inventory-tracker/docs"
	appanalytics "github.com/jhoicas/inventory-tracker/internal/application/analytics"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/purchasing"
	"github.com/jhoicas/inventory-tracker/internal/application/usecase"
	infrapdf "github.com/jhoicas/inventory-tracker/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/inventory-tracker/internal/interfaces/http"
	"github.com/jhoicas/inventory-tracker/pkg/config"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	be, err := openBackend(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer be.close()

	ledgerUC := inventory.NewLedgerUseCase(be.tx, be.items, be.movements, log)
	itemUC := usecase.NewItemUseCase(be.tx, be.items, ledgerUC)
	replenishmentUC := inventory.NewReplenishmentUseCase(be.levels)
	supplierUC := purchasing.NewSupplierUseCase(be.suppliers)
	purchaseOrderUC := purchasing.NewPurchaseOrderUseCase(be.tx, be.orders, be.suppliers, be.items, ledgerUC, log)
	dashboardUC := appanalytics.NewDashboardUseCase(be.analytics, cfg.Documents.Currency)

	// PDF: documento imprimible de la orden de compra
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Issuer{
		Name:    cfg.Documents.CompanyName,
		Address: cfg.Documents.CompanyAddress,
	}, cfg.Documents.Currency)
	purchaseOrderPDFUC := purchasing.NewPDFUseCase(be.orders, be.suppliers, be.items, pdfGenerator)

	if cfg.Alerts.Enabled {
		evaluator := inventory.NewAlertEvaluator(be.levels, nil, cfg.Alerts.Interval(), log)
		go evaluator.Run(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.HTTP.RequestTimeout() + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Tracker API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:           itemUC,
		Ledger:           ledgerUC,
		Replenishment:    replenishmentUC,
		SupplierUC:       supplierUC,
		PurchaseOrderUC:  purchaseOrderUC,
		PurchaseOrderPDF: purchaseOrderPDFUC,
		DashboardUC:      dashboardUC,
		JWTSecret:        cfg.JWT.Secret,
		RequestTimeout:   cfg.HTTP.RequestTimeout(),
		ServiceName:      cfg.App.Name,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
