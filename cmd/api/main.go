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

	"github.com/jhoicas/Stock-api/internal/application/bulk"
	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/internal/application/inventory"
	"github.com/jhoicas/Stock-api/internal/application/orders"
	"github.com/jhoicas/Stock-api/internal/application/usecase"
	"github.com/jhoicas/Stock-api/internal/infrastructure/excel"
	"github.com/jhoicas/Stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Stock-api/internal/infrastructure/rabbitmq"
	httpRouter "github.com/jhoicas/Stock-api/internal/interfaces/http"
	"github.com/jhoicas/Stock-api/pkg/config"
	"github.com/jhoicas/Stock-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Relay de eventos CRUD: sin URL configurada los eventos se descartan.
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQP.URL != "" {
		rmq, err := rabbitmq.NewPublisher(cfg.AMQP, log)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible, eventos desactivados")
		} else {
			defer rmq.Close()
			publisher = rmq
		}
	}

	productRepo := postgres.NewProductRepository(pool)
	siteRepo := postgres.NewSiteRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	templateRepo := postgres.NewOrderTemplateRepository(pool)
	linkRepo := postgres.NewProductSupplierRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo, publisher)
	siteUC := usecase.NewSiteUseCase(siteRepo, publisher)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, publisher)
	productSupplierUC := usecase.NewProductSupplierUseCase(linkRepo, productRepo, supplierRepo, publisher)
	recordMovementUC := inventory.NewRecordMovementUseCase(txRunner, movementRepo, productRepo, siteRepo, publisher)
	stockViewsUC := inventory.NewStockViewUseCase(stockRepo, productRepo, linkRepo)
	orderUC := orders.NewUseCase(txRunner, orderRepo, supplierRepo, siteRepo, publisher)
	templateUC := orders.NewTemplateUseCase(templateRepo, supplierRepo, siteRepo, publisher)
	exportUC := bulk.NewExportUseCase(productRepo, siteRepo, stockRepo, movementRepo, excel.NewBuilder())
	importUC := bulk.NewImportUseCase(txRunner, productRepo, siteRepo, excel.NewParser(), publisher)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:         productUC,
		SiteUC:            siteUC,
		SupplierUC:        supplierUC,
		ProductSupplierUC: productSupplierUC,
		RecordMovement:    recordMovementUC,
		StockViews:        stockViewsUC,
		OrderUC:           orderUC,
		TemplateUC:        templateUC,
		ExportUC:          exportUC,
		ImportUC:          importUC,
		JWTSecret:         cfg.JWT.Secret,
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
