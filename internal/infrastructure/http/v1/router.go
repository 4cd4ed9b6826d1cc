// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/catalogs/category"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents/invoice"
	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/http/v1/handlers"
	"stockbook/internal/infrastructure/http/v1/middleware"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/postgres/catalog_repo"
	"stockbook/internal/infrastructure/storage/postgres/document_repo"
	"stockbook/internal/infrastructure/storage/postgres/report_repo"
	"stockbook/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (used for health checks)
	Pool *postgres.Pool

	// TxManager drives all repository access
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories share one injected TxManager
	categoryRepo := catalog_repo.NewCategoryRepo(cfg.TxManager)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	inputRepo := document_repo.NewInputInvoiceRepo(cfg.TxManager)
	outputRepo := document_repo.NewOutputInvoiceRepo(cfg.TxManager)
	reportRepo := report_repo.NewStockMovementRepo(cfg.TxManager)

	// Services
	categoryService := category.NewService(categoryRepo, productRepo, cfg.TxManager)
	productService := product.NewService(productRepo, categoryRepo, cfg.TxManager)
	inputService := invoice.NewService(invoice.DirectionInput, inputRepo, productRepo, cfg.TxManager)
	outputService := invoice.NewService(invoice.DirectionOutput, outputRepo, productRepo, cfg.TxManager)
	reportsService := reports.NewService(reportRepo, cfg.TxManager)

	// Handlers
	baseHandler := handlers.NewBaseHandler()
	categoryHandler := handlers.NewCategoryHandler(baseHandler, categoryService)
	productHandler := handlers.NewProductHandler(baseHandler, productService)
	inputHandler := handlers.NewInvoiceHandler(baseHandler, inputService)
	outputHandler := handlers.NewInvoiceHandler(baseHandler, outputService)
	reportsHandler := handlers.NewReportsHandler(baseHandler, reportsService)

	// API v1 (JWT protected)
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTValidator))
	{
		catalogs := api.Group("/catalog")
		{
			categories := catalogs.Group("/categories")
			handlers.RegisterCatalogRoutes(categories, categoryHandler)
			categories.GET("/:id/products", productHandler.ListByCategory)

			handlers.RegisterCatalogRoutes(catalogs.Group("/products"), productHandler.CatalogHandler)
		}

		invoices := api.Group("/invoices")
		{
			handlers.RegisterInvoiceRoutes(invoices.Group("/input"), inputHandler)
			handlers.RegisterInvoiceRoutes(invoices.Group("/output"), outputHandler)
		}

		api.GET("/reports/stock-movement", reportsHandler.GetStockMovement)
	}

	return router
}
