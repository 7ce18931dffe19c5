package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/concilia-retail/concilia-api/internal/application/service"
	"github.com/concilia-retail/concilia-api/internal/config"
	"github.com/concilia-retail/concilia-api/internal/infrastructure/database"
	"github.com/concilia-retail/concilia-api/internal/infrastructure/repository"
	"github.com/concilia-retail/concilia-api/internal/presentation/http/handler"
	"github.com/concilia-retail/concilia-api/internal/presentation/http/routes"
	"github.com/concilia-retail/concilia-api/pkg/insight"
	"github.com/concilia-retail/concilia-api/pkg/oauth"
	"github.com/concilia-retail/concilia-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := config.NewLogger(&cfg.App)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	fiscalRepo := repository.NewFiscalRecordRepository(db)
	resolutionRepo := repository.NewResolutionRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	receivableRepo := repository.NewReceivableRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	closingRepo := repository.NewClosingRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	vendorService := service.NewVendorService(vendorRepo, logger)
	receivableService := service.NewReceivableService(receivableRepo, ledgerRepo, closingRepo, txManager, logger)
	ledgerService := service.NewLedgerService(ledgerRepo, closingRepo, receivableService, txManager, logger)
	divergenceService := service.NewDivergenceService(fiscalRepo, resolutionRepo, ledgerRepo, closingRepo, receivableService, txManager, logger)
	commissionService := service.NewCommissionService(commissionRepo, vendorRepo, ledgerRepo, txManager, logger)
	closingService := service.NewClosingService(closingRepo, fiscalRepo, ledgerService, commissionService, txManager, logger)

	insightGenerator := insight.NewHTTPGenerator(cfg.Insight.Endpoint, cfg.Insight.APIKey, cfg.Insight.Timeout)
	insightService := service.NewInsightService(fiscalRepo, receivableRepo, commissionRepo, insightGenerator, cfg.Features, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService, googleOAuthService),
		Closing:    handler.NewClosingHandler(closingService),
		Divergence: handler.NewDivergenceHandler(divergenceService),
		Ledger:     handler.NewLedgerHandler(ledgerService),
		Receivable: handler.NewReceivableHandler(receivableService),
		Commission: handler.NewCommissionHandler(commissionService),
		Vendor:     handler.NewVendorHandler(vendorService),
		Insight:    handler.NewInsightHandler(insightService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Logger:     logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Infof("Starting %s server on port %s (env: %s)", cfg.App.Name, port, cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
