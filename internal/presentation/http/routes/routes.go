package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/concilia-retail/concilia-api/internal/config"
	"github.com/concilia-retail/concilia-api/internal/presentation/http/handler"
	"github.com/concilia-retail/concilia-api/internal/presentation/http/middleware"
	"github.com/concilia-retail/concilia-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Closing    *handler.ClosingHandler
	Divergence *handler.DivergenceHandler
	Ledger     *handler.LedgerHandler
	Receivable *handler.ReceivableHandler
	Commission *handler.CommissionHandler
	Vendor     *handler.VendorHandler
	Insight    *handler.InsightHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Logger     *logrus.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile
	protected.GET("/profile", h.Auth.GetProfile)

	// Closings and divergences
	registerClosingRoutes(protected, h)

	// Ledger
	registerLedgerRoutes(protected, h)

	// Receivables
	registerReceivableRoutes(protected, h)

	// Commissions
	registerCommissionRoutes(protected, h)

	// Vendors
	registerVendorRoutes(protected, h)

	// Insights
	protected.GET("/insights/:period", h.Insight.Get)
}

func registerClosingRoutes(protected *gin.RouterGroup, h *Handlers) {
	closings := protected.Group("/closings")
	{
		closings.GET("", h.Closing.List)
		closings.POST("", h.Closing.Create)
		closings.GET("/:period", h.Closing.Get)
		closings.POST("/:period/import", h.Closing.Import)
		closings.POST("/:period/analyze", h.Closing.Analyze)
		closings.POST("/:period/finalize", h.Closing.Finalize)
		// Locking is irreversible, admin only
		closings.POST("/:period/lock", middleware.RequireRole("admin"), h.Closing.Lock)
		closings.GET("/:period/summary", h.Closing.Summary)

		closings.GET("/:period/divergences", h.Divergence.List)
		closings.POST("/:period/divergences/:number/resolve", h.Divergence.Resolve)
		closings.GET("/:period/divergences/:number/resolutions", h.Divergence.Resolutions)
	}
}

func registerLedgerRoutes(protected *gin.RouterGroup, h *Handlers) {
	ledger := protected.Group("/ledger")
	{
		ledger.GET("", h.Ledger.List)
		ledger.POST("/adjustments", h.Ledger.RecordAdjustment)
		ledger.GET("/totals", h.Ledger.Totals)
	}
}

func registerReceivableRoutes(protected *gin.RouterGroup, h *Handlers) {
	receivables := protected.Group("/receivables")
	{
		receivables.GET("", h.Receivable.List)
		receivables.GET("/aging", h.Receivable.Aging)
		receivables.GET("/:id", h.Receivable.Get)
		receivables.POST("/:id/settle", h.Receivable.Settle)
	}
}

func registerCommissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	commissions := protected.Group("/commissions")
	{
		commissions.GET("", h.Commission.List)
		commissions.POST("/recalculate", h.Commission.Recalculate)
		commissions.POST("/:id/pay", middleware.RequireRole("admin"), h.Commission.Pay)
	}
}

func registerVendorRoutes(protected *gin.RouterGroup, h *Handlers) {
	vendors := protected.Group("/vendors")
	{
		vendors.GET("", h.Vendor.List)
		vendors.POST("", h.Vendor.Create)
		vendors.PUT("/:code", h.Vendor.Update)
	}
}
