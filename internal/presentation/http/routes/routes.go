package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/config"
	"mims-console/internal/infrastructure/localstore"
	"mims-console/internal/presentation/http/handler"
	"mims-console/internal/presentation/http/middleware"
	"mims-console/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Catalog     *handler.CatalogHandler
	Billing     *handler.BillingHandler
	Invoice     *handler.InvoiceHandler
	Profile     *handler.ProfileHandler
	Preferences *handler.PreferencesHandler
	Trade       *handler.TradeHandler
	Dashboard   *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Store      *localstore.Store
	Profiles   *service.ProfileService
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
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
		// Public routes (no session required)
		registerAuthRoutes(v1, h)

		// Session routes (valid token required)
		protected := v1.Group("")
		protected.Use(middleware.SessionMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerSessionRoutes(protected, h)

		// Business routes additionally require an onboarded profile
		business := protected.Group("")
		business.Use(middleware.RequireBusinessProfile(deps.Profiles))

		registerBusinessRoutes(business, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/login-otp", h.Auth.LoginOTP)
		auth.POST("/verify-otp", h.Auth.VerifyOTP)
	}
}

// registerSessionRoutes covers what a logged-in but possibly not yet
// onboarded account may do: inspect the session, manage preferences, and
// create the business profile itself.
func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/session", h.Auth.Session)

	protected.GET("/preferences", h.Preferences.Get)
	protected.PUT("/preferences", h.Preferences.Save)

	protected.GET("/business-profile", h.Profile.Get)
	protected.POST("/business-profile", h.Profile.Save)
}

func registerBusinessRoutes(business *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Dashboard
	business.GET("/dashboard", h.Dashboard.Summary)

	// Catalog
	products := business.Group("/products")
	{
		products.GET("", h.Catalog.List)
		products.POST("", h.Catalog.Create)
		products.PUT("/:id", h.Catalog.Update)
		products.DELETE("/:id", h.Catalog.Delete)
	}

	// Draft order
	draft := business.Group("/draft")
	{
		draft.GET("", h.Billing.GetDraft)
		draft.POST("/lines", h.Billing.AddLine)
		draft.DELETE("/lines/:item_id", h.Billing.RemoveLine)
		draft.PUT("/customer", h.Billing.SetCustomer)
		draft.POST("/reset", h.Billing.ResetDraft)
	}

	// Bills
	bills := business.Group("/bills")
	{
		bills.GET("", h.Billing.ListBills)
		// Bill creation requires an idempotency key so a double submit
		// cannot create two bills
		bills.POST("", middleware.IdempotencyRequired(deps.Store), h.Billing.SaveBill)
		bills.GET("/recent", h.Billing.RecentBills)
		bills.GET("/:id", h.Billing.GetBill)
		bills.GET("/:id/invoice.pdf", h.Invoice.BillPDF)
		bills.POST("/:id/share", h.Invoice.Share)
	}

	// Invoice preview (pre-save)
	invoices := business.Group("/invoices")
	{
		invoices.GET("/preview", h.Invoice.Preview)
		invoices.GET("/preview.pdf", h.Invoice.PreviewPDF)
	}

	// Trade journal
	trades := business.Group("/trades")
	{
		trades.GET("", h.Trade.List)
		trades.POST("", h.Trade.Create)
		trades.PUT("/:id", h.Trade.Update)
		trades.DELETE("/:id", h.Trade.Delete)
	}
}
