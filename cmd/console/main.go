package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/config"
	"mims-console/internal/infrastructure/backend"
	"mims-console/internal/infrastructure/cache"
	"mims-console/internal/infrastructure/localstore"
	"mims-console/internal/presentation/http/handler"
	"mims-console/internal/presentation/http/routes"
	"mims-console/pkg/render"
	"mims-console/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open the local store (restored identity, preferences, idempotency)
	store, err := localstore.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer store.Close()

	// Optional redis-backed catalog cache
	var catalogCache *cache.CatalogCache
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Warning: redis unavailable, caching locally only: %v", err)
			catalogCache = cache.NewCatalogCache(nil)
		} else {
			catalogCache = cache.NewCatalogCache(rdb)
		}
	} else {
		catalogCache = cache.NewCatalogCache(nil)
	}

	// Backend client with the request timeout baked into its http.Client
	backendClient := backend.New(cfg.Backend.BaseURL, &http.Client{Timeout: cfg.Backend.Timeout})

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Page format for exports
	defaultFormat, err := render.ParsePageFormat(cfg.Export.PageFormat)
	if err != nil {
		log.Fatalf("Invalid EXPORT_PAGE_FORMAT: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(backendClient, store, jwtManager)
	catalogService := service.NewCatalogService(backendClient, catalogCache)
	orderService := service.NewOrderService(catalogService)
	billService := service.NewBillService(backendClient, orderService, cfg.Share.CountryCode)
	invoiceService := service.NewInvoiceService()
	exportService := service.NewExportService(render.NewRodOpener(cfg.Export.Scale, cfg.Export.Quality))
	shareService := service.NewShareService(
		exportService,
		&http.Client{Timeout: cfg.Backend.Timeout},
		cfg.Share.UploadURL,
		cfg.Share.CountryCode,
		cfg.Share.MessageTemplate,
	)
	profileService := service.NewProfileService(backendClient, store)
	preferencesService := service.NewPreferencesService(store)
	tradeService := service.NewTradeService(backendClient)
	dashboardService := service.NewDashboardService(billService, catalogService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService, preferencesService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Billing: handler.NewBillingHandler(orderService, billService),
		Invoice: handler.NewInvoiceHandler(
			orderService, billService, profileService,
			invoiceService, exportService, shareService, defaultFormat,
		),
		Profile:     handler.NewProfileHandler(profileService),
		Preferences: handler.NewPreferencesHandler(preferencesService),
		Trade:       handler.NewTradeHandler(tradeService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Store:      store,
		Profiles:   profileService,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)
	log.Printf("Backend: %s", cfg.Backend.BaseURL)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
