package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/covu/backend/internal/application/catalog"
	eventapp "github.com/covu/backend/internal/application/event"
	identityapp "github.com/covu/backend/internal/application/identity"
	notifapp "github.com/covu/backend/internal/application/notification"
	orderapp "github.com/covu/backend/internal/application/order"
	walletapp "github.com/covu/backend/internal/application/wallet"
	"github.com/covu/backend/internal/infrastructure/cache"
	"github.com/covu/backend/internal/infrastructure/config"
	"github.com/covu/backend/internal/infrastructure/event"
	"github.com/covu/backend/internal/infrastructure/logger"
	notifinfra "github.com/covu/backend/internal/infrastructure/notification"
	"github.com/covu/backend/internal/infrastructure/persistence"
	"github.com/covu/backend/internal/interfaces/http/handler"
	"github.com/covu/backend/internal/interfaces/http/middleware"
	"github.com/covu/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting COVU Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	walletRepo := persistence.NewGormWalletRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Event serialization and transactional outbox publishing
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)
	outboxPublisher := event.NewOutboxPublisher(eventSerializer)

	// Transaction scopes bind each use case to its unit of work
	orderScope := persistence.NewGormOrderTransactionScope(db.DB, outboxPublisher)
	walletScope := persistence.NewGormWalletTransactionScope(db.DB)
	identityScope := persistence.NewGormIdentityTransactionScope(db.DB)

	// Initialize application services
	userService := identityapp.NewUserService(identityScope, userRepo, log)
	ledgerService := walletapp.NewLedgerService(walletScope, walletRepo, ledgerRepo, log)
	orderService := orderapp.NewService(orderScope, orderRepo, walletRepo, productRepo, storeRepo, userRepo, log)
	catalogService := catalogapp.NewService(productRepo, storeRepo, log)
	notificationService := notifapp.NewService(notificationRepo, notifinfra.NewLogSender(log), log)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Order lifecycle events feed user notifications. The handler is wrapped
	// for idempotency so a redelivered outbox entry never notifies twice.
	idempotencyFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := idempotencyFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	orderEventHandler := notifapp.NewOrderEventHandler(notificationService, log)
	eventBus.Subscribe(event.NewIdempotentHandler(orderEventHandler, idempotencyStore, log))

	log.Info("Event handlers registered",
		zap.Strings("order_events", orderEventHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Outbox processor relays committed events to the bus
	if cfg.Event.ProcessorEnabled {
		processorConfig := event.DefaultOutboxProcessorConfig()
		if cfg.Event.BatchSize > 0 {
			processorConfig.BatchSize = cfg.Event.BatchSize
		}
		if cfg.Event.PollInterval > 0 {
			processorConfig.PollInterval = cfg.Event.PollInterval
		}
		processorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
		if cfg.Event.CleanupRetention > 0 {
			processorConfig.CleanupRetention = cfg.Event.CleanupRetention
		}
		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, processorConfig, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
		log.Info("Outbox processor started",
			zap.Int("batch_size", processorConfig.BatchSize),
			zap.Duration("poll_interval", processorConfig.PollInterval),
		)
	}

	// Initialize HTTP handlers
	userHandler := handler.NewUserHandler(userService)
	walletHandler := handler.NewWalletHandler(ledgerService)
	orderHandler := handler.NewOrderHandler(orderService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	outboxHandler := handler.NewOutboxHandler(outboxService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing())
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.POST("/register", userHandler.Register)
	userRoutes.POST("/login", userHandler.Login)
	userRoutes.GET("/me", userHandler.Me)
	r.Register(userRoutes)

	walletRoutes := router.NewDomainGroup("wallet", "/wallet")
	walletRoutes.GET("", walletHandler.GetWallet)
	walletRoutes.GET("/summary", walletHandler.GetSummary)
	walletRoutes.GET("/transactions", walletHandler.ListTransactions)
	walletRoutes.POST("/deposit", walletHandler.Deposit)
	walletRoutes.POST("/withdraw", walletHandler.Withdraw)
	r.Register(walletRoutes)

	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("/purchases", orderHandler.ListPurchases)
	orderRoutes.GET("/sales", orderHandler.ListSales)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/:id/accept", orderHandler.Accept)
	orderRoutes.POST("/:id/deliver", orderHandler.Deliver)
	orderRoutes.POST("/:id/confirm", orderHandler.Confirm)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	r.Register(orderRoutes)

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/products/:id", catalogHandler.GetProduct)
	catalogRoutes.GET("/stores/:id", catalogHandler.GetStore)
	catalogRoutes.GET("/stores/:id/products", catalogHandler.ListStoreProducts)
	catalogRoutes.GET("/my-store", catalogHandler.GetMyStore)
	r.Register(catalogRoutes)

	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.GET("", notificationHandler.List)
	notificationRoutes.GET("/unread-count", notificationHandler.UnreadCount)
	notificationRoutes.POST("/:id/read", notificationHandler.MarkRead)
	notificationRoutes.POST("/read-all", notificationHandler.MarkAllRead)
	r.Register(notificationRoutes)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/outbox/dead-letter", outboxHandler.GetDeadLetterEntries)
	systemRoutes.GET("/outbox/stats", outboxHandler.GetStats)
	systemRoutes.GET("/outbox/:id", outboxHandler.GetEntry)
	systemRoutes.POST("/outbox/:id/retry", outboxHandler.RetryDeadEntry)
	systemRoutes.POST("/outbox/retry-all", outboxHandler.RetryAllDeadEntries)
	r.Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
