// Command server runs the Event SaaS HTTP API.
//
//go:generate swag init --generalInfo main.go --dir ./,../../internal/interfaces/http/handler,../../internal/application,../../internal/interfaces/http/dto --output ../../docs --parseInternal
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/analytics"
	billingapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/billing"
	identityapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/identity"
	planningapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/planning"
	settingsapp "github.com/m3shovon/Event-SaaS-Platform/internal/application/settings"
	"github.com/m3shovon/Event-SaaS-Platform/internal/application/whatsapp"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/auth"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/cache"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/event"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/storage"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/telemetry"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/handler"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/middleware"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/router"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/m3shovon/Event-SaaS-Platform/docs"
)

// @title                       Event SaaS Platform API
// @version                     1.0
// @description                 Multi-tenant event planning: events, budgets, guests, vendors, analytics and manual billing.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
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
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// OpenTelemetry providers; each one is a no-op when its signal is off
	telemetryCfg := telemetry.ConfigFrom(cfg.Telemetry)
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for name, shutdown := range map[string]func(context.Context) error{
			"tracer": tracerProvider.Shutdown,
			"meter":  meterProvider.Shutdown,
			"logger": loggerProvider.Shutdown,
		} {
			if err := shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down telemetry provider", zap.String("provider", name), zap.Error(err))
			}
		}
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry.Profiling, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() && cfg.Telemetry.Profiling.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	exportLevel, err := zapcore.ParseLevel(cfg.Telemetry.LogsLevel)
	if err != nil {
		exportLevel = zapcore.InfoLevel
	}
	log = loggerProvider.Bridge(log, exportLevel)

	log.Info("Starting Event SaaS API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", telemetry.ServiceVersion),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Plan cache and token blacklist
	stores, err := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).CreateStores(ctx)
	if err != nil {
		log.Fatal("Failed to initialize cache stores", zap.Error(err))
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("Error closing cache stores", zap.Error(err))
		}
	}()
	log.Info("Cache stores ready", zap.String("backend", stores.Backend()))

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	budgetItemRepo := persistence.NewGormBudgetItemRepository(db.DB)
	guestRepo := persistence.NewGormGuestRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	paymentRequestRepo := persistence.NewGormPaymentRequestRepository(db.DB)
	paymentHistoryRepo := persistence.NewGormPaymentHistoryRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Event bus: billing audit log and business metrics
	eventBus := event.NewInMemoryEventBus(log)
	auditHandler := billingapp.NewAuditHandler(log)
	eventBus.Subscribe(auditHandler, auditHandler.EventTypes()...)

	billingMetrics, err := telemetry.NewBillingMetrics(meterProvider.Meter("event-saas/billing"))
	if err != nil {
		log.Fatal("Failed to create billing metrics", zap.Error(err))
	}
	eventBus.Subscribe(billingMetrics, billingMetrics.EventTypes()...)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, stores.Blacklist, eventBus, log)
	eventService := planningapp.NewEventService(eventRepo, log)
	budgetService := planningapp.NewBudgetService(budgetItemRepo, eventRepo, vendorRepo, log)
	guestService := planningapp.NewGuestService(guestRepo, eventRepo, log)
	vendorService := planningapp.NewVendorService(vendorRepo, log)
	analyticsService := analyticsapp.NewAnalyticsService(eventRepo, budgetItemRepo, guestRepo, vendorRepo, log)
	settingsService := settingsapp.NewSettingsService(settingsRepo, log)
	whatsappService := whatsapp.NewWhatsAppService(eventRepo, guestRepo, "", log)

	monthly, yearly := cfg.Billing.Periods()
	paymentOpts := []billingapp.PaymentServiceOption{billingapp.WithEventPublisher(eventBus)}
	if cfg.Storage.Enabled {
		proofStorage, err := storage.NewS3ProofStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize proof storage", zap.Error(err))
		}
		if err := proofStorage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure proof bucket", zap.String("bucket", proofStorage.Bucket()), zap.Error(err))
		}
		paymentOpts = append(paymentOpts, billingapp.WithProofStorage(proofStorage))
	} else {
		log.Info("Proof storage disabled, upload URLs are unavailable")
	}

	planService := billingapp.NewPlanService(planRepo, stores.Plans, cfg.Billing.PlanCacheTTL, log)
	paymentService := billingapp.NewPaymentService(
		paymentRequestRepo, planRepo, paymentHistoryRepo, txScope, log,
		billingapp.PaymentServiceConfig{
			Periods:           billing.Periods{Monthly: monthly, Yearly: yearly},
			ProofUploadExpiry: cfg.Storage.UploadURLExpiry,
		},
		paymentOpts...,
	)
	subscriptionService := billingapp.NewSubscriptionService(
		subscriptionRepo, planRepo, userRepo, txScope, eventBus, cfg.Billing.FreePlanName, log,
	)

	// Set Gin mode and custom validation messages
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Middleware order: request id first so every later layer can log it
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(logger.GinMiddleware(log, logger.WithSkipPaths("/health", "/health/ready", "/api/v1/ping")))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.HTTPMetrics(meterProvider.Meter("event-saas/http"), log))
	if profiler.IsEnabled() {
		engine.Use(middleware.Profiling())
	}

	var limiters []*middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		limiters = append(limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
	}
	guards := router.Guards{
		Authenticate: []gin.HandlerFunc{
			middleware.JWTAuth(middleware.JWTMiddlewareConfig{
				JWTService:     jwtService,
				TokenBlacklist: stores.Blacklist,
				Logger:         log,
			}),
			middleware.SpanAttributes(),
		},
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		limiters = append(limiters, limiter)
		guards.Credentials = middleware.RateLimit(limiter)
	}
	defer func() {
		for _, l := range limiters {
			l.Stop()
		}
	}()

	api := router.SetupAPI(engine, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Event:     handler.NewEventHandler(eventService),
		Budget:    handler.NewBudgetHandler(budgetService),
		Guest:     handler.NewGuestHandler(guestService),
		Vendor:    handler.NewVendorHandler(vendorService),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Billing:   handler.NewBillingHandler(planService, paymentService, subscriptionService),
		Admin:     handler.NewAdminHandler(paymentService, planService),
		WhatsApp:  handler.NewWhatsAppHandler(whatsappService),
		System: handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion, db.Ping,
			map[string]handler.HealthCheck{"cache": stores.Ping}),
	}, guards)
	log.Debug("API routes mounted", zap.Strings("routes", api.Routes()))

	docs.SwaggerInfo.Version = telemetry.ServiceVersion
	engine.GET("/swagger/*any",
		middleware.DocsAccess(cfg.HTTP.SwaggerEnabled, cfg.HTTP.SwaggerAllowedIPs),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info("Shutting down server...")
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
	}

	timeout := cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
