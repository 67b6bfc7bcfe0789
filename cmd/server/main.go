package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/stockroom/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appaccounts "github.com/stockroom/backend/internal/application/accounts"
	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/infrastructure/auth"
	"github.com/stockroom/backend/internal/infrastructure/cache"
	"github.com/stockroom/backend/internal/infrastructure/config"
	"github.com/stockroom/backend/internal/infrastructure/logger"
	"github.com/stockroom/backend/internal/infrastructure/persistence"
	"github.com/stockroom/backend/internal/infrastructure/printing"
	"github.com/stockroom/backend/internal/infrastructure/storage"
	"github.com/stockroom/backend/internal/infrastructure/telemetry"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
	"github.com/stockroom/backend/internal/interfaces/http/router"
)

//	@title			Stockroom Backend API
//	@version		1.0
//	@description	Barcode identifiers, shelf locations, item templates, stock, prices, purchasing and receipts for a small shop.

//	@contact.name	API Support

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	// OTLP log export joins the local core when enabled
	logProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry)
	if err != nil {
		panic("Failed to initialize log exporter: " + err.Error())
	}
	var extraCores []zapcore.Core
	if logProvider.IsEnabled() {
		level, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = zapcore.InfoLevel
		}
		extraCores = append(extraCores, logProvider.Core(level))
	}

	log, err := logger.New(cfg.Log, extraCores...)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting stockroom backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
		if err := logProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down log provider", zap.Error(err))
		}
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithExpectedErrors(persistence.IsUniqueViolation),
		logger.WithSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.Open(&cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.NewDBTracing(cfg.Telemetry, "postgresql", log).Register(db.DB); err != nil {
		log.Warn("Failed to enable database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Redis backs the allocation locks, the token blacklist and the rate
	// limiter; without it each falls back to process memory.
	lockers := cache.NewLockerFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	locker, err := lockers.CreateLocker()
	if err != nil {
		log.Fatal("Failed to create identifier locker", zap.Error(err))
	}
	if c, ok := locker.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	var redisClient *redis.Client
	if rl, ok := locker.(*cache.RedisLocker); ok {
		redisClient = rl.GetClient()
	}

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
	}

	objects, err := newObjectStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	printer, printerCloser, err := printing.NewLabelPrinter(cfg.Printing, objects, log)
	if err != nil {
		log.Fatal("Failed to initialize label printer", zap.Error(err))
	}
	defer func() { _ = printerCloser.Close() }()

	store := db.InventoryStore()

	idents := appinv.NewIdentifierService(store, locker, log)
	idents.SetConfig(appinv.AllocatorConfig{LockTTL: cfg.HTTP.IdentLockDuration, LockWait: cfg.HTTP.IdentLockDuration})
	pictures := appinv.NewPictureService(store, objects, log)
	pictures.SetURLExpiry(cfg.Storage.PresignExpiration)

	services := router.Services{
		Idents:    idents,
		Locations: appinv.NewLocationService(store, idents, printer, log),
		Suppliers: appinv.NewSupplierService(store, log),
		Items:     appinv.NewItemService(store, idents, printer, log),
		Pictures:  pictures,
		Stock:     appinv.NewStockService(store, log),
		Prices:    appinv.NewPriceService(store, log),
		Invoices:  appinv.NewInvoiceService(store, log),
		Purchases: appinv.NewPurchaseService(store, log),
		Receipts:  appinv.NewReceiptService(store, log),
		ItemSales: appinv.NewItemSaleService(store, log),
		ItemData:  appinv.NewItemDataService(store, idents, log),
		Health:    db,
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	services.Auth = appaccounts.NewAuthService(db.Users(), jwtService, blacklist, log)

	meter := meterProvider.Meter("stockroom/inventory")
	metrics, err := telemetry.NewInventoryMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create inventory metrics", zap.Error(err))
	}
	wireMetrics(services, metrics)
	gauges, err := telemetry.RegisterInventoryGauges(meter, telemetry.NewGormInventoryStats(db.DB), log)
	if err != nil {
		log.Fatal("Failed to register inventory gauges", zap.Error(err))
	}
	defer func() { _ = gauges.Unregister() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SpanAttributes())
	engine.Use(middleware.SpanErrorMarker())
	profiling := middleware.DefaultProfilingConfig()
	profiling.Enabled = profiler.IsEnabled()
	engine.Use(middleware.ProfilingWithConfig(profiling))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter, err := middleware.RateLimit(middleware.RateLimitConfig{
			Rate:        cfg.HTTP.RateLimitRate,
			RedisClient: redisClient,
			Logger:      log,
		})
		if err != nil {
			log.Fatal("Failed to configure rate limiting", zap.Error(err))
		}
		engine.Use(limiter)
		log.Info("Rate limiting enabled", zap.String("rate", cfg.HTTP.RateLimitRate))
	}

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Reads are anonymous; writes check the claims loaded here
	jwtAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Optional:       true,
		Logger:         log,
	})
	r := router.NewRouter(engine, router.WithMiddleware(jwtAuth)).
		Register(router.InventoryRoutes(services, router.Options{
			PageSize: cfg.HTTP.ListPageSize,
			Logger:   log,
		})...)
	r.Setup()
	routes := r.Routes()
	for _, route := range routes {
		log.Debug("Route registered",
			zap.String("group", route.Group),
			zap.String("method", route.Method),
			zap.String("path", route.Path))
	}
	log.Info("Routes registered", zap.Int("count", len(routes)))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newObjectStorage connects to the S3 bucket, or keeps objects in memory
// when storage is disabled.
func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (appinv.ObjectStorage, error) {
	if !cfg.Storage.Enabled {
		log.Warn("Object storage disabled, pictures and labels are kept in memory")
		return storage.NewStubObjectStorage(), nil
	}
	s3, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("Object storage ready", zap.String("bucket", s3.Bucket()))
	return s3, nil
}

func wireMetrics(svc router.Services, m appinv.Metrics) {
	svc.Idents.SetMetrics(m)
	svc.Locations.SetMetrics(m)
	svc.Suppliers.SetMetrics(m)
	svc.Items.SetMetrics(m)
	svc.Pictures.SetMetrics(m)
	svc.Stock.SetMetrics(m)
	svc.Prices.SetMetrics(m)
	svc.Invoices.SetMetrics(m)
	svc.Purchases.SetMetrics(m)
	svc.Receipts.SetMetrics(m)
	svc.ItemSales.SetMetrics(m)
}
