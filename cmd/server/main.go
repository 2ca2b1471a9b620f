package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/posadmin/backend/internal/application/catalog"
	reportapp "github.com/posadmin/backend/internal/application/report"
	returnsapp "github.com/posadmin/backend/internal/application/returns"
	salesapp "github.com/posadmin/backend/internal/application/sales"
	"github.com/posadmin/backend/internal/infrastructure/cache"
	"github.com/posadmin/backend/internal/infrastructure/config"
	"github.com/posadmin/backend/internal/infrastructure/gateway"
	"github.com/posadmin/backend/internal/infrastructure/logger"
	"github.com/posadmin/backend/internal/infrastructure/notify"
	"github.com/posadmin/backend/internal/interfaces/http/handler"
	"github.com/posadmin/backend/internal/interfaces/http/middleware"
	"github.com/posadmin/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting POS admin backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	// Upstream retail API client
	gw := gateway.NewClient(gateway.ClientConfig{
		BaseURL:     cfg.Upstream.BaseURL,
		GetRetryMax: cfg.Upstream.GetRetryMax,
	}, log)

	// Query cache and invalidation
	queryCache := cache.NewQueryCache(cfg.Cache.ListTTL, cfg.Cache.CleanupInterval)
	localInvalidator := cache.NewLocalInvalidator(queryCache, log)

	var invalidator cache.Invalidator = localInvalidator
	if cfg.Redis.Enabled {
		redisInvalidator, err := cache.NewRedisInvalidator(context.Background(), cache.RedisInvalidatorConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, localInvalidator, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		invalidator = redisInvalidator
		log.Info("Cache invalidation fan-out enabled", zap.String("redis", cfg.Redis.Addr()))
	}

	notifier := notify.NewZapNotifier(log)

	// Application services
	salesSvc := salesapp.NewService(gw, queryCache, cfg.Cache.ListTTL, log)
	catalogSvc := catalogapp.NewService(gw, queryCache, invalidator, notifier, cfg.Cache.ListTTL, log)
	reportSvc := reportapp.NewService(catalogSvc, salesSvc, queryCache, cfg.Cache.DashboardTTL, log)
	draftSvc := returnsapp.NewDraftService(gw, salesSvc, invalidator, notifier,
		cfg.Cache.DraftTTL, cfg.Cache.CleanupInterval, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	engine.Use(middleware.JWTAuth(middleware.JWTConfig{
		Secret:    cfg.JWT.Secret,
		Issuer:    cfg.JWT.Issuer,
		SkipPaths: []string{"/api/v1/system/health"},
	}))

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewProductHandler(catalogSvc)).
		Register(handler.NewSalesHandler(salesSvc)).
		Register(handler.NewReturnDraftHandler(draftSvc)).
		Register(handler.NewReportHandler(reportSvc)).
		Register(handler.NewSystemHandler(cfg.App.Name, version))
	r.Setup()

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
