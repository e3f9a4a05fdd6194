// @title                       Seller Metrics API
// @version                     1.0
// @description                 Multi-store marketplace analytics for seller dashboards.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-sellermetrics/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/adapters/upstream"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/config"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/services"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/workers"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/logger"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/metrics"
)

const tokenDuration = 24 * time.Hour

func main() {
	startTime := time.Now()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: "sellermetrics"}).Fatal(ctx, "failed to load config", err)
	}

	log := logger.New(logger.Options{
		ServiceName: "sellermetrics",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	if cfg.App.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	log.Info(ctx, "connecting to database")
	db, err := sqlx.Connect("pgx", cfg.DB.DSN())
	if err != nil {
		log.Fatal(ctx, "failed to connect to database", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	storeRepo := repository.NewPostgresStoreRepository(db)
	if err := storeRepo.EnsureSchema(ctx); err != nil {
		log.Fatal(ctx, "failed to prepare schema", err)
	}
	log.Info(ctx, "database connected")

	upstreamClient, err := upstream.NewClient(cfg.Upstream.BaseURL,
		upstream.WithToken(cfg.Upstream.Token),
		upstream.WithTimeout(cfg.Upstream.Timeout),
		upstream.WithMetrics(collector),
	)
	if err != nil {
		log.Fatal(ctx, "failed to build upstream client", err)
	}

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	var (
		source      domain.MetricSource = upstreamClient
		invalidator services.InvalidationQueue
	)

	rdb, err := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn(ctx, "redis unavailable, running without memoization and rate limiting", err)
		rdb = nil
	} else {
		defer rdb.Close()

		memo := cache.NewMemoizedMetricSource(upstreamClient, rdb, cfg.Cache.TTL, log, collector)
		source = memo

		worker := workers.NewInvalidationWorker(memo, log)
		worker.Start(workerCtx)
		invalidator = worker
	}

	dashboardService := services.NewDashboardService(storeRepo, source, cfg.Upstream.FanOutLimit, log, collector)
	storeService := services.NewStoreService(storeRepo, invalidator)
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, tokenDuration)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		DashboardHandler: adapterHTTP.NewDashboardHandler(dashboardService),
		StoreHandler:     adapterHTTP.NewStoreHandler(storeService),
		TokenService:     tokenService,
		DB:               db,
		Redis:            rdb,
		Gatherer:         reg,
		Logger:           log,
		RateLimit: adapterHTTP.RateLimit{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		},
		StartTime: startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info(log.WithField(ctx, "port", cfg.App.Port), "seller metrics api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(ctx, "server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "stop signal received, shutting down")
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "forced shutdown", err)
		return
	}

	log.Info(ctx, "server stopped gracefully")
}
