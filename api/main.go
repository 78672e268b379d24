package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rogerio-castellano/product-catalog/internal/catalog"
	"github.com/rogerio-castellano/product-catalog/internal/config"
	"github.com/rogerio-castellano/product-catalog/internal/db"
	"github.com/rogerio-castellano/product-catalog/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-catalog/internal/http/router"
	"github.com/rogerio-castellano/product-catalog/internal/logger"
	"github.com/rogerio-castellano/product-catalog/internal/metrics"
	"github.com/rogerio-castellano/product-catalog/internal/redissvc"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
)

const limiterIdleTTL = 3 * time.Minute

// @title Product Catalog API
// @version 1.0
// @description Read-only product listing with search, filters, sorting and pagination.
// @host localhost:5000
// @BasePath /
func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: "product-catalog"}).Error(ctx, "config.load_failed", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "product-catalog",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	handle := db.NewHandle()
	go func() {
		if err := db.Open(ctx, cfg.Mongo, handle); err != nil {
			if errors.Is(err, db.ErrHandleClosed) || ctx.Err() != nil {
				return
			}
			logg.Error(ctx, "mongo.connect_failed", err)
			return
		}
		logg.Info(ctx, "mongo.connected")
	}()

	products := repo.NewMongoProductRepository(handle, cfg.Mongo.QueryTimeout)
	svc := catalog.NewService(products, logg, m)
	srv := handlers.NewServer(svc, handle, logg)

	limiter, closeLimiter, err := buildLimiter(ctx, cfg)
	if err != nil {
		logg.Error(ctx, "ratelimit.init_failed", err)
		os.Exit(1)
	}
	defer closeLimiter()

	httpServer := &http.Server{
		Addr: cfg.App.Addr(),
		Handler: router.NewRouter(router.Options{
			Server:            srv,
			Logger:            logg,
			Requests:          m,
			MetricsHandler:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			Limiter:           limiter,
			CORSOrigins:       cfg.CORS.AllowedOrigins,
			TrustProxyHeaders: cfg.App.TrustProxyHeaders,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logg.Info(logg.WithField(ctx, "addr", httpServer.Addr), "server.listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "server.listen_failed", err)
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info(context.Background(), "server.shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "server.shutdown_failed", err)
	}
	if err := handle.Close(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "mongo.disconnect_failed", err)
	}
}

func buildLimiter(ctx context.Context, cfg *config.Config) (rl.Limiter, func(), error) {
	switch cfg.RateLimit.Backend {
	case config.RateLimitMemory:
		limiter := rl.NewMemoryLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.StartCleanupLoop(ctx, time.Minute, limiterIdleTTL)
		return limiter, func() {}, nil
	case config.RateLimitRedis:
		rs, err := redissvc.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		limiter := rl.NewRedisLimiter(rs.Rdb(), cfg.RateLimit.Burst, cfg.RateLimit.Window)
		return limiter, func() { _ = rs.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}
