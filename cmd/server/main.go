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
	"go.uber.org/zap"

	"zoo_management/pkg/api"
	"zoo_management/pkg/cache"
	"zoo_management/pkg/circuitbreaker"
	"zoo_management/pkg/config"
	"zoo_management/pkg/database"
	"zoo_management/pkg/logger"
	"zoo_management/pkg/seed"
	"zoo_management/pkg/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("Failed to load config", zap.Error(err))
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting zoo management server", zap.String("env", cfg.App.Env))

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}
	if cfg.Database.Seed {
		if err := seed.Run(ctx, db, log); err != nil {
			return err
		}
	}

	statsCache := newStatsCache(ctx, cfg.Cache, log)
	if rc, ok := statsCache.(*cache.RedisStatsCache); ok {
		defer rc.Close()
		go rc.RunRetries(ctx, time.Second)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := api.NewHandler(cache.NewCachedStore(store.New(db), statsCache), log)
	router := api.NewRouter(handler, api.RouterConfig{CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins}, log)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// newStatsCache falls back to no caching when redis is not configured or
// cannot be reached at startup.
func newStatsCache(ctx context.Context, cfg config.CacheConfig, log *zap.Logger) cache.StatsCache {
	if cfg.RedisURL == "" {
		log.Info("Dashboard stats cache disabled")
		return cache.NopStatsCache{}
	}

	breaker := circuitbreaker.NewCircuitBreaker(cfg.BreakerFails, cfg.BreakerTimeout)
	c, err := cache.NewRedisStatsCache(ctx, cfg.RedisURL, cfg.StatsTTL, breaker, log)
	if err != nil {
		log.Warn("Redis unavailable, dashboard stats cache disabled", zap.Error(err))
		return cache.NopStatsCache{}
	}
	log.Info("Dashboard stats cache enabled", zap.Duration("ttl", cfg.StatsTTL))
	return c
}
