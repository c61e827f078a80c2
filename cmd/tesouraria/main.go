package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/config"
	"github.com/tesourariapro/tesouraria-bff/internal/domain"
	"github.com/tesourariapro/tesouraria-bff/internal/handler"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/backend"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/cache"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/observability"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/resilience"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/snapshot"
	"github.com/tesourariapro/tesouraria-bff/internal/service"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("backend_url", cfg.BackendAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.String("snapshot_dir", cfg.SnapshotDir),
		zap.Bool("sync_on_start", cfg.SyncOnStart),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer("tesouraria-bff", cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	stmtCache := cache.New[domain.MonthlyStatement](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("treasury-backend", func(name string, from, to gobreaker.State) {
		logger.Warn("circuit breaker state change",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})
	bulkhead := resilience.NewBulkhead(cfg.MaxConcurrency)

	// --- Backend client & local snapshot ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	store := backend.NewClient(httpClient, cfg.BackendAPIURL, cfg.BackendAPIToken, cb, resilienceCfg, logger)
	snapshots := snapshot.NewStore(cfg.SnapshotDir, logger)

	// --- Services ---
	treasurySvc, err := service.NewTreasury(store, snapshots, stmtCache, bulkhead, metrics, logger)
	if err != nil {
		logger.Fatal("failed to init treasury service", zap.Error(err))
	}
	authSvc := service.NewAuth(treasurySvc, cfg.JWTSecret, cfg.JWTAccessTTL, logger)

	// Warm the working set from the backend. Failure is fine: the local
	// snapshot (or the seed data) keeps the application usable offline.
	if cfg.SyncOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout*2)
		if err := treasurySvc.Refresh(ctx); err != nil {
			logger.Warn("initial sync failed, starting with local data", zap.Error(err))
		}
		cancel()
	}

	// --- Router ---
	router := handler.NewRouter(treasurySvc, authSvc, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
