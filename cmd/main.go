package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/riftlens/riftlens/internal/adapters/http/api"
	"github.com/riftlens/riftlens/internal/adapters/matchstore"
	"github.com/riftlens/riftlens/internal/adapters/snapshotcache"
	service "github.com/riftlens/riftlens/internal/app"
	"github.com/riftlens/riftlens/internal/config"
	"github.com/riftlens/riftlens/internal/domain/scoring"
	"github.com/riftlens/riftlens/internal/domain/style"
	"github.com/riftlens/riftlens/internal/domain/synergy"
	"github.com/riftlens/riftlens/pkg/logger"
	"github.com/riftlens/riftlens/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := buildMatchStore(ctx, cfg, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "failed to open match store", logger.Error(err))
		return
	}

	cache := buildSnapshotCache(ctx, cfg, loggerInstance)

	// Create the analytics service with configuration options.
	svc := service.New(store, cache,
		service.WithLogger(loggerInstance),
		service.WithScorer(scoring.NewScorer(
			scoring.WithWindowSize(cfg.ScoreWindowSize),
			scoring.WithWeights(cfg.ScoreWeights),
			scoring.WithBenchmarks(cfg.ScoreBenchmarks),
		)),
		service.WithClassifier(style.NewClassifier(
			style.WithWindowSize(cfg.StyleWindowSize),
		)),
		service.WithSynergyCalculator(synergy.NewCalculator(
			synergy.WithBlendWeights(cfg.SynergyStyleWeight, cfg.SynergyPerformanceWeight),
			synergy.WithShrinkage(cfg.SynergyShrinkage),
		)),
		service.WithRefreshTimeout(cfg.RefreshTimeout),
		service.WithLeaderboardWorkers(cfg.LeaderboardWorkers),
	)

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildMatchStore opens the Postgres match store when a DSN is configured,
// otherwise falls back to the in-memory store.
func buildMatchStore(ctx context.Context, cfg *config.Config, log logger.Logger) (matchstore.Store, error) {
	if cfg.PostgresDSN == "" {
		log.Warn(ctx, "no postgres_dsn configured; using in-memory match store")
		return matchstore.NewMemoryStore(), nil
	}
	store, err := matchstore.OpenPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "connected to postgres match store")
	return store, nil
}

// buildSnapshotCache connects the Redis snapshot cache when an address is
// configured, otherwise falls back to the in-memory cache.
func buildSnapshotCache(ctx context.Context, cfg *config.Config, log logger.Logger) snapshotcache.Cache {
	if cfg.RedisAddr == "" {
		log.Warn(ctx, "no redis_addr configured; using in-memory snapshot cache")
		return snapshotcache.NewMemoryCache()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	log.Info(ctx, "connected to redis snapshot cache", logger.String("addr", cfg.RedisAddr))
	return snapshotcache.NewRedisCache(client, snapshotcache.WithTTL(cfg.SnapshotTTL))
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
