// cmd/aso-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"aso-keyword-service/internal/appstore"
	"aso-keyword-service/internal/common/config"
	"aso-keyword-service/internal/common/database"
	"aso-keyword-service/internal/common/httpclient"
	"aso-keyword-service/internal/common/logger"
	"aso-keyword-service/internal/common/observability"
	"aso-keyword-service/internal/scoring/cache"
	"aso-keyword-service/internal/scoring/difficulty"
	"aso-keyword-service/internal/scoring/traffic"
	"aso-keyword-service/internal/service"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting ASO keyword service...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Verify the configured storefront up front ---
	if _, err := appstore.StoreFrontID(cfg.AppStore.Country); err != nil {
		zapLog.Fatal("unsupported store country", zap.String("country", cfg.AppStore.Country), zap.Error(err))
	}

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	var scoreCache *cache.ScoreCache
	if err != nil {
		// The cache is an optimization; a dead Redis only costs recomputes.
		zapLog.Warn("redis unavailable, running without score cache", zap.Error(err))
		redis = nil
	} else {
		defer redis.Close()
		scoreCache = cache.NewScoreCache(redis, cfg.Scoring.CacheTTL(), log)
		zapLog.Info("Redis connected successfully")
	}

	// --- Init App Store clients ---
	upstream := httpclient.NewClient(cfg.AppStore.RequestTimeout())
	search := appstore.NewSearchClient(cfg.AppStore.SearchURL, cfg.AppStore.Country,
		cfg.AppStore.Language, cfg.AppStore.MaxApps, upstream, log)
	suggest := appstore.NewSuggestClient(cfg.AppStore.HintsURL, cfg.AppStore.Country, upstream, log)
	rankings := appstore.NewRankingsClient(cfg.AppStore.RSSURL, cfg.AppStore.Country, upstream, log)

	// --- Wire the analysis pipeline ---
	analyzer := service.NewAnalyzer(
		search,
		suggest,
		difficulty.NewEngine(log, cfg.Scoring.WorkerCount()),
		traffic.NewEngine(rankings, log),
		scoreCache,
		obs,
		log,
	)

	var pinger service.Pinger
	if redis != nil {
		pinger = redis
	}
	handler := service.NewHandler(analyzer, pinger, log)

	// --- API server ---
	apiServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.Server.Timeout) * time.Millisecond,
	}
	go func() {
		zapLog.Info("API server listening", zap.String("addr", apiServer.Addr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("api server failed", zap.Error(err))
		}
	}()

	// --- Metrics server ---
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
		zapLog.Info("Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	zapLog.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("api server shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
