// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"answer-engine/internal/cache"
	"answer-engine/internal/common/config"
	"answer-engine/internal/common/logger"
	"answer-engine/internal/common/observability"
	"answer-engine/internal/llm"
	"answer-engine/internal/pipeline"
	"answer-engine/internal/scrape"
	"answer-engine/internal/search"
	"answer-engine/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting answer engine...",
		zap.String("environment", cfg.App.Environment),
		zap.Int("port", cfg.Server.Port),
	)

	obs := observability.New("answer-engine")
	defer obs.Shutdown()

	ctx := context.Background()

	var searchCache *cache.SearchCache
	if cfg.Cache.Enabled {
		searchCache = cache.New(cfg.Cache.Redis, time.Duration(cfg.Cache.TTL)*time.Second)
		if err := searchCache.Ping(ctx); err != nil {
			zapLog.Warn("search cache unavailable, continuing without it", zap.Error(err))
			searchCache = nil
		} else {
			defer searchCache.Close()
			zapLog.Info("search cache connected", zap.String("address", cfg.Cache.Redis.Address))
		}
	}

	searchClient := search.NewClient(cfg.Search, searchCache, log)
	coordinator := search.NewCoordinator(searchClient, log)

	scrapeClient := scrape.NewClient(cfg.Scrape)
	enricher := scrape.NewEnricher(scrapeClient, cfg.Pipeline.EnrichLimit, log)

	llmClient := llm.NewClient(cfg.LLM, log)

	orchestrator := pipeline.NewOrchestrator(
		coordinator,
		enricher,
		llmClient,
		cfg.Pipeline.ContextBudget,
		log,
		obs,
	)

	handler := server.NewHandler(orchestrator, log)
	router := server.NewRouter(handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM. In-flight streams get a grace
	// period to finish flushing.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}

	zapLog.Info("Shutdown complete")
}
