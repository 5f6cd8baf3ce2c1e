package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rx3lixir/event-explorer/internal/cache"
	"github.com/rx3lixir/event-explorer/internal/config"
	"github.com/rx3lixir/event-explorer/internal/dataloader"
	"github.com/rx3lixir/event-explorer/internal/db"
	osclient "github.com/rx3lixir/event-explorer/internal/opensearch/client"
	"github.com/rx3lixir/event-explorer/internal/opensearch/indexing"
	"github.com/rx3lixir/event-explorer/internal/opensearch/mapping"
	"github.com/rx3lixir/event-explorer/internal/opensearch/search"
	"github.com/rx3lixir/event-explorer/internal/server"
	"github.com/rx3lixir/event-explorer/pkg/logger"
	"github.com/rx3lixir/event-explorer/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.NewDefault()
		fallback.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		fallback := logger.NewDefault()
		fallback.Error("Failed to create logger", "error", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Клиент OpenSearch
	osCfg := osclient.DefaultConfig()
	osCfg.URL = cfg.OpenSearch.URL
	osCfg.IndexName = cfg.OpenSearch.IndexName
	osCfg.Timeout = cfg.OpenSearch.Timeout
	osCfg.MaxRetries = cfg.OpenSearch.MaxRetries
	osCfg.MaxIdleConns = cfg.OpenSearch.MaxIdleConns
	osCfg.InsecureSkipVerify = cfg.OpenSearch.InsecureSkipVerify

	client, err := osclient.New(osCfg, log)
	if err != nil {
		log.Error("Failed to create opensearch client", "error", err)
		os.Exit(1)
	}

	healthChecker := osclient.NewHealthChecker(client)
	if err := healthChecker.WaitForHealthy(ctx, 10, 3*time.Second); err != nil {
		log.Error("OpenSearch is not available", "error", err, "url", cfg.OpenSearch.URL)
		os.Exit(1)
	}

	if err := mapping.NewManager(client, log).EnsureIndex(ctx); err != nil {
		log.Error("Failed to ensure index", "error", err)
		os.Exit(1)
	}

	searcher := search.NewSearcher(client, log)

	// Загрузка каталога из PostgreSQL (если настроен)
	if cfg.Postgres.URL != "" {
		pool, err := db.CreatePostgresPool(ctx, cfg.Postgres.URL)
		if err != nil {
			log.Error("Failed to create postgres pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		storer := db.NewPostgresStore(pool)
		indexer := indexing.NewManager(client, log)
		loader := dataloader.NewLoader(storer, indexer, searcher, log)

		if err := loader.InitializeOpenSearchData(ctx); err != nil {
			log.Error("Failed to initialize OpenSearch data", "error", err)
			os.Exit(1)
		}
	} else {
		log.Info("PostgreSQL is not configured, skipping catalog load")
	}

	// Кэш фасетов (опционально)
	facetCache := cache.NewFacetCache(
		cfg.Redis.Addr,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.TTL,
		log,
	)
	if facetCache != nil {
		defer facetCache.Close()
		log.Info("Facet cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	// Сервер метрик
	metricsServer := metrics.NewMetricsServer(cfg.Metrics.Addr, log)
	go func() {
		if err := metricsServer.Start(); err != nil {
			log.Error("Metrics server failed", "error", err)
		}
	}()

	// API сервер
	apiServer := server.NewServer(cfg.HTTP, searcher, healthChecker, facetCache, log)
	go func() {
		if err := apiServer.Start(); err != nil {
			log.Error("API server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error("API server shutdown failed", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown failed", "error", err)
	}

	log.Info("Service stopped")
}
