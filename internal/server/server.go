package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rx3lixir/event-explorer/internal/cache"
	"github.com/rx3lixir/event-explorer/internal/config"
	"github.com/rx3lixir/event-explorer/internal/opensearch/client"
	"github.com/rx3lixir/event-explorer/internal/opensearch/models"
	"github.com/rx3lixir/event-explorer/internal/opensearch/search"
	"github.com/rx3lixir/event-explorer/pkg/logger"
	"github.com/rx3lixir/event-explorer/pkg/metrics"
)

// EventSearcher - часть search.Searcher, нужная API
type EventSearcher interface {
	SearchEvents(ctx context.Context, filter *search.Filter) (*models.SearchResult, error)
	FetchFacets(ctx context.Context) (*models.FacetAggregations, error)
}

// ClusterProber - проба доступности и версии OpenSearch
type ClusterProber interface {
	Info(ctx context.Context) (*client.InstanceInfo, error)
}

// Server - HTTP API для UI
type Server struct {
	server     *http.Server
	searcher   EventSearcher
	prober     ClusterProber
	facetCache *cache.FacetCache
	validate   *validator.Validate
	log        logger.Logger
}

func NewServer(
	cfg config.HTTPParams,
	searcher EventSearcher,
	prober ClusterProber,
	facetCache *cache.FacetCache,
	log logger.Logger,
) *Server {
	s := &Server{
		searcher:   searcher,
		prober:     prober,
		facetCache: facetCache,
		validate:   validator.New(),
		log:        log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.healthHandler)
	mux.HandleFunc("/api/opensearch/search", s.searchHandler)
	mux.HandleFunc("/api/opensearch/facets", s.facetsHandler)

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = loggingMiddleware(log)(handler)
	handler = corsMiddleware(handler)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Start запускает API сервер
func (s *Server) Start() error {
	s.log.Info("Starting API server",
		"address", s.server.Addr,
		"endpoints", []string{"/api/health", "/api/opensearch/search", "/api/opensearch/facets"},
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server error: %w", err)
	}
	return nil
}

// Shutdown грациозно останавливает сервер
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}
