package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rx3lixir/event-explorer/internal/opensearch/models"
	"github.com/rx3lixir/event-explorer/internal/opensearch/search"
)

// healthHandler - GET /api/health: пробует корневой эндпоинт OpenSearch
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	info, err := s.prober.Info(r.Context())
	if err != nil {
		s.log.Error("Health check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, HealthErrorResponse{
			Status:  "error",
			Message: "OpenSearch connection failed",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		OpenSearch: "connected",
		Version:    info.Version.Number,
	})
}

// searchHandler - POST /api/opensearch/search
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.decodeSearchRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Message: "Invalid search request",
			Error:   err.Error(),
		})
		return
	}

	filter := filterFromRequest(req)

	result, err := s.searcher.SearchEvents(r.Context(), filter)
	if err != nil {
		s.log.Error("Search request failed", "error", err, "query", req.Query)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to execute search",
			Error:   err.Error(),
		})
		return
	}

	hits := result.Hits
	if hits == nil {
		hits = []*models.EventDocument{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Hits:         hits,
		Aggregations: result.Aggregations,
	})
}

// facetsHandler - POST /api/opensearch/facets: фасеты по всему корпусу.
// Тело запроса не читается. Ответ кэшируется, если кэш включен.
func (s *Server) facetsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if facets, ok := s.facetCache.Get(r.Context()); ok {
		writeJSON(w, http.StatusOK, facets)
		return
	}

	facets, err := s.searcher.FetchFacets(r.Context())
	if err != nil {
		s.log.Error("Facets request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to fetch facets",
			Error:   err.Error(),
		})
		return
	}

	s.facetCache.Set(r.Context(), facets)

	writeJSON(w, http.StatusOK, facets)
}

func (s *Server) decodeSearchRequest(r *http.Request) (*SearchRequest, error) {
	var req SearchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Пустое тело - валидный запрос без фильтров
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode request body: %w", err)
		}
	}

	if req.Filters != nil {
		if err := s.validate.Struct(req.Filters); err != nil {
			return nil, fmt.Errorf("invalid filters: %w", err)
		}
		if len(req.Filters.PriceRange) == 2 && req.Filters.PriceRange[0] > req.Filters.PriceRange[1] {
			return nil, fmt.Errorf("invalid price range: low %g greater than high %g",
				req.Filters.PriceRange[0], req.Filters.PriceRange[1])
		}
	}

	return &req, nil
}

// filterFromRequest переводит тело запроса в поисковый фильтр.
// Каждый фильтр попадает в запрос только если он задан.
func filterFromRequest(req *SearchRequest) *search.Filter {
	filter := search.NewFilter().WithQuery(req.Query)

	if req.Filters == nil {
		return filter
	}

	if len(req.Filters.PriceRange) == 2 {
		filter = filter.WithPriceRange(req.Filters.PriceRange[0], req.Filters.PriceRange[1])
	}

	if len(req.Filters.Categories) > 0 {
		filter = filter.WithCategories(req.Filters.Categories...)
	}

	if len(req.Filters.Locations) > 0 {
		filter = filter.WithLocations(req.Filters.Locations...)
	}

	return filter
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
