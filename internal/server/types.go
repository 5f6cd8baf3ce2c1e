package server

import (
	"github.com/rx3lixir/event-explorer/internal/opensearch/models"
)

// SearchRequest - тело POST /api/opensearch/search.
// Все поля опциональны: пустой запрос означает match_all без фильтров.
type SearchRequest struct {
	Query   string         `json:"query"`
	Filters *SearchFilters `json:"filters"`
}

// SearchFilters - структурные фильтры запроса.
// priceRange - пара [низ, верх], границы включительно.
type SearchFilters struct {
	PriceRange []float64 `json:"priceRange" validate:"omitempty,len=2,dive,min=0"`
	Categories []string  `json:"categories"`
	Locations  []string  `json:"locations"`
}

// SearchResponse - ответ поиска: хиты в порядке релевантности
// плюс агрегации, посчитанные тем же запросом
type SearchResponse struct {
	Hits         []*models.EventDocument  `json:"hits"`
	Aggregations models.FacetAggregations `json:"aggregations"`
}

// HealthResponse - ответ GET /api/health при работоспособном бэкенде
type HealthResponse struct {
	Status     string `json:"status"`
	OpenSearch string `json:"opensearch"`
	Version    string `json:"version"`
}

// HealthErrorResponse - ответ GET /api/health при сбое
type HealthErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ErrorResponse - тело любой ошибки API
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
