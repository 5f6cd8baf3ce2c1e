package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rx3lixir/event-explorer/internal/opensearch/client"
	"github.com/rx3lixir/event-explorer/internal/opensearch/models"
	"github.com/rx3lixir/event-explorer/pkg/logger"
	"github.com/rx3lixir/event-explorer/pkg/metrics"
)

// Searcher выполняет запросы к OpenSearch. Каждый запрос независим,
// соединений и транзакций между запросами не держим.
type Searcher struct {
	client       *client.Client
	queryBuilder *QueryBuilder
	logger       logger.Logger
}

func NewSearcher(client *client.Client, logger logger.Logger) *Searcher {
	return &Searcher{
		client:       client,
		queryBuilder: NewQueryBuilder(),
		logger:       logger,
	}
}

// SearchEvents ищет события по фильтру. Ответ содержит хиты в порядке
// релевантности и нормализованные агрегации из того же запроса.
func (s *Searcher) SearchEvents(parentCtx context.Context, filter *Filter) (*models.SearchResult, error) {
	if filter == nil {
		filter = NewFilter()
	}

	ctx, cancel := context.WithTimeout(parentCtx, s.client.GetTimeout())
	defer cancel()

	query := s.queryBuilder.BuildSearchQuery(filter)

	queryBody, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	s.logger.Debug("Executing OpenSearch query",
		"query_text", filter.Query,
		"index", s.client.GetIndexName(),
		"size", filter.Size,
	)

	start := time.Now()
	res, err := s.client.GetNativeClient().Search(
		s.client.GetNativeClient().Search.WithContext(ctx),
		s.client.GetNativeClient().Search.WithIndex(s.client.GetIndexName()),
		s.client.GetNativeClient().Search.WithBody(bytes.NewReader(queryBody)),
		s.client.GetNativeClient().Search.WithTrackTotalHits(true),
	)
	searchTime := time.Since(start)

	if err != nil {
		metrics.RecordOpenSearchOperation("search", s.client.GetIndexName(), "error", searchTime)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		s.logger.Error("OpenSearch query failed",
			"status", res.Status(),
			"error_body", string(body),
			"query", string(queryBody),
		)
		metrics.RecordOpenSearchOperation("search", s.client.GetIndexName(), "rejected", searchTime)
		return nil, fmt.Errorf("%w: status %s", ErrQueryRejected, res.Status())
	}

	searchResult, err := s.parseSearchResponse(res.Body)
	if err != nil {
		metrics.RecordOpenSearchOperation("search", s.client.GetIndexName(), "malformed", searchTime)
		return nil, err
	}

	searchResult.SearchTime = searchTime.String()

	metrics.RecordOpenSearchOperation("search", s.client.GetIndexName(), "success", searchTime)

	s.logger.Info("Search completed",
		"query", filter.Query,
		"total_found", searchResult.Total,
		"returned", len(searchResult.Hits),
		"search_time", searchTime,
		"categories", filter.Categories,
		"locations", filter.Locations,
	)

	return searchResult, nil
}

// FetchFacets возвращает фасеты по всему корпусу (без фильтров)
func (s *Searcher) FetchFacets(parentCtx context.Context) (*models.FacetAggregations, error) {
	ctx, cancel := context.WithTimeout(parentCtx, s.client.GetTimeout())
	defer cancel()

	query := s.queryBuilder.BuildFacetsQuery()

	queryBody, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal facets query: %w", err)
	}

	start := time.Now()
	res, err := s.client.GetNativeClient().Search(
		s.client.GetNativeClient().Search.WithContext(ctx),
		s.client.GetNativeClient().Search.WithIndex(s.client.GetIndexName()),
		s.client.GetNativeClient().Search.WithBody(bytes.NewReader(queryBody)),
	)
	fetchTime := time.Since(start)

	if err != nil {
		metrics.RecordOpenSearchOperation("facets", s.client.GetIndexName(), "error", fetchTime)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		s.logger.Error("OpenSearch facets query failed",
			"status", res.Status(),
			"error_body", string(body),
		)
		metrics.RecordOpenSearchOperation("facets", s.client.GetIndexName(), "rejected", fetchTime)
		return nil, fmt.Errorf("%w: status %s", ErrQueryRejected, res.Status())
	}

	var response struct {
		Aggregations map[string]json.RawMessage `json:"aggregations"`
	}

	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		metrics.RecordOpenSearchOperation("facets", s.client.GetIndexName(), "malformed", fetchTime)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// Отсутствующие агрегации нормализуются в пустые массивы
	facets := NormalizeAggregations(response.Aggregations)

	metrics.RecordOpenSearchOperation("facets", s.client.GetIndexName(), "success", fetchTime)

	s.logger.Info("Facets fetch completed",
		"price_ranges", len(facets.PriceRanges),
		"categories", len(facets.Categories),
		"locations", len(facets.Locations),
		"fetch_time", fetchTime,
	)

	return &facets, nil
}

// CountDocuments возвращает количество документов в индексе
func (s *Searcher) CountDocuments(parentCtx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(parentCtx, s.client.GetTimeout())
	defer cancel()

	res, err := s.client.GetNativeClient().Count(
		s.client.GetNativeClient().Count.WithContext(ctx),
		s.client.GetNativeClient().Count.WithIndex(s.client.GetIndexName()),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("%w: status %s", ErrQueryRejected, res.Status())
	}

	var countResponse struct {
		Count int64 `json:"count"`
	}

	if err := json.NewDecoder(res.Body).Decode(&countResponse); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return countResponse.Count, nil
}

func (s *Searcher) parseSearchResponse(body io.Reader) (*models.SearchResult, error) {
	var response struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			MaxScore *float64 `json:"max_score"`
			Hits     []struct {
				Source models.EventDocument `json:"_source"`
				Score  *float64             `json:"_score"`
			} `json:"hits"`
		} `json:"hits"`
		Aggregations map[string]json.RawMessage `json:"aggregations"`
	}

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := json.Unmarshal(bodyBytes, &response); err != nil {
		s.logger.Error("Failed to parse OpenSearch response",
			"error", err,
			"response_body", string(bodyBytes),
		)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// Порядок хитов - порядок релевантности, сохраняем как есть
	hits := make([]*models.EventDocument, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		event := hit.Source
		hits = append(hits, &event)
	}

	return &models.SearchResult{
		Hits:         hits,
		Total:        response.Hits.Total.Value,
		MaxScore:     response.Hits.MaxScore,
		Aggregations: NormalizeAggregations(response.Aggregations),
	}, nil
}
