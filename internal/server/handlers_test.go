package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rx3lixir/event-explorer/internal/opensearch/client"
	"github.com/rx3lixir/event-explorer/internal/opensearch/models"
	"github.com/rx3lixir/event-explorer/internal/opensearch/search"
	"github.com/rx3lixir/event-explorer/pkg/logger"
)

type fakeSearcher struct {
	lastFilter *search.Filter
	result     *models.SearchResult
	facets     *models.FacetAggregations
	err        error
}

func (f *fakeSearcher) SearchEvents(ctx context.Context, filter *search.Filter) (*models.SearchResult, error) {
	f.lastFilter = filter
	return f.result, f.err
}

func (f *fakeSearcher) FetchFacets(ctx context.Context) (*models.FacetAggregations, error) {
	return f.facets, f.err
}

type fakeProber struct {
	info *client.InstanceInfo
	err  error
}

func (f *fakeProber) Info(ctx context.Context) (*client.InstanceInfo, error) {
	return f.info, f.err
}

func newTestServer(searcher EventSearcher, prober ClusterProber) *Server {
	return &Server{
		searcher: searcher,
		prober:   prober,
		validate: validator.New(),
		log:      logger.NewNop(),
	}
}

func Test_HealthHandler_OK(t *testing.T) {
	info := &client.InstanceInfo{}
	info.Version.Number = "2.11.1"

	s := newTestServer(&fakeSearcher{}, &fakeProber{info: info})

	rec := httptest.NewRecorder()
	s.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["opensearch"])
	assert.Equal(t, "2.11.1", body["version"])
}

func Test_HealthHandler_Unavailable(t *testing.T) {
	s := newTestServer(&fakeSearcher{}, &fakeProber{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	s.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.NotEmpty(t, body["message"])
	assert.Contains(t, body["error"], "connection refused")
}

func Test_SearchHandler_EmptyBody(t *testing.T) {
	searcher := &fakeSearcher{
		result: &models.SearchResult{
			Hits:         []*models.EventDocument{},
			Aggregations: models.EmptyFacetAggregations(),
		},
	}
	s := newTestServer(searcher, &fakeProber{})

	rec := httptest.NewRecorder()
	s.searchHandler(rec, httptest.NewRequest(http.MethodPost, "/api/opensearch/search", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, searcher.lastFilter)
	assert.True(t, searcher.lastFilter.IsEmpty())

	// hits и все три измерения агрегаций всегда массивы, не null
	assert.JSONEq(t, `{
		"hits": [],
		"aggregations": {"price_ranges": [], "categories": [], "locations": []}
	}`, rec.Body.String())
}

func Test_SearchHandler_PassesFilters(t *testing.T) {
	searcher := &fakeSearcher{
		result: &models.SearchResult{
			Hits: []*models.EventDocument{
				{ID: 1, EventName: "Jazz Night", Category: "Music", Location: "Moscow", Price: 1500},
			},
			Aggregations: models.EmptyFacetAggregations(),
		},
	}
	s := newTestServer(searcher, &fakeProber{})

	reqBody := `{
		"query": "jazz",
		"filters": {
			"priceRange": [500, 2000],
			"categories": ["Music"],
			"locations": []
		}
	}`

	rec := httptest.NewRecorder()
	s.searchHandler(rec, httptest.NewRequest(http.MethodPost, "/api/opensearch/search", strings.NewReader(reqBody)))

	require.Equal(t, http.StatusOK, rec.Code)

	filter := searcher.lastFilter
	require.NotNil(t, filter)
	assert.Equal(t, "jazz", filter.Query)
	require.NotNil(t, filter.PriceRange)
	assert.Equal(t, 500.0, filter.PriceRange.Min)
	assert.Equal(t, 2000.0, filter.PriceRange.Max)
	assert.Equal(t, []string{"Music"}, filter.Categories)
	assert.Empty(t, filter.Locations)

	var body SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Hits, 1)
	assert.Equal(t, "Jazz Night", body.Hits[0].EventName)
}

func Test_SearchHandler_InvalidPriceRange(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "low_greater_than_high", body: `{"filters": {"priceRange": [2000, 500]}}`},
		{name: "wrong_length", body: `{"filters": {"priceRange": [100]}}`},
		{name: "negative_bound", body: `{"filters": {"priceRange": [-10, 500]}}`},
		{name: "not_json", body: `{"filters":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeSearcher{}, &fakeProber{})

			rec := httptest.NewRecorder()
			s.searchHandler(rec, httptest.NewRequest(http.MethodPost, "/api/opensearch/search", strings.NewReader(tt.body)))

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Message)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func Test_SearchHandler_UpstreamFailure(t *testing.T) {
	s := newTestServer(&fakeSearcher{err: search.ErrUpstreamUnavailable}, &fakeProber{})

	rec := httptest.NewRecorder()
	s.searchHandler(rec, httptest.NewRequest(http.MethodPost, "/api/opensearch/search", strings.NewReader(`{"query":"jazz"}`)))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to execute search", body.Message)
	assert.Contains(t, body.Error, "opensearch unavailable")
}

func Test_FacetsHandler_OK(t *testing.T) {
	searcher := &fakeSearcher{
		facets: &models.FacetAggregations{
			PriceRanges: []models.Bucket{{Key: "*-500.0", DocCount: 4}},
			Categories:  []models.Bucket{{Key: "Music", DocCount: 7}},
			Locations:   []models.Bucket{},
		},
	}
	s := newTestServer(searcher, &fakeProber{})

	rec := httptest.NewRecorder()
	s.facetsHandler(rec, httptest.NewRequest(http.MethodPost, "/api/opensearch/facets", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t, `{
		"price_ranges": [{"key": "*-500.0", "doc_count": 4}],
		"categories": [{"key": "Music", "doc_count": 7}],
		"locations": []
	}`, rec.Body.String())
}

func Test_FacetsHandler_UpstreamFailure(t *testing.T) {
	s := newTestServer(&fakeSearcher{err: search.ErrQueryRejected}, &fakeProber{})

	rec := httptest.NewRecorder()
	s.facetsHandler(rec, httptest.NewRequest(http.MethodPost, "/api/opensearch/facets", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch facets", body.Message)
}

func Test_Handlers_MethodNotAllowed(t *testing.T) {
	s := newTestServer(&fakeSearcher{}, &fakeProber{})

	rec := httptest.NewRecorder()
	s.searchHandler(rec, httptest.NewRequest(http.MethodGet, "/api/opensearch/search", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	s.facetsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/opensearch/facets", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	s.healthHandler(rec, httptest.NewRequest(http.MethodPost, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
