package search_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rx3lixir/event-explorer/internal/opensearch/models"
	"github.com/rx3lixir/event-explorer/internal/opensearch/search"
)

func rawAggs(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func Test_NormalizeAggregations_NilInput(t *testing.T) {
	facets := search.NormalizeAggregations(nil)

	assert.NotNil(t, facets.PriceRanges)
	assert.NotNil(t, facets.Categories)
	assert.NotNil(t, facets.Locations)
	assert.Empty(t, facets.PriceRanges)
	assert.Empty(t, facets.Categories)
	assert.Empty(t, facets.Locations)
}

func Test_NormalizeAggregations_MissingDimension(t *testing.T) {
	raw := rawAggs(t, `{
		"price_ranges": {"buckets": [{"key": "*-500.0", "doc_count": 7}]},
		"locations": {"buckets": [{"key": "Moscow", "doc_count": 3}]}
	}`)

	facets := search.NormalizeAggregations(raw)

	require.Len(t, facets.PriceRanges, 1)
	assert.Equal(t, "*-500.0", facets.PriceRanges[0].Key)
	assert.Equal(t, int64(7), facets.PriceRanges[0].DocCount)

	// Отсутствующее измерение - пустой массив, не ошибка
	assert.NotNil(t, facets.Categories)
	assert.Empty(t, facets.Categories)

	require.Len(t, facets.Locations, 1)
	assert.Equal(t, "Moscow", facets.Locations[0].Key)
}

func Test_NormalizeAggregations_PreservesOrderAndZeroCounts(t *testing.T) {
	raw := rawAggs(t, `{
		"categories": {"buckets": [
			{"key": "Theatre", "doc_count": 12},
			{"key": "Music", "doc_count": 0},
			{"key": "Cinema", "doc_count": 5}
		]}
	}`)

	facets := search.NormalizeAggregations(raw)

	require.Len(t, facets.Categories, 3)
	assert.Equal(t, "Theatre", facets.Categories[0].Key)
	assert.Equal(t, "Music", facets.Categories[1].Key)
	assert.Equal(t, int64(0), facets.Categories[1].DocCount)
	assert.Equal(t, "Cinema", facets.Categories[2].Key)
}

func Test_NormalizeAggregations_MalformedDimension(t *testing.T) {
	raw := rawAggs(t, `{
		"categories": "not an object",
		"locations": {"buckets": null}
	}`)

	facets := search.NormalizeAggregations(raw)

	assert.NotNil(t, facets.Categories)
	assert.Empty(t, facets.Categories)
	assert.NotNil(t, facets.Locations)
	assert.Empty(t, facets.Locations)
}

func Test_Bucket_NumericKey(t *testing.T) {
	var bucket models.Bucket
	require.NoError(t, json.Unmarshal([]byte(`{"key": 500, "doc_count": 4}`), &bucket))

	assert.Equal(t, "500", bucket.Key)
	assert.Equal(t, int64(4), bucket.DocCount)
}

func Test_Bucket_KeyAsStringFallback(t *testing.T) {
	var bucket models.Bucket
	require.NoError(t, json.Unmarshal(
		[]byte(`{"key_as_string": "500.0-2000.0", "doc_count": 2}`), &bucket))

	assert.Equal(t, "500.0-2000.0", bucket.Key)
}

func Test_EmptyFacetAggregations_MarshalsToArrays(t *testing.T) {
	body, err := json.Marshal(models.EmptyFacetAggregations())
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"price_ranges": [], "categories": [], "locations": []}`,
		string(body),
	)
}
