package search

import (
	"encoding/json"

	"github.com/rx3lixir/event-explorer/internal/opensearch/models"
)

// NormalizeAggregations приводит сырой блок агрегаций OpenSearch
// к каноническому виду: всегда все три измерения, отсутствующие
// или нечитаемые - пустыми слайсами. Отсутствие - это данные,
// а не ошибка, поэтому функция тотальна и ошибок не возвращает.
func NormalizeAggregations(raw map[string]json.RawMessage) models.FacetAggregations {
	return models.FacetAggregations{
		PriceRanges: normalizeBuckets(raw, "price_ranges"),
		Categories:  normalizeBuckets(raw, "categories"),
		Locations:   normalizeBuckets(raw, "locations"),
	}
}

// normalizeBuckets читает бакеты одного измерения.
// Порядок и нулевые бакеты сохраняются как отдал движок.
func normalizeBuckets(raw map[string]json.RawMessage, name string) []models.Bucket {
	empty := []models.Bucket{}

	if raw == nil {
		return empty
	}

	dim, ok := raw[name]
	if !ok || len(dim) == 0 {
		return empty
	}

	var parsed struct {
		Buckets []models.Bucket `json:"buckets"`
	}
	if err := json.Unmarshal(dim, &parsed); err != nil {
		return empty
	}

	if parsed.Buckets == nil {
		return empty
	}

	return parsed.Buckets
}
