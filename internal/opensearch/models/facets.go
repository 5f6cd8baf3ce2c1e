package models

import (
	"encoding/json"
	"fmt"
)

// Bucket - пара (значение фасета, количество документов).
// Порядок и состав бакетов определяет OpenSearch, мы их не трогаем.
type Bucket struct {
	Key      string `json:"key"`
	DocCount int64  `json:"doc_count"`
}

// FacetAggregations - канонический набор фасетов.
// Всегда содержит все три измерения, отсутствующие - пустыми слайсами.
// Собирается только нормализатором (search.NormalizeAggregations).
type FacetAggregations struct {
	PriceRanges []Bucket `json:"price_ranges"`
	Categories  []Bucket `json:"categories"`
	Locations   []Bucket `json:"locations"`
}

// EmptyFacetAggregations возвращает структуру с пустыми (не nil) слайсами,
// чтобы в JSON всегда были массивы, а не null
func EmptyFacetAggregations() FacetAggregations {
	return FacetAggregations{
		PriceRanges: []Bucket{},
		Categories:  []Bucket{},
		Locations:   []Bucket{},
	}
}

// UnmarshalJSON принимает ключ бакета и строкой и числом:
// terms агрегация отдает строки, range - числовые границы
func (b *Bucket) UnmarshalJSON(data []byte) error {
	var raw struct {
		Key         json.RawMessage `json:"key"`
		KeyAsString string          `json:"key_as_string"`
		DocCount    int64           `json:"doc_count"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal bucket: %w", err)
	}

	b.DocCount = raw.DocCount

	if len(raw.Key) > 0 {
		var s string
		if err := json.Unmarshal(raw.Key, &s); err == nil {
			b.Key = s
		} else {
			// Числовой ключ оставляем в исходном текстовом виде
			b.Key = string(raw.Key)
		}
	}

	if b.Key == "" && raw.KeyAsString != "" {
		b.Key = raw.KeyAsString
	}

	return nil
}
