package models

// EventDocument представляет документ события в OpenSearch.
// Имена json полей - часть контракта API, менять нельзя.
type EventDocument struct {
	ID        int64   `json:"id"`
	EventName string  `json:"eventName"`
	Category  string  `json:"category"`
	Location  string  `json:"location"`
	Price     float64 `json:"price"`
}

// SearchResult - результат поиска: хиты в порядке релевантности
// плюс нормализованные агрегации из того же запроса
type SearchResult struct {
	Hits         []*EventDocument  `json:"hits"`
	Total        int64             `json:"total"`
	MaxScore     *float64          `json:"max_score,omitempty"`
	Aggregations FacetAggregations `json:"aggregations"`
	SearchTime   string            `json:"search_time,omitempty"`
}
