package search

import (
	"strings"
)

// QueryBuilder собирает запросы к OpenSearch из фильтров.
// Функция чистая: для одинакового фильтра документ запроса
// байт-в-байт одинаков (map сериализуется с сортировкой ключей).
type QueryBuilder struct{}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// BuildSearchQuery строит полный поисковый запрос: bool query,
// фиксированный размер страницы и всегда приложенный блок агрегаций
func (qb *QueryBuilder) BuildSearchQuery(filter *Filter) map[string]any {
	size := filter.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	query := map[string]any{
		"size": size,
	}

	// Основной запрос
	boolQuery := map[string]any{
		"bool": map[string]any{},
	}

	var mustQueries []any
	var filterQueries []any

	// Полнотекстовый поиск. Текст из одних пробелов равнозначен
	// отсутствию текста: multi_match с пустой строкой не находит ничего
	if text := strings.TrimSpace(filter.Query); text != "" {
		mustQueries = append(mustQueries, qb.buildTextSearchQuery(text))
	}

	// Фильтры не влияют на релевантность, только сужают выборку
	if filter.PriceRange != nil {
		filterQueries = append(filterQueries, qb.buildPriceRangeFilter(filter.PriceRange))
	}

	if len(filter.Categories) > 0 {
		filterQueries = append(filterQueries, qb.buildTermsFilter("category.keyword", filter.Categories))
	}

	if len(filter.Locations) > 0 {
		filterQueries = append(filterQueries, qb.buildTermsFilter("location.keyword", filter.Locations))
	}

	// Без поискового текста запрос не должен падать или пустеть
	if len(mustQueries) == 0 {
		mustQueries = append(mustQueries, map[string]any{
			"match_all": map[string]any{},
		})
	}

	boolQuery["bool"].(map[string]any)["must"] = mustQueries
	if len(filterQueries) > 0 {
		boolQuery["bool"].(map[string]any)["filter"] = filterQueries
	}

	query["query"] = boolQuery
	query["aggs"] = qb.buildAggregations()

	return query
}

// BuildFacetsQuery строит запрос только за фасетами:
// match_all по всему корпусу, без хитов
func (qb *QueryBuilder) BuildFacetsQuery() map[string]any {
	return map[string]any{
		"size": 0,
		"query": map[string]any{
			"match_all": map[string]any{},
		},
		"aggs": qb.buildAggregations(),
	}
}

func (qb *QueryBuilder) buildTextSearchQuery(searchText string) map[string]any {
	return map[string]any{
		"multi_match": map[string]any{
			"query":     searchText,
			"fields":    []string{"eventName^3", "category^2", "location"},
			"type":      "best_fields",
			"fuzziness": "AUTO",
		},
	}
}

func (qb *QueryBuilder) buildPriceRangeFilter(pr *PriceRange) map[string]any {
	return map[string]any{
		"range": map[string]any{
			"price": map[string]any{
				"gte": pr.Min,
				"lte": pr.Max,
			},
		},
	}
}

func (qb *QueryBuilder) buildTermsFilter(field string, values []string) map[string]any {
	return map[string]any{
		"terms": map[string]any{
			field: values,
		},
	}
}

// buildAggregations - фиксированные три измерения фасетов.
// Границы ценовых бакетов и размер top-N менять синхронно с UI.
func (qb *QueryBuilder) buildAggregations() map[string]any {
	return map[string]any{
		"price_ranges": map[string]any{
			"range": map[string]any{
				"field": "price",
				"ranges": []any{
					map[string]any{"to": 500.0},
					map[string]any{"from": 500.0, "to": 2000.0},
					map[string]any{"from": 2000.0, "to": 4000.0},
				},
			},
		},
		"categories": map[string]any{
			"terms": map[string]any{
				"field": "category.keyword",
				"size":  10,
			},
		},
		"locations": map[string]any{
			"terms": map[string]any{
				"field": "location.keyword",
				"size":  10,
			},
		},
	}
}
