package session

import (
	"context"

	"github.com/rx3lixir/event-explorer/internal/filterstate"
	"github.com/rx3lixir/event-explorer/internal/opensearch/models"
	"github.com/rx3lixir/event-explorer/internal/opensearch/search"
)

// Fetcher - источник результатов и фасетов (обычно search.Searcher)
type Fetcher interface {
	SearchEvents(ctx context.Context, filter *search.Filter) (*models.SearchResult, error)
	FetchFacets(ctx context.Context) (*models.FacetAggregations, error)
}

// Snapshot - согласованный срез сессии для отображения.
// Ошибки результатов и фасетов хранятся раздельно: фасеты грузятся
// один раз и не перезапрашиваются, успех очередного поиска
// не делает их загруженными.
type Snapshot struct {
	State     filterstate.State
	Badges    []filterstate.Badge
	Results   *models.SearchResult
	Facets    *models.FacetAggregations
	LastErr   error
	FacetsErr error
}

// FilterFromState переводит состояние фильтров в поисковый фильтр.
// Диапазон цены попадает в запрос только если он не по умолчанию.
func FilterFromState(s filterstate.State) *search.Filter {
	filter := search.NewFilter().WithQuery(s.SearchQuery)

	if !s.IsDefaultPriceRange() {
		filter = filter.WithPriceRange(s.PriceMin, s.PriceMax)
	}

	if len(s.Categories) > 0 {
		filter = filter.WithCategories(s.Categories...)
	}

	if len(s.Locations) > 0 {
		filter = filter.WithLocations(s.Locations...)
	}

	return filter
}
