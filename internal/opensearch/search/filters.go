package search

// PriceRange - включительные границы цены
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filter описывает один поисковый запрос: текст плюс структурные фильтры.
// Nil/пустой фильтр означает "не применять".
type Filter struct {
	// Поисковый текст (полнотекстовый поиск по eventName, category, location)
	Query string `json:"query,omitempty"`

	// Фильтры
	PriceRange *PriceRange `json:"price_range,omitempty"`
	Categories []string    `json:"categories,omitempty"`
	Locations  []string    `json:"locations,omitempty"`

	// Размер страницы
	Size int `json:"size,omitempty"`
}

// DefaultPageSize - фиксированный размер страницы результатов
const DefaultPageSize = 20

func NewFilter() *Filter {
	return &Filter{
		Size: DefaultPageSize,
	}
}

// API для построения фильтров \\

func (f *Filter) WithQuery(query string) *Filter {
	f.Query = query
	return f
}

func (f *Filter) WithPriceRange(min, max float64) *Filter {
	f.PriceRange = &PriceRange{Min: min, Max: max}
	return f
}

func (f *Filter) WithCategories(categories ...string) *Filter {
	f.Categories = categories
	return f
}

func (f *Filter) WithLocations(locations ...string) *Filter {
	f.Locations = locations
	return f
}

func (f *Filter) WithSize(size int) *Filter {
	f.Size = size
	return f
}

func (f *Filter) IsEmpty() bool {
	return f.Query == "" &&
		f.PriceRange == nil &&
		len(f.Categories) == 0 &&
		len(f.Locations) == 0
}
