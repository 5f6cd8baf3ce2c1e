package filterstate

import "fmt"

// BadgeKind - тип активного фильтра, который представляет бейдж
type BadgeKind string

const (
	BadgeSearch   BadgeKind = "search"
	BadgeCategory BadgeKind = "category"
	BadgeLocation BadgeKind = "location"
	BadgePrice    BadgeKind = "price"
)

// Badge - видимое представление одного примененного фильтра.
// Бейджи каждый раз выводятся из состояния целиком, а не правятся
// по месту, поэтому разойтись с состоянием они не могут.
type Badge struct {
	Kind  BadgeKind
	Value string
	Label string
}

// Badges выводит бейджи из состояния: текст поиска, категории и
// локации в порядке добавления, цена - если диапазон не по умолчанию
func Badges(s State) []Badge {
	badges := []Badge{}

	if s.SearchQuery != "" {
		badges = append(badges, Badge{
			Kind:  BadgeSearch,
			Value: s.SearchQuery,
			Label: s.SearchQuery,
		})
	}

	for _, c := range s.Categories {
		badges = append(badges, Badge{
			Kind:  BadgeCategory,
			Value: c,
			Label: c,
		})
	}

	for _, l := range s.Locations {
		badges = append(badges, Badge{
			Kind:  BadgeLocation,
			Value: l,
			Label: l,
		})
	}

	if !s.IsDefaultPriceRange() {
		badges = append(badges, Badge{
			Kind:  BadgePrice,
			Value: fmt.Sprintf("%g-%g", s.PriceMin, s.PriceMax),
			Label: fmt.Sprintf("%g - %g", s.PriceMin, s.PriceMax),
		})
	}

	return badges
}

// DismissAction возвращает действие, снимающее фильтр бейджа.
// Снятие бейджа и снятие галочки в панели фильтров - один и тот же
// переход и приводят к одному и тому же состоянию.
func (b Badge) DismissAction() Action {
	switch b.Kind {
	case BadgeSearch:
		return SetSearchText{Text: ""}
	case BadgeCategory:
		return ToggleCategory{Value: b.Value, Included: false}
	case BadgeLocation:
		return ToggleLocation{Value: b.Value, Included: false}
	case BadgePrice:
		return SetPriceRange{Low: DefaultPriceMin, High: DefaultPriceMax}
	}
	return nil
}
