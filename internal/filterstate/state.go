package filterstate

import "slices"

// Границы ценового диапазона по умолчанию
const (
	DefaultPriceMin float64 = 0
	DefaultPriceMax float64 = 5000
)

// State - полное описание текущего поискового намерения пользователя.
// Все поля всегда определены; меняется только через Apply.
// Categories и Locations хранятся в порядке добавления.
type State struct {
	SearchQuery string
	PriceMin    float64
	PriceMax    float64
	Categories  []string
	Locations   []string
}

// Default возвращает состояние на момент начала сессии
func Default() State {
	return State{
		SearchQuery: "",
		PriceMin:    DefaultPriceMin,
		PriceMax:    DefaultPriceMax,
		Categories:  []string{},
		Locations:   []string{},
	}
}

// Action - одно из допустимых действий пользователя над фильтрами
type Action interface {
	isAction()
}

// SetSearchText задает поисковый текст (пустая строка - без текста)
type SetSearchText struct {
	Text string
}

// ToggleCategory включает или выключает категорию
type ToggleCategory struct {
	Value    string
	Included bool
}

// ToggleLocation включает или выключает локацию
type ToggleLocation struct {
	Value    string
	Included bool
}

// SetPriceRange задает границы цены (включительно)
type SetPriceRange struct {
	Low  float64
	High float64
}

func (SetSearchText) isAction()  {}
func (ToggleCategory) isAction() {}
func (ToggleLocation) isAction() {}
func (SetPriceRange) isAction()  {}

// Apply применяет действие и возвращает новое состояние.
// Прежнее состояние не меняется: слайсы копируются перед правкой,
// так что удержанные снаружи ссылки остаются валидными.
// Повторное включение/выключение того же значения - no-op.
func Apply(s State, a Action) State {
	next := s
	next.Categories = slices.Clone(s.Categories)
	next.Locations = slices.Clone(s.Locations)

	switch act := a.(type) {
	case SetSearchText:
		next.SearchQuery = act.Text

	case ToggleCategory:
		next.Categories = toggle(next.Categories, act.Value, act.Included)

	case ToggleLocation:
		next.Locations = toggle(next.Locations, act.Value, act.Included)

	case SetPriceRange:
		low, high := act.Low, act.High
		// Инвариант 0 <= low <= high
		if low < 0 {
			low = 0
		}
		if high < low {
			high = low
		}
		next.PriceMin = low
		next.PriceMax = high
	}

	return next
}

func toggle(values []string, value string, included bool) []string {
	idx := slices.Index(values, value)

	if included {
		if idx >= 0 {
			return values
		}
		return append(values, value)
	}

	if idx < 0 {
		return values
	}
	return slices.Delete(values, idx, idx+1)
}

// IsDefaultPriceRange сообщает, стоит ли диапазон цены по умолчанию
func (s State) IsDefaultPriceRange() bool {
	return s.PriceMin == DefaultPriceMin && s.PriceMax == DefaultPriceMax
}
