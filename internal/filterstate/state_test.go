package filterstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rx3lixir/event-explorer/internal/filterstate"
)

func Test_Default(t *testing.T) {
	s := filterstate.Default()

	assert.Equal(t, "", s.SearchQuery)
	assert.Equal(t, filterstate.DefaultPriceMin, s.PriceMin)
	assert.Equal(t, filterstate.DefaultPriceMax, s.PriceMax)
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.Locations)
	assert.True(t, s.IsDefaultPriceRange())
}

func Test_Apply_Deterministic(t *testing.T) {
	s := filterstate.Default()
	action := filterstate.ToggleCategory{Value: "Music", Included: true}

	first := filterstate.Apply(s, action)
	second := filterstate.Apply(s, action)

	assert.Equal(t, first, second)
}

func Test_Apply_DoesNotMutatePreviousState(t *testing.T) {
	s := filterstate.Apply(filterstate.Default(), filterstate.ToggleCategory{Value: "Music", Included: true})

	next := filterstate.Apply(s, filterstate.ToggleCategory{Value: "Theatre", Included: true})
	next = filterstate.Apply(next, filterstate.SetSearchText{Text: "jazz"})

	// Прежнее состояние осталось прежним
	assert.Equal(t, []string{"Music"}, s.Categories)
	assert.Equal(t, "", s.SearchQuery)

	assert.Equal(t, []string{"Music", "Theatre"}, next.Categories)
	assert.Equal(t, "jazz", next.SearchQuery)
}

func Test_ToggleCategory_Idempotent(t *testing.T) {
	s := filterstate.Default()

	once := filterstate.Apply(s, filterstate.ToggleCategory{Value: "Music", Included: true})
	twice := filterstate.Apply(once, filterstate.ToggleCategory{Value: "Music", Included: true})
	assert.Equal(t, once, twice)

	// Снятие отсутствующего значения - no-op, не ошибка
	removedAbsent := filterstate.Apply(s, filterstate.ToggleCategory{Value: "Cinema", Included: false})
	assert.Equal(t, s, removedAbsent)
}

func Test_ToggleCategory_RoundTrip(t *testing.T) {
	before := filterstate.Apply(filterstate.Default(), filterstate.SetSearchText{Text: "jazz"})

	checked := filterstate.Apply(before, filterstate.ToggleCategory{Value: "Music", Included: true})
	unchecked := filterstate.Apply(checked, filterstate.ToggleCategory{Value: "Music", Included: false})

	assert.Equal(t, before, unchecked)
}

func Test_ToggleLocation_PreservesInsertionOrder(t *testing.T) {
	s := filterstate.Default()
	s = filterstate.Apply(s, filterstate.ToggleLocation{Value: "Moscow", Included: true})
	s = filterstate.Apply(s, filterstate.ToggleLocation{Value: "Kazan", Included: true})
	s = filterstate.Apply(s, filterstate.ToggleLocation{Value: "Sochi", Included: true})
	s = filterstate.Apply(s, filterstate.ToggleLocation{Value: "Kazan", Included: false})

	assert.Equal(t, []string{"Moscow", "Sochi"}, s.Locations)
}

func Test_SetPriceRange(t *testing.T) {
	tests := []struct {
		name      string
		low, high float64
		wantLow   float64
		wantHigh  float64
	}{
		{name: "valid_range", low: 500, high: 2000, wantLow: 500, wantHigh: 2000},
		{name: "negative_low_clamped", low: -100, high: 2000, wantLow: 0, wantHigh: 2000},
		{name: "inverted_range_collapsed", low: 3000, high: 1000, wantLow: 3000, wantHigh: 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := filterstate.Apply(filterstate.Default(), filterstate.SetPriceRange{Low: tt.low, High: tt.high})

			assert.Equal(t, tt.wantLow, s.PriceMin)
			assert.Equal(t, tt.wantHigh, s.PriceMax)
			assert.LessOrEqual(t, s.PriceMin, s.PriceMax)
			assert.GreaterOrEqual(t, s.PriceMin, 0.0)
		})
	}
}

func Test_Badges_DerivedFromState(t *testing.T) {
	s := filterstate.Default()
	assert.Empty(t, filterstate.Badges(s))

	s = filterstate.Apply(s, filterstate.SetSearchText{Text: "jazz"})
	s = filterstate.Apply(s, filterstate.ToggleCategory{Value: "Music", Included: true})
	s = filterstate.Apply(s, filterstate.ToggleLocation{Value: "Moscow", Included: true})
	s = filterstate.Apply(s, filterstate.SetPriceRange{Low: 500, High: 2000})

	badges := filterstate.Badges(s)
	require.Len(t, badges, 4)

	assert.Equal(t, filterstate.BadgeSearch, badges[0].Kind)
	assert.Equal(t, "jazz", badges[0].Value)
	assert.Equal(t, filterstate.BadgeCategory, badges[1].Kind)
	assert.Equal(t, "Music", badges[1].Value)
	assert.Equal(t, filterstate.BadgeLocation, badges[2].Kind)
	assert.Equal(t, "Moscow", badges[2].Value)
	assert.Equal(t, filterstate.BadgePrice, badges[3].Kind)
}

func Test_Badges_NoPriceBadgeForDefaultRange(t *testing.T) {
	s := filterstate.Apply(filterstate.Default(), filterstate.SetSearchText{Text: "jazz"})

	badges := filterstate.Badges(s)

	require.Len(t, badges, 1)
	assert.Equal(t, filterstate.BadgeSearch, badges[0].Kind)
}

func Test_Badge_DismissEqualsUncheck(t *testing.T) {
	s := filterstate.Default()
	s = filterstate.Apply(s, filterstate.SetSearchText{Text: "jazz"})
	s = filterstate.Apply(s, filterstate.ToggleCategory{Value: "Music", Included: true})
	s = filterstate.Apply(s, filterstate.ToggleLocation{Value: "Moscow", Included: true})
	s = filterstate.Apply(s, filterstate.SetPriceRange{Low: 500, High: 2000})

	// Снятие каждого бейджа дает то же состояние, что и снятие
	// соответствующей галочки напрямую
	uncheckActions := map[filterstate.BadgeKind]filterstate.Action{
		filterstate.BadgeSearch:   filterstate.SetSearchText{Text: ""},
		filterstate.BadgeCategory: filterstate.ToggleCategory{Value: "Music", Included: false},
		filterstate.BadgeLocation: filterstate.ToggleLocation{Value: "Moscow", Included: false},
		filterstate.BadgePrice: filterstate.SetPriceRange{
			Low:  filterstate.DefaultPriceMin,
			High: filterstate.DefaultPriceMax,
		},
	}

	for _, badge := range filterstate.Badges(s) {
		viaBadge := filterstate.Apply(s, badge.DismissAction())
		viaCheckbox := filterstate.Apply(s, uncheckActions[badge.Kind])
		assert.Equal(t, viaCheckbox, viaBadge, "badge kind %s", badge.Kind)
	}
}

func Test_FullDismissReturnsToDefault(t *testing.T) {
	s := filterstate.Default()
	s = filterstate.Apply(s, filterstate.SetSearchText{Text: "jazz"})
	s = filterstate.Apply(s, filterstate.ToggleCategory{Value: "Music", Included: true})
	s = filterstate.Apply(s, filterstate.SetPriceRange{Low: 500, High: 2000})

	for len(filterstate.Badges(s)) > 0 {
		s = filterstate.Apply(s, filterstate.Badges(s)[0].DismissAction())
	}

	assert.Equal(t, filterstate.Default(), s)
}
