package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain/catalogs/property"
	"feedme/internal/domain/documents/meal"
)

func values(pairs ...float64) []property.Value {
	out := make([]property.Value, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, property.Value{PropertyID: id.ID(pairs[i]), Value: types.Amount(pairs[i+1])})
	}
	return out
}

func TestAggregate_SumsAndAndsCompleteness(t *testing.T) {
	got := Aggregate(
		Contribution{Values: values(1, 5), Complete: true},
		Contribution{Values: values(1, 7), Complete: false},
	)

	assert.Equal(t, Totals{Values: values(1, 12), Complete: false}, got)
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	got := Aggregate(
		Contribution{Values: values(3, 1, 1, 2), Complete: true},
		Contribution{Values: values(2, 4, 3, 0.5), Complete: true},
	)

	assert.Equal(t, values(3, 1.5, 1, 2, 2, 4), got.Values)
	assert.True(t, got.Complete)
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate()
	assert.True(t, got.Complete)
	assert.Empty(t, got.Values)
}

func TestAggregate_Deterministic(t *testing.T) {
	in := []Contribution{
		{Values: values(1, 0.1), Complete: true},
		{Values: values(1, 0.2), Complete: true},
		{Values: values(1, 0.3), Complete: true},
	}
	assert.Equal(t, Aggregate(in...), Aggregate(in...))
}

func hierarchy() property.MapLookup {
	return property.NewMapLookup(
		property.Property{ID: 1, Name: "root"},
		property.Property{ID: 2, Name: "child", ParentID: id.Ptr(1)},
		property.Property{ID: 3, Name: "other root"},
	)
}

func TestRender_ParentsPrecedeChildren(t *testing.T) {
	totals := Totals{Values: values(3, 30, 2, 20, 1, 10), Complete: true}

	summary, err := Render(totals, hierarchy())
	require.NoError(t, err)

	assert.Equal(t, []id.ID{1, 2, 3}, summary.PropertyIDs())
	assert.Equal(t, 0, summary.Rows[0].Indent())
	assert.Equal(t, IndentPerLevel, summary.Rows[1].Indent())
	assert.Equal(t, 0, summary.Rows[2].Indent())
	assert.Equal(t, "child", summary.Rows[1].Name)
	assert.Equal(t, []id.ID{1, 2}, summary.Rows[1].SortKey)
	assert.True(t, summary.Complete)
}

func TestRender_FormatsTwoDecimals(t *testing.T) {
	summary, err := Render(Totals{Values: values(1, 17.2, 3, 22.714)}, hierarchy())
	require.NoError(t, err)

	assert.Equal(t, "17.20", summary.Rows[0].Formatted())
	assert.Equal(t, "22.71", summary.Rows[1].Formatted())
	assert.False(t, summary.Complete)
}

func TestRender_UnknownProperty(t *testing.T) {
	_, err := Render(Totals{Values: values(9, 1)}, hierarchy())
	assert.True(t, apperror.IsNotFound(err))
}

func TestRender_Cycle(t *testing.T) {
	lookup := property.NewMapLookup(
		property.Property{ID: 1, Name: "a", ParentID: id.Ptr(2)},
		property.Property{ID: 2, Name: "b", ParentID: id.Ptr(1)},
	)

	_, err := Render(Totals{Values: values(1, 1)}, lookup)
	assert.True(t, apperror.IsCyclicHierarchy(err))
}

func TestMealSummary_MatchesDayRendering(t *testing.T) {
	m := meal.Meal{ID: 1, Summary: values(3, 1, 2, 2, 1, 3), SummaryComplete: true}

	single, err := MealSummary(m, hierarchy())
	require.NoError(t, err)

	day, err := Render(Aggregate(FromMeal(m)), hierarchy())
	require.NoError(t, err)

	assert.Equal(t, day, single)
	assert.Equal(t, []id.ID{1, 2, 3}, single.PropertyIDs())
}

func TestGroupByDay(t *testing.T) {
	pdt := time.FixedZone("PDT", -7*60*60)
	at := func(day, hour int) int64 {
		return time.Date(2025, time.June, day, hour, 0, 0, 0, pdt).UnixMilli()
	}

	meals := []meal.Meal{
		{ID: 1, TimestampUTC: at(9, 8), Summary: values(1, 100), SummaryComplete: true},
		{ID: 2, TimestampUTC: at(10, 8), Summary: values(1, 260, 2, 11), SummaryComplete: true},
		{ID: 3, TimestampUTC: at(10, 23), Summary: values(1, 505, 2, 22.714), SummaryComplete: false},
	}

	days := GroupByDay(meals, pdt)
	require.Len(t, days, 2)

	assert.Equal(t, time.Date(2025, time.June, 10, 0, 0, 0, 0, pdt), days[0].Date)
	assert.Len(t, days[0].Meals, 2)
	assert.InDelta(t, 765, days[0].Totals.Values[0].Value.Float64(), 1e-9)
	assert.InDelta(t, 33.714, days[0].Totals.Values[1].Value.Float64(), 1e-9)
	assert.False(t, days[0].Totals.Complete)

	assert.Equal(t, time.Date(2025, time.June, 9, 0, 0, 0, 0, pdt), days[1].Date)
	assert.True(t, days[1].Totals.Complete)
}

func TestRecentDays(t *testing.T) {
	now := time.Date(2025, time.March, 2, 15, 4, 5, 0, time.UTC)

	headings := RecentDays(now, 7)
	require.Len(t, headings, 7)

	assert.Equal(t, "Today (2025-03-02)", headings[0].Title())
	assert.Equal(t, "Yesterday (2025-03-01)", headings[1].Title())
	assert.Equal(t, "2025-02-28", headings[2].Title())
	assert.Equal(t, "2025-02-24", headings[6].Title())
}
