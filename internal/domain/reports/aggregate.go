package reports

import (
	"fmt"
	"slices"
	"time"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/domain/catalogs/property"
	"feedme/internal/domain/documents/meal"
)

// Aggregate sums values by property. Properties keep the order in which they are first seen
// and values are added in input order, so equal inputs give bit-identical totals.
// The result is complete only if every contribution is; no contributions is complete.
func Aggregate(contributions ...Contribution) Totals {
	totals := Totals{Complete: true}
	index := make(map[id.ID]int)

	for _, c := range contributions {
		if !c.Complete {
			totals.Complete = false
		}
		for _, v := range c.Values {
			i, ok := index[v.PropertyID]
			if !ok {
				i = len(totals.Values)
				index[v.PropertyID] = i
				totals.Values = append(totals.Values, property.Value{PropertyID: v.PropertyID})
			}
			totals.Values[i].Value += v.Value
		}
	}

	return totals
}

// Render produces one row per property, ordered by sort key so that each parent directly
// precedes its children.
func Render(totals Totals, lookup property.Lookup) (*Summary, error) {
	rows := make([]Row, 0, len(totals.Values))

	for _, v := range totals.Values {
		p, ok := lookup.GetByID(v.PropertyID)
		if !ok {
			return nil, apperror.NewNotFound(property.EntityName, v.PropertyID)
		}

		key, err := property.SortKey(p, lookup)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", p.Name, err)
		}

		rows = append(rows, Row{
			PropertyID: p.ID,
			Name:       p.Name,
			Value:      v.Value,
			Depth:      len(key) - 1,
			SortKey:    key,
		})
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		return property.CompareKeys(a.SortKey, b.SortKey)
	})

	return &Summary{Rows: rows, Complete: totals.Complete}, nil
}

// MealSummary renders one meal's summary.
func MealSummary(m meal.Meal, lookup property.Lookup) (*Summary, error) {
	return Render(Aggregate(FromMeal(m)), lookup)
}

// GroupByDay buckets meals by their calendar day in loc and aggregates each day.
// Days are returned newest first; meals within a day keep their input order.
func GroupByDay(meals []meal.Meal, loc *time.Location) []DaySummary {
	var days []DaySummary
	index := make(map[string]int)

	for _, m := range meals {
		date := m.Date(loc)
		key := date.Format(DateLayout)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, DaySummary{Date: date})
		}
		days[i].Meals = append(days[i].Meals, m)
	}

	for i := range days {
		contributions := make([]Contribution, len(days[i].Meals))
		for n, m := range days[i].Meals {
			contributions[n] = FromMeal(m)
		}
		days[i].Totals = Aggregate(contributions...)
	}

	slices.SortStableFunc(days, func(a, b DaySummary) int {
		return b.Date.Compare(a.Date)
	})
	return days
}

// RecentDays returns headings for the n days ending today: "Today", "Yesterday", then bare
// dates.
func RecentDays(now time.Time, n int) []Heading {
	day := meal.DayOf(now, now.Location())

	headings := make([]Heading, 0, n)
	for i := 0; i < n; i++ {
		h := Heading{Date: day.AddDate(0, 0, -i)}
		switch i {
		case 0:
			h.Alias = "Today"
		case 1:
			h.Alias = "Yesterday"
		}
		headings = append(headings, h)
	}
	return headings
}
