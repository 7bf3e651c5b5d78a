// Package reports provides nutrient summaries: aggregation of meal summaries, hierarchical
// rendering and grouping by day.
package reports

import (
	"time"

	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain/catalogs/property"
	"feedme/internal/domain/documents/meal"
)

// IndentPerLevel is the indentation, in character cells, added per level of property depth.
const IndentPerLevel = 2

// Contribution is one summary feeding an aggregate, usually one meal's.
type Contribution struct {
	Values   []property.Value
	Complete bool
}

// FromMeal turns a meal's precomputed summary into a contribution.
func FromMeal(m meal.Meal) Contribution {
	return Contribution{Values: m.Summary, Complete: m.SummaryComplete}
}

// Totals is an aggregated summary: one value per property in first-seen order.
type Totals struct {
	Values   []property.Value
	Complete bool
}

// Value returns the total for one property.
func (t Totals) Value(propertyID id.ID) (types.Amount, bool) {
	for _, v := range t.Values {
		if v.PropertyID == propertyID {
			return v.Value, true
		}
	}
	return 0, false
}

// Row is one rendered summary line.
type Row struct {
	PropertyID id.ID
	Name       string
	Value      types.Amount
	Depth      int
	SortKey    []id.ID
}

// Formatted renders the value with two decimals.
func (r Row) Formatted() string {
	return r.Value.Format()
}

// Indent returns the indentation in character cells.
func (r Row) Indent() int {
	return r.Depth * IndentPerLevel
}

// Summary is a rendered, hierarchically ordered summary.
type Summary struct {
	Rows     []Row
	Complete bool
}

// PropertyIDs returns the row property ids in display order.
func (s *Summary) PropertyIDs() []id.ID {
	ids := make([]id.ID, len(s.Rows))
	for i, r := range s.Rows {
		ids[i] = r.PropertyID
	}
	return ids
}

// DaySummary aggregates the meals of one calendar day.
type DaySummary struct {
	// Date is midnight of the day in the viewer's location
	Date   time.Time
	Meals  []meal.Meal
	Totals Totals
}

// Heading titles a day in the days view.
type Heading struct {
	Date  time.Time
	Alias string
}

// DateLayout is how days are printed.
const DateLayout = "2006-01-02"

// Title renders "Today (2025-06-10)" or just the date.
func (h Heading) Title() string {
	date := h.Date.Format(DateLayout)
	if h.Alias == "" {
		return date
	}
	return h.Alias + " (" + date + ")"
}
