package reports

import (
	"fmt"
	"time"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/domain/catalogs/property"
	"feedme/internal/domain/documents/meal"
)

// Service builds summaries from cached meals and properties.
type Service struct {
	meals      MealSource
	properties property.Lookup
}

// NewService creates a reports service.
func NewService(meals MealSource, properties property.Lookup) *Service {
	return &Service{meals: meals, properties: properties}
}

// RenderedDay is a day heading with its meals and rendered summary.
type RenderedDay struct {
	Heading Heading
	Meals   []meal.Meal
	Summary *Summary
}

// Days renders the n most recent days in loc, today first. Days without meals are included
// with an empty, complete summary.
func (s *Service) Days(now time.Time, loc *time.Location, n int) ([]RenderedDay, error) {
	byDate := make(map[string]DaySummary)
	for _, d := range GroupByDay(s.meals.Items(), loc) {
		byDate[d.Date.Format(DateLayout)] = d
	}

	out := make([]RenderedDay, 0, n)
	for _, h := range RecentDays(now.In(loc), n) {
		day := byDate[h.Date.Format(DateLayout)]
		totals := day.Totals
		if len(day.Meals) == 0 {
			totals = Aggregate()
		}

		summary, err := Render(totals, s.properties)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", h.Title(), err)
		}
		out = append(out, RenderedDay{Heading: h, Meals: day.Meals, Summary: summary})
	}
	return out, nil
}

// Meal renders the summary of one cached meal.
func (s *Service) Meal(mealID id.ID) (*Summary, error) {
	for _, m := range s.meals.Items() {
		if m.ID == mealID {
			return MealSummary(m, s.properties)
		}
	}
	return nil, apperror.NewNotFound(meal.EntityName, mealID)
}
