package reports

import (
	"feedme/internal/domain/documents/meal"
)

// MealSource provides the meals a report is built from. *meal.Collection satisfies it.
type MealSource interface {
	Items() []meal.Meal
}
