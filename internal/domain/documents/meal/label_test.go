package meal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"feedme/internal/core/id"
	"feedme/internal/domain/catalogs/dish"
)

type dishes map[id.ID]dish.Dish

func (d dishes) GetByID(dishID id.ID) (dish.Dish, bool) {
	v, ok := d[dishID]
	return v, ok
}

func TestLabel(t *testing.T) {
	lookup := dishes{
		1: {ID: 1, Name: "egg on bread"},
		2: {ID: 2, Name: "bread and cheese"},
	}

	assert.Equal(t, EmptyLabel, Label(Meal{}, lookup))
	assert.Equal(t, "egg on bread", Label(Meal{Dishes: []MealDish{{DishID: 1}}}, lookup))
	assert.Equal(t, "egg on bread + bread and cheese",
		Label(Meal{Dishes: []MealDish{{DishID: 1}, {DishID: 2}}}, lookup))
	assert.Equal(t, "dish #9", Label(Meal{Dishes: []MealDish{{DishID: 9}}}, lookup))
}

func TestOtherVersions(t *testing.T) {
	meals := []Meal{
		{ID: 1, TimestampUTC: 1000, Dishes: []MealDish{{ID: 10, DishID: 5}, {ID: 11, DishID: 5}}},
		{ID: 2, Dishes: []MealDish{{ID: 20, DishID: 6}}},
		{ID: 3, Dishes: []MealDish{{ID: 30, DishID: 5}}},
		{ID: 4, Dishes: []MealDish{{ID: 40, DishID: 5}}},
	}

	got := OtherVersions(meals, 3, 5)
	assert.Equal(t, []Version{
		{MealID: 1, MealDishID: 10, Time: time.UnixMilli(1000)},
		{MealID: 4, MealDishID: 40, Time: time.UnixMilli(0)},
	}, got)
}

func TestNewCreateParams(t *testing.T) {
	pdt := time.FixedZone("PDT", -7*60*60)
	at := time.Date(2025, time.June, 10, 13, 6, 0, 0, pdt)

	p := NewCreateParams(at)
	assert.Equal(t, at.UnixMilli(), p.TimestampUTC)
	assert.Equal(t, -420, p.TzOffsMin)
}

func TestMeal_Date(t *testing.T) {
	pdt := time.FixedZone("PDT", -7*60*60)
	// 2025-06-11 03:00 UTC is still June 10 in PDT
	m := Meal{TimestampUTC: time.Date(2025, time.June, 11, 3, 0, 0, 0, time.UTC).UnixMilli()}

	assert.Equal(t, time.Date(2025, time.June, 10, 0, 0, 0, 0, pdt), m.Date(pdt))
	assert.Equal(t, time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC), m.Date(time.UTC))
}
