package meal

import (
	"fmt"
	"strings"
	"time"

	"feedme/internal/core/id"
	"feedme/internal/domain/catalogs/dish"
)

// EmptyLabel is the label of a meal without dishes.
const EmptyLabel = "No food eaten yet"

// DishLookup resolves a dish id. *dish.Collection satisfies it.
type DishLookup interface {
	GetByID(id.ID) (dish.Dish, bool)
}

// Label names a meal by its dishes: "egg on bread + toast".
func Label(m Meal, dishes DishLookup) string {
	if len(m.Dishes) == 0 {
		return EmptyLabel
	}

	names := make([]string, len(m.Dishes))
	for i, md := range m.Dishes {
		if d, ok := dishes.GetByID(md.DishID); ok {
			names[i] = d.Name
		} else {
			names[i] = fmt.Sprintf("dish #%s", md.DishID)
		}
	}
	return strings.Join(names, " + ")
}

// Version is an earlier instance of a dish in another meal.
type Version struct {
	MealID     id.ID
	MealDishID id.ID
	Time       time.Time
}

// OtherVersions lists, in meal order, the first instance of dishID in every meal except
// exclude. These are the candidates for DishEditor.CopyFrom.
func OtherVersions(meals []Meal, exclude, dishID id.ID) []Version {
	var out []Version
	for _, m := range meals {
		if m.ID == exclude {
			continue
		}
		if md, ok := m.findDish(dishID); ok {
			out = append(out, Version{MealID: m.ID, MealDishID: md.ID, Time: m.Time()})
		}
	}
	return out
}
