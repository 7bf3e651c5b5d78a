// Package meal provides meals: dated collections of meal dishes with a nutrient summary the
// backend precomputes.
package meal

import (
	"context"
	"time"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain"
	"feedme/internal/domain/catalogs/ingredient"
	"feedme/internal/domain/catalogs/property"
	"feedme/pkg/logger"
)

const (
	// Path is the collection resource.
	Path = "/meals"

	// DishesPath is the resource for dish instances within meals.
	DishesPath = "/meal_dishes"

	// IngredientsPath is the resource for ingredient lines of meal dishes.
	IngredientsPath = "/meal_dish_ingredients"

	EntityName           = "meal"
	DishEntityName       = "meal dish"
	IngredientEntityName = "meal dish ingredient"
)

// Meal is one dated meal.
type Meal struct {
	ID id.ID `json:"id"`

	// TimestampUTC is unix milliseconds
	TimestampUTC int64 `json:"timestamp_utc"`

	// TzOffsMin is the creator's UTC offset in minutes, east positive
	TzOffsMin int `json:"tz_offs_min"`

	Dishes []MealDish `json:"dishes"`

	// Summary is computed by the backend from the dishes' ingredients
	Summary         []property.Value `json:"summary"`
	SummaryComplete bool             `json:"summary_complete"`
}

// GetID implements domain.Entity.
func (m Meal) GetID() id.ID { return m.ID }

// Time returns the meal timestamp.
func (m Meal) Time() time.Time {
	return time.UnixMilli(m.TimestampUTC)
}

// Date returns midnight of the day the meal falls on in loc.
func (m Meal) Date(loc *time.Location) time.Time {
	return DayOf(m.Time(), loc)
}

// DayOf truncates t to midnight of its calendar day in loc.
func DayOf(t time.Time, loc *time.Location) time.Time {
	y, mo, d := t.In(loc).Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, loc)
}

// HasDish reports whether the meal contains an instance of dishID.
func (m Meal) HasDish(dishID id.ID) bool {
	_, ok := m.findDish(dishID)
	return ok
}

func (m Meal) findDish(dishID id.ID) (MealDish, bool) {
	for _, d := range m.Dishes {
		if d.DishID == dishID {
			return d, true
		}
	}
	return MealDish{}, false
}

// MealDish is one instance of a dish within a meal.
type MealDish struct {
	ID          id.ID        `json:"id"`
	DishID      id.ID        `json:"dish_id"`
	Ingredients []Ingredient `json:"ingredients"`
}

// GetID implements domain.Entity.
func (d MealDish) GetID() id.ID { return d.ID }

// Ingredient is one ingredient line of a meal dish.
type Ingredient struct {
	ID           id.ID           `json:"id"`
	IngredientID id.ID           `json:"ingredient_id"`
	Quantity     types.Amount    `json:"quantity"`
	Unit         ingredient.Unit `json:"unit"`
}

// GetID implements domain.Entity.
func (i Ingredient) GetID() id.ID { return i.ID }

// CreateParams is the body of PUT /meals.
type CreateParams struct {
	TimestampUTC int64 `json:"timestamp_utc"`
	TzOffsMin    int   `json:"tz_offs_min"`
}

// NewCreateParams describes a meal at t, keeping t's zone offset.
func NewCreateParams(t time.Time) CreateParams {
	_, offset := t.Zone()
	return CreateParams{
		TimestampUTC: t.UnixMilli(),
		TzOffsMin:    offset / 60,
	}
}

// AddDishParams is the body of PUT /meal_dishes.
type AddDishParams struct {
	MealID id.ID `json:"meal_id"`
	DishID id.ID `json:"dish_id"`
}

// AddIngredientParams is the body of PUT /meal_dish_ingredients.
type AddIngredientParams struct {
	MealDishID   id.ID `json:"meal_dish_id"`
	IngredientID id.ID `json:"ingredient_id"`
}

// UpdateIngredientParams is the body of PUT /meal_dish_ingredients/{id}.
type UpdateIngredientParams struct {
	Quantity types.Amount    `json:"quantity"`
	Unit     ingredient.Unit `json:"unit"`
}

// Validate implements domain.Validatable.
func (p UpdateIngredientParams) Validate(_ context.Context) error {
	if p.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative")
	}
	if !p.Unit.Valid() {
		return apperror.NewValidation("unknown unit").WithDetail("unit", string(p.Unit))
	}
	return nil
}

// CopyFromParams is the body of PUT /meal_dishes/{id}/copy_from.
type CopyFromParams struct {
	MealDishID id.ID `json:"meal_dish_id"`
}

// Collection is the cached meal list.
type Collection = domain.RemoteCollection[Meal]

// NewCollection creates the meal cache.
func NewCollection(r domain.Requester, log *logger.Logger) *Collection {
	return domain.NewRemoteCollection(domain.CollectionConfig[Meal]{
		Requester:  r,
		Path:       Path,
		EntityName: EntityName,
		Logger:     log,
	})
}
