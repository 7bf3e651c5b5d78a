package meal

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain"
	"feedme/internal/domain/catalogs/ingredient"
)

// DishEditor wraps one meal dish and its ingredient lines.
type DishEditor struct {
	requester domain.Requester

	mu   sync.RWMutex
	data MealDish

	newIngredient     domain.Observers[Ingredient]
	removedIngredient domain.Observers[Ingredient]
	changedIngredient domain.Observers[Ingredient]
}

func newDishEditor(r domain.Requester, data MealDish) *DishEditor {
	return &DishEditor{requester: r, data: data}
}

// ID returns the meal dish id.
func (e *DishEditor) ID() id.ID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.ID
}

// DishID returns the dish this is an instance of.
func (e *DishEditor) DishID() id.ID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.DishID
}

// Data returns the current snapshot.
func (e *DishEditor) Data() MealDish {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data
}

// Ingredients returns the ingredient lines in order.
func (e *DishEditor) Ingredients() []Ingredient {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.data.Ingredients)
}

func (e *DishEditor) replace(data MealDish) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data = data
}

// OnNewIngredient hands fn every existing line, then subscribes it to lines added later.
// Each line reaches fn exactly once.
func (e *DishEditor) OnNewIngredient(fn domain.Observer[Ingredient]) (cancel func()) {
	e.mu.RLock()
	existing := e.data.Ingredients
	cancel = e.newIngredient.Subscribe(fn)
	e.mu.RUnlock()

	domain.Delivery[Ingredient]{fn}.Deliver(existing...)
	return cancel
}

// OnIngredientRemoved subscribes fn to lines deleted by RemoveIngredient.
func (e *DishEditor) OnIngredientRemoved(fn domain.Observer[Ingredient]) (cancel func()) {
	return e.removedIngredient.Subscribe(fn)
}

// OnIngredientChanged subscribes fn to lines updated by UpdateIngredient.
func (e *DishEditor) OnIngredientChanged(fn domain.Observer[Ingredient]) (cancel func()) {
	return e.changedIngredient.Subscribe(fn)
}

// AddIngredient appends a line for ingredientID. The server picks the initial quantity and unit.
func (e *DishEditor) AddIngredient(ctx context.Context, ingredientID id.ID) (Ingredient, error) {
	created, err := domain.Create[Ingredient](ctx, e.requester, IngredientsPath, AddIngredientParams{
		MealDishID:   e.ID(),
		IngredientID: ingredientID,
	})
	if err != nil {
		return Ingredient{}, fmt.Errorf("add ingredient %s to meal dish %s: %w", ingredientID, e.ID(), err)
	}

	e.mu.Lock()
	e.data.Ingredients = append(slices.Clone(e.data.Ingredients), created)
	delivery := e.newIngredient.Snapshot()
	e.mu.Unlock()

	delivery.Deliver(created)
	return created, nil
}

// RemoveIngredient deletes one line.
func (e *DishEditor) RemoveIngredient(ctx context.Context, lineID id.ID) error {
	line, ok := e.line(lineID)
	if !ok {
		return apperror.NewNotFound(IngredientEntityName, lineID)
	}

	path := domain.Path(IngredientsPath, lineID)
	if err := domain.Send(ctx, e.requester, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("remove %s: %w", IngredientEntityName, err)
	}

	e.mu.Lock()
	e.data.Ingredients = slices.DeleteFunc(slices.Clone(e.data.Ingredients), func(i Ingredient) bool {
		return i.ID == lineID
	})
	delivery := e.removedIngredient.Snapshot()
	e.mu.Unlock()

	delivery.Deliver(line)
	return nil
}

// UpdateIngredient sets the quantity and unit of one line.
func (e *DishEditor) UpdateIngredient(ctx context.Context, lineID id.ID, quantity types.Amount, unit ingredient.Unit) (Ingredient, error) {
	params := UpdateIngredientParams{Quantity: quantity, Unit: unit}
	if err := params.Validate(ctx); err != nil {
		return Ingredient{}, err
	}
	if _, ok := e.line(lineID); !ok {
		return Ingredient{}, apperror.NewNotFound(IngredientEntityName, lineID)
	}

	path := domain.Path(IngredientsPath, lineID)
	if err := domain.Send(ctx, e.requester, http.MethodPut, path, params, nil); err != nil {
		return Ingredient{}, fmt.Errorf("update %s: %w", IngredientEntityName, err)
	}

	var (
		updated Ingredient
		found   bool
	)
	e.mu.Lock()
	lines := slices.Clone(e.data.Ingredients)
	for n := range lines {
		if lines[n].ID == lineID {
			lines[n].Quantity = quantity
			lines[n].Unit = unit
			updated = lines[n]
			found = true
		}
	}
	e.data.Ingredients = lines
	delivery := e.changedIngredient.Snapshot()
	e.mu.Unlock()

	// removed while the request was in flight
	if !found {
		return Ingredient{}, apperror.NewNotFound(IngredientEntityName, lineID)
	}
	delivery.Deliver(updated)
	return updated, nil
}

// CopyFrom duplicates every line of another meal dish onto this one. The created lines are
// appended and announced one by one in the order the server returns them.
func (e *DishEditor) CopyFrom(ctx context.Context, sourceMealDishID id.ID) ([]Ingredient, error) {
	self := e.ID()
	if sourceMealDishID == self {
		return nil, apperror.NewValidation("cannot copy a meal dish onto itself").WithDetail("id", self)
	}

	var created []Ingredient
	path := domain.Path(DishesPath, self, "copy_from")
	if err := domain.Send(ctx, e.requester, http.MethodPut, path, CopyFromParams{MealDishID: sourceMealDishID}, &created); err != nil {
		return nil, fmt.Errorf("copy meal dish %s onto %s: %w", sourceMealDishID, self, err)
	}

	e.mu.Lock()
	e.data.Ingredients = append(slices.Clone(e.data.Ingredients), created...)
	delivery := e.newIngredient.Snapshot()
	e.mu.Unlock()

	delivery.Deliver(created...)
	return created, nil
}

func (e *DishEditor) line(lineID id.ID) (Ingredient, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, i := range e.data.Ingredients {
		if i.ID == lineID {
			return i, true
		}
	}
	return Ingredient{}, false
}
