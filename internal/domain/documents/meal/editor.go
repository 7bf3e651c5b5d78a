package meal

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/domain"
)

// Editor wraps one meal. Each of its dishes is handled by a DishEditor that lives as long as
// the meal editor, across refreshes.
type Editor struct {
	record *domain.Record[Meal]

	mu     sync.RWMutex
	dishes []*DishEditor

	newDish     domain.Observers[*DishEditor]
	removedDish domain.Observers[*DishEditor]
}

// NewEditor creates an unloaded editor for mealID.
func NewEditor(r domain.Requester, mealID id.ID) *Editor {
	return &Editor{
		record: domain.NewRecord[Meal](domain.RecordConfig{
			Requester:  r,
			EntityName: EntityName,
			Collection: Path,
			ID:         mealID,
		}),
	}
}

// ID returns the meal id.
func (e *Editor) ID() id.ID { return e.record.ID() }

// Loaded reports whether the meal has been fetched.
func (e *Editor) Loaded() bool { return e.record.Loaded() }

// OnNewDish subscribes fn to dishes replayed by Load and added by AddDish.
func (e *Editor) OnNewDish(fn domain.Observer[*DishEditor]) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.newDish.Subscribe(fn)
}

// OnDishRemoved subscribes fn to dishes deleted by DeleteDish or found gone by Refresh.
func (e *Editor) OnDishRemoved(fn domain.Observer[*DishEditor]) (cancel func()) {
	return e.removedDish.Subscribe(fn)
}

// Load fetches the meal and replays its dishes.
func (e *Editor) Load(ctx context.Context) error {
	editors, err := e.reload(ctx)
	if err != nil {
		return err
	}
	editors.delivery.Deliver(editors.dishes...)
	return nil
}

// Refresh re-reads the meal, typically for a new summary after an ingredient changed.
// Dish editors are kept for dishes that still exist. Dishes that appeared on the server are
// announced through OnNewDish and dishes that vanished through OnDishRemoved; the others are
// not replayed.
func (e *Editor) Refresh(ctx context.Context) error {
	editors, err := e.reload(ctx)
	if err != nil {
		return err
	}
	editors.removed.Deliver(editors.dropped...)
	editors.delivery.Deliver(editors.added...)
	return nil
}

type reloaded struct {
	dishes   []*DishEditor
	added    []*DishEditor
	dropped  []*DishEditor
	delivery domain.Delivery[*DishEditor]
	removed  domain.Delivery[*DishEditor]
}

func (e *Editor) reload(ctx context.Context) (reloaded, error) {
	data, err := e.record.Fetch(ctx)
	if err != nil {
		return reloaded{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	byID := make(map[id.ID]*DishEditor, len(e.dishes))
	for _, d := range e.dishes {
		byID[d.ID()] = d
	}

	var out reloaded
	dishes := make([]*DishEditor, 0, len(data.Dishes))
	for _, md := range data.Dishes {
		if existing, ok := byID[md.ID]; ok {
			existing.replace(md)
			dishes = append(dishes, existing)
			delete(byID, md.ID)
			continue
		}
		created := newDishEditor(e.record.Requester(), md)
		dishes = append(dishes, created)
		out.added = append(out.added, created)
	}
	for _, d := range e.dishes {
		if _, gone := byID[d.ID()]; gone {
			out.dropped = append(out.dropped, d)
		}
	}

	e.dishes = dishes
	e.record.Update(func(Meal) Meal { return data })

	out.dishes = slices.Clone(dishes)
	out.delivery = e.newDish.Snapshot()
	out.removed = e.removedDish.Snapshot()
	return out, nil
}

// Data returns the meal with the dishes' current snapshots.
func (e *Editor) Data() Meal {
	e.mu.RLock()
	defer e.mu.RUnlock()

	m := e.record.Data()
	m.Dishes = make([]MealDish, len(e.dishes))
	for i, d := range e.dishes {
		m.Dishes[i] = d.Data()
	}
	return m
}

// Time returns the meal timestamp.
func (e *Editor) Time() time.Time { return e.record.Data().Time() }

// Date returns the meal's calendar day in loc.
func (e *Editor) Date(loc *time.Location) time.Time { return e.record.Data().Date(loc) }

// Dishes returns the dish editors in meal order.
func (e *Editor) Dishes() []*DishEditor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.dishes)
}

// Dish returns the editor for one meal dish.
func (e *Editor) Dish(mealDishID id.ID) (*DishEditor, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, d := range e.dishes {
		if d.ID() == mealDishID {
			return d, true
		}
	}
	return nil, false
}

// AddDish instantiates dishID in this meal.
func (e *Editor) AddDish(ctx context.Context, dishID id.ID) (*DishEditor, error) {
	created, err := domain.Create[MealDish](ctx, e.record.Requester(), DishesPath, AddDishParams{
		MealID: e.ID(),
		DishID: dishID,
	})
	if err != nil {
		return nil, fmt.Errorf("add dish %s to meal %s: %w", dishID, e.ID(), err)
	}

	d := newDishEditor(e.record.Requester(), created)

	e.mu.Lock()
	e.dishes = append(slices.Clone(e.dishes), d)
	delivery := e.newDish.Snapshot()
	e.mu.Unlock()

	delivery.Deliver(d)
	return d, nil
}

// DeleteDish removes one meal dish with all its ingredient lines.
func (e *Editor) DeleteDish(ctx context.Context, mealDishID id.ID) error {
	d, ok := e.Dish(mealDishID)
	if !ok {
		return apperror.NewNotFound(DishEntityName, mealDishID)
	}

	path := domain.Path(DishesPath, mealDishID)
	if err := domain.Send(ctx, e.record.Requester(), http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", DishEntityName, err)
	}

	e.mu.Lock()
	e.dishes = slices.DeleteFunc(slices.Clone(e.dishes), func(x *DishEditor) bool { return x == d })
	delivery := e.removedDish.Snapshot()
	e.mu.Unlock()

	delivery.Deliver(d)
	return nil
}

// DeleteMeal deletes the meal on the server. The editor should be discarded afterwards.
func (e *Editor) DeleteMeal(ctx context.Context) error {
	return e.record.Delete(ctx)
}
