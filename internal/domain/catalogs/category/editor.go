package category

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/domain"
)

// Editor wraps one category and its mappings.
type Editor struct {
	*domain.Record[Category]

	newMapping     domain.Observers[Mapping]
	removedMapping domain.Observers[Mapping]
}

// NewEditor creates an unloaded editor for categoryID.
func NewEditor(r domain.Requester, categoryID id.ID) *Editor {
	return &Editor{
		Record: domain.NewRecord[Category](domain.RecordConfig{
			Requester:  r,
			EntityName: EntityName,
			Collection: Path,
			ID:         categoryID,
		}),
	}
}

// OnNewMapping subscribes fn to mappings replayed by Load and added by AddIngredient.
func (e *Editor) OnNewMapping(fn domain.Observer[Mapping]) (cancel func()) {
	e.View(func(Category) { cancel = e.newMapping.Subscribe(fn) })
	return cancel
}

// OnMappingRemoved subscribes fn to mappings deleted by DeleteMapping.
func (e *Editor) OnMappingRemoved(fn domain.Observer[Mapping]) (cancel func()) {
	e.View(func(Category) { cancel = e.removedMapping.Subscribe(fn) })
	return cancel
}

// Load fetches the category and replays its mappings.
func (e *Editor) Load(ctx context.Context) error {
	data, err := e.Fetch(ctx)
	if err != nil {
		return err
	}

	var delivery domain.Delivery[Mapping]
	e.Update(func(Category) Category {
		delivery = e.newMapping.Snapshot()
		return data
	})
	delivery.Deliver(data.Mappings...)
	return nil
}

// Modify changes the name or completeness, then re-reads the category.
func (e *Editor) Modify(ctx context.Context, params ModifyParams) error {
	return e.Put(ctx, params)
}

// Rename is Modify for the name only.
func (e *Editor) Rename(ctx context.Context, name string) error {
	return e.Modify(ctx, ModifyParams{Name: &name})
}

// AddIngredient maps ingredientID into the category.
func (e *Editor) AddIngredient(ctx context.Context, ingredientID id.ID) (Mapping, error) {
	created, err := domain.Create[Mapping](ctx, e.Requester(), MappingsPath, AddMappingParams{
		IngredientID: ingredientID,
		CategoryID:   e.ID(),
	})
	if err != nil {
		return Mapping{}, fmt.Errorf("add ingredient %s to category %s: %w", ingredientID, e.ID(), err)
	}
	if id.IsNil(created.CategoryID) {
		created.CategoryID = e.ID()
	}

	var delivery domain.Delivery[Mapping]
	e.Update(func(c Category) Category {
		c.Mappings = append(slices.Clone(c.Mappings), created)
		delivery = e.newMapping.Snapshot()
		return c
	})
	delivery.Deliver(created)
	return created, nil
}

// DeleteMapping removes one mapping of this category.
func (e *Editor) DeleteMapping(ctx context.Context, mappingID id.ID) error {
	var (
		mapping Mapping
		found   bool
	)
	e.View(func(c Category) {
		mapping, found = findMapping(c.Mappings, mappingID)
	})
	if !found {
		return apperror.NewNotFound(MappingEntityName, mappingID)
	}

	path := domain.Path(MappingsPath, mappingID)
	if err := domain.Send(ctx, e.Requester(), http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", MappingEntityName, err)
	}

	var delivery domain.Delivery[Mapping]
	e.Update(func(c Category) Category {
		c.Mappings = slices.DeleteFunc(slices.Clone(c.Mappings), func(m Mapping) bool {
			return m.ID == mappingID
		})
		delivery = e.removedMapping.Snapshot()
		return c
	})
	delivery.Deliver(mapping)
	return nil
}

func findMapping(mappings []Mapping, mappingID id.ID) (Mapping, bool) {
	for _, m := range mappings {
		if m.ID == mappingID {
			return m, true
		}
	}
	return Mapping{}, false
}
