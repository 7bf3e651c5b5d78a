package ingredient

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain"
)

// Editor wraps one ingredient with its nutrient values.
type Editor struct {
	*domain.Record[Ingredient]

	newProperty     domain.Observers[Property]
	changedProperty domain.Observers[Property]
}

// NewEditor creates an unloaded editor for ingredientID.
func NewEditor(r domain.Requester, ingredientID id.ID) *Editor {
	return &Editor{
		Record: domain.NewRecord[Ingredient](domain.RecordConfig{
			Requester:  r,
			EntityName: EntityName,
			Collection: Path,
			ID:         ingredientID,
		}),
	}
}

// OnNewProperty subscribes fn to values replayed by Load and added by AddProperty.
func (e *Editor) OnNewProperty(fn domain.Observer[Property]) (cancel func()) {
	e.View(func(Ingredient) { cancel = e.newProperty.Subscribe(fn) })
	return cancel
}

// OnPropertyChanged subscribes fn to values updated by SetPropertyValue.
func (e *Editor) OnPropertyChanged(fn domain.Observer[Property]) (cancel func()) {
	e.View(func(Ingredient) { cancel = e.changedProperty.Subscribe(fn) })
	return cancel
}

// Load fetches the ingredient and replays its nutrient values.
func (e *Editor) Load(ctx context.Context) error {
	data, err := e.Fetch(ctx)
	if err != nil {
		return err
	}

	var delivery domain.Delivery[Property]
	e.Update(func(Ingredient) Ingredient {
		delivery = e.newProperty.Snapshot()
		return data
	})
	delivery.Deliver(data.Properties...)
	return nil
}

// Modify updates the set fields, then re-reads the ingredient.
func (e *Editor) Modify(ctx context.Context, params ModifyParams) error {
	return e.Put(ctx, params)
}

// SetServingSizes sets all three serving sizes at once.
func (e *Editor) SetServingSizes(ctx context.Context, g, ml, pieces types.Amount) error {
	return e.Modify(ctx, ModifyParams{
		ServingSizeG:      &g,
		ServingSizeMl:     &ml,
		ServingSizePieces: &pieces,
	})
}

// MarkComplete sets the fully-entered flag.
func (e *Editor) MarkComplete(ctx context.Context, complete bool) error {
	return e.Modify(ctx, ModifyParams{FullyEntered: &complete})
}

// AddProperty assigns a nutrient to the ingredient. The new value starts at zero.
func (e *Editor) AddProperty(ctx context.Context, propertyID id.ID) (Property, error) {
	created, err := domain.Create[Property](ctx, e.Requester(), PropertiesPath, AddPropertyParams{
		IngredientID: e.ID(),
		PropertyID:   propertyID,
	})
	if err != nil {
		return Property{}, fmt.Errorf("add property %s to ingredient %s: %w", propertyID, e.ID(), err)
	}

	var delivery domain.Delivery[Property]
	e.Update(func(i Ingredient) Ingredient {
		i.Properties = append(slices.Clone(i.Properties), created)
		delivery = e.newProperty.Snapshot()
		return i
	})
	delivery.Deliver(created)
	return created, nil
}

// SetPropertyValue stores a new per-serving value for one assigned nutrient.
func (e *Editor) SetPropertyValue(ctx context.Context, ingredientPropertyID id.ID, value types.Amount) (Property, error) {
	var found bool
	e.View(func(i Ingredient) {
		found = slices.ContainsFunc(i.Properties, func(p Property) bool { return p.ID == ingredientPropertyID })
	})
	if !found {
		return Property{}, apperror.NewNotFound(PropertyEntityName, ingredientPropertyID)
	}

	path := domain.Path(PropertiesPath, ingredientPropertyID)
	if err := domain.Send(ctx, e.Requester(), http.MethodPut, path, SetValueParams{Value: value}, nil); err != nil {
		return Property{}, fmt.Errorf("set %s value: %w", PropertyEntityName, err)
	}

	var (
		updated  Property
		delivery domain.Delivery[Property]
	)
	e.Update(func(i Ingredient) Ingredient {
		props := slices.Clone(i.Properties)
		for n := range props {
			if props[n].ID == ingredientPropertyID {
				props[n].Value = value
				updated = props[n]
			}
		}
		i.Properties = props
		delivery = e.changedProperty.Snapshot()
		return i
	})
	delivery.Deliver(updated)
	return updated, nil
}
