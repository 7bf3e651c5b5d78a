// Package ingredient provides the Ingredient catalog: base foods with serving sizes and
// per-serving nutrient values.
package ingredient

import (
	"context"
	"strings"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain"
	"feedme/internal/domain/catalogs/category"
	"feedme/pkg/logger"
)

const (
	// Path is the collection resource.
	Path = "/ingredients"

	// PropertiesPath is the resource for nutrient values of ingredients.
	PropertiesPath = "/ingredient_properties"

	EntityName         = "ingredient"
	PropertyEntityName = "ingredient property"
)

// Ingredient is a base food item. The list endpoint leaves Properties empty; fetch the
// single record to get them.
type Ingredient struct {
	ID   id.ID  `json:"id"`
	Name string `json:"name"`

	// Serving sizes; zero means the unit cannot be used for this ingredient
	ServingSizeG      types.Amount `json:"serving_size_g"`
	ServingSizeMl     types.Amount `json:"serving_size_ml"`
	ServingSizePieces types.Amount `json:"serving_size_pieces"`

	// FullyEntered is set once every nutrient value has been entered
	FullyEntered bool `json:"fully_entered"`

	Properties       []Property         `json:"properties,omitempty"`
	CategoryMappings []category.Mapping `json:"category_mappings"`
}

// GetID implements domain.Entity.
func (i Ingredient) GetID() id.ID { return i.ID }

// PropertyValue returns the per-serving value of a nutrient, if assigned.
func (i Ingredient) PropertyValue(propertyID id.ID) (types.Amount, bool) {
	for _, p := range i.Properties {
		if p.PropertyID == propertyID {
			return p.Value, true
		}
	}
	return 0, false
}

// Property is one assigned nutrient value of an ingredient.
type Property struct {
	ID           id.ID        `json:"id"`
	IngredientID id.ID        `json:"ingredient_id"`
	PropertyID   id.ID        `json:"property_id"`
	Value        types.Amount `json:"value"`
}

// GetID implements domain.Entity.
func (p Property) GetID() id.ID { return p.ID }

// CreateParams is the body of PUT /ingredients.
type CreateParams struct {
	Name string `json:"name"`
}

// Validate implements domain.Validatable.
func (p CreateParams) Validate(_ context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("ingredient name is required")
	}
	return nil
}

// ModifyParams is the body of PUT /ingredients/{id}. Only the set fields are sent.
type ModifyParams struct {
	Name              *string       `json:"name,omitempty"`
	ServingSizeG      *types.Amount `json:"serving_size_g,omitempty"`
	ServingSizeMl     *types.Amount `json:"serving_size_ml,omitempty"`
	ServingSizePieces *types.Amount `json:"serving_size_pieces,omitempty"`
	FullyEntered      *bool         `json:"fully_entered,omitempty"`
}

// Validate implements domain.Validatable.
func (p ModifyParams) Validate(_ context.Context) error {
	if p.Name == nil && p.ServingSizeG == nil && p.ServingSizeMl == nil &&
		p.ServingSizePieces == nil && p.FullyEntered == nil {
		return apperror.NewValidation("nothing to modify")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return apperror.NewValidation("ingredient name cannot be empty")
	}
	for field, v := range map[string]*types.Amount{
		"serving_size_g":      p.ServingSizeG,
		"serving_size_ml":     p.ServingSizeMl,
		"serving_size_pieces": p.ServingSizePieces,
	} {
		if v != nil && *v < 0 {
			return apperror.NewValidation("serving size cannot be negative").WithDetail("field", field)
		}
	}
	return nil
}

// AddPropertyParams is the body of PUT /ingredient_properties.
type AddPropertyParams struct {
	IngredientID id.ID `json:"ingredient_id"`
	PropertyID   id.ID `json:"property_id"`
}

// SetValueParams is the body of PUT /ingredient_properties/{id}.
type SetValueParams struct {
	Value types.Amount `json:"value"`
}

// Collection is the cached ingredient list.
type Collection = domain.RemoteCollection[Ingredient]

// NewCollection creates the ingredient cache.
func NewCollection(r domain.Requester, log *logger.Logger) *Collection {
	return domain.NewRemoteCollection(domain.CollectionConfig[Ingredient]{
		Requester:  r,
		Path:       Path,
		EntityName: EntityName,
		Logger:     log,
	})
}
