// Package category provides ingredient categories: groups of interchangeable ingredients that
// are not yet individually classified.
package category

import (
	"context"
	"strings"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/domain"
	"feedme/pkg/logger"
)

const (
	// Path is the collection resource.
	Path = "/ingredient_categories"

	// MappingsPath is the resource for ingredient-to-category mappings.
	MappingsPath = "/ingredient_category_mappings"

	EntityName        = "ingredient category"
	MappingEntityName = "ingredient category mapping"
)

// Category groups ingredients.
type Category struct {
	ID           id.ID     `json:"id"`
	Name         string    `json:"name"`
	FullyEntered bool      `json:"fully_entered"`
	Mappings     []Mapping `json:"mappings"`
}

// GetID implements domain.Entity.
func (c Category) GetID() id.ID { return c.ID }

// Mapping links an ingredient to a category. Seen from a category the CategoryID is implied
// and may be absent from the payload.
type Mapping struct {
	ID           id.ID `json:"id"`
	IngredientID id.ID `json:"ingredient_id"`
	CategoryID   id.ID `json:"ingredient_category_id,omitempty"`
}

// GetID implements domain.Entity.
func (m Mapping) GetID() id.ID { return m.ID }

// Contains reports whether ingredientID is mapped to the category.
func (c Category) Contains(ingredientID id.ID) bool {
	for _, m := range c.Mappings {
		if m.IngredientID == ingredientID {
			return true
		}
	}
	return false
}

// CreateParams is the body of PUT /ingredient_categories. A category is created either by
// name or seeded from an ingredient, in which case the server names it after the ingredient
// and maps the ingredient into it.
type CreateParams struct {
	Name         *string `json:"name,omitempty"`
	IngredientID *id.ID  `json:"ingredient_id,omitempty"`
}

// Validate implements domain.Validatable.
func (p CreateParams) Validate(_ context.Context) error {
	hasName := p.Name != nil && strings.TrimSpace(*p.Name) != ""
	if !hasName && p.IngredientID == nil {
		return apperror.NewValidation("category needs a name or a seed ingredient")
	}
	return nil
}

// ModifyParams is the body of PUT /ingredient_categories/{id}.
type ModifyParams struct {
	Name         *string `json:"name,omitempty"`
	FullyEntered *bool   `json:"fully_entered,omitempty"`
}

// Validate implements domain.Validatable.
func (p ModifyParams) Validate(_ context.Context) error {
	if p.Name == nil && p.FullyEntered == nil {
		return apperror.NewValidation("nothing to modify")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return apperror.NewValidation("category name cannot be empty")
	}
	return nil
}

// AddMappingParams is the body of PUT /ingredient_category_mappings.
type AddMappingParams struct {
	IngredientID id.ID `json:"ingredient_id"`
	CategoryID   id.ID `json:"category_id"`
}

// Collection is the cached category list.
type Collection = domain.RemoteCollection[Category]

// NewCollection creates the category cache.
func NewCollection(r domain.Requester, log *logger.Logger) *Collection {
	return domain.NewRemoteCollection(domain.CollectionConfig[Category]{
		Requester:  r,
		Path:       Path,
		EntityName: EntityName,
		Logger:     log,
	})
}
