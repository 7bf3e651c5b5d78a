// Package memory is the in-memory storage behind the development backend: every entity of the
// feedme REST surface, with meal summaries computed on read.
package memory

import (
	"slices"
	"sync"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain/catalogs/category"
	"feedme/internal/domain/catalogs/dish"
	"feedme/internal/domain/catalogs/ingredient"
	"feedme/internal/domain/catalogs/property"
	"feedme/internal/domain/documents/meal"
)

// Store holds every entity in memory. Ids come from one sequence shared by all entity types.
type Store struct {
	mu     sync.Mutex
	nextID id.ID

	properties  []property.Property
	ingredients []ingredient.Ingredient
	dishes      []dish.Dish
	meals       []meal.Meal
	categories  []storedCategory
}

type storedCategory struct {
	category.Category

	// fullyEntered overrides the value derived from the mapped ingredients once set
	fullyEntered *bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) newID() id.ID {
	s.nextID++
	return s.nextID
}

func indexOf[T interface{ GetID() id.ID }](items []T, entityID id.ID) int {
	return slices.IndexFunc(items, func(item T) bool { return item.GetID() == entityID })
}

// ---------------------------------------------------------------------------
// Properties
// ---------------------------------------------------------------------------

func (s *Store) Properties() []property.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.properties)
}

func (s *Store) Property(propertyID id.ID) (property.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.properties, propertyID)
	if i < 0 {
		return property.Property{}, apperror.NewNotFound(property.EntityName, propertyID)
	}
	return s.properties[i], nil
}

func (s *Store) CreateProperty(p property.CreateParams) (property.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ParentID != nil && indexOf(s.properties, *p.ParentID) < 0 {
		return property.Property{}, apperror.NewNotFound(property.EntityName, *p.ParentID)
	}
	created := property.Property{ID: s.newID(), Name: p.Name, ParentID: p.ParentID}
	s.properties = append(s.properties, created)
	return created, nil
}

func (s *Store) ModifyProperty(propertyID id.ID, p property.ModifyParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.properties, propertyID)
	if i < 0 {
		return apperror.NewNotFound(property.EntityName, propertyID)
	}

	next := s.properties[i]
	if p.Name != "" {
		next.Name = p.Name
	}
	switch {
	case p.ClearParent:
		next.ParentID = nil
	case p.ParentID != nil:
		next.ParentID = p.ParentID
	}

	// Reject a reparenting that would close a loop.
	candidate := slices.Clone(s.properties)
	candidate[i] = next
	if _, err := property.Depth(next, property.NewMapLookup(candidate...)); err != nil {
		return err
	}
	s.properties[i] = next
	return nil
}

// ---------------------------------------------------------------------------
// Ingredients
// ---------------------------------------------------------------------------

// Ingredients lists every ingredient without its nutrient values.
func (s *Store) Ingredients() []ingredient.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ingredient.Ingredient, len(s.ingredients))
	for i, ing := range s.ingredients {
		ing.Properties = nil
		ing.CategoryMappings = s.mappingsOf(ing.ID)
		out[i] = ing
	}
	return out
}

func (s *Store) Ingredient(ingredientID id.ID) (ingredient.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.ingredients, ingredientID)
	if i < 0 {
		return ingredient.Ingredient{}, apperror.NewNotFound(ingredient.EntityName, ingredientID)
	}
	ing := s.ingredients[i]
	ing.Properties = slices.Clone(ing.Properties)
	if ing.Properties == nil {
		ing.Properties = []ingredient.Property{}
	}
	ing.CategoryMappings = s.mappingsOf(ingredientID)
	return ing, nil
}

func (s *Store) CreateIngredient(p ingredient.CreateParams) ingredient.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := ingredient.Ingredient{ID: s.newID(), Name: p.Name}
	s.ingredients = append(s.ingredients, created)
	created.CategoryMappings = []category.Mapping{}
	return created
}

func (s *Store) ModifyIngredient(ingredientID id.ID, p ingredient.ModifyParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.ingredients, ingredientID)
	if i < 0 {
		return apperror.NewNotFound(ingredient.EntityName, ingredientID)
	}
	ing := &s.ingredients[i]
	if p.Name != nil {
		ing.Name = *p.Name
	}
	if p.ServingSizeG != nil {
		ing.ServingSizeG = *p.ServingSizeG
	}
	if p.ServingSizeMl != nil {
		ing.ServingSizeMl = *p.ServingSizeMl
	}
	if p.ServingSizePieces != nil {
		ing.ServingSizePieces = *p.ServingSizePieces
	}
	if p.FullyEntered != nil {
		ing.FullyEntered = *p.FullyEntered
	}
	return nil
}

func (s *Store) AddIngredientProperty(p ingredient.AddPropertyParams) (ingredient.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.ingredients, p.IngredientID)
	if i < 0 {
		return ingredient.Property{}, apperror.NewNotFound(ingredient.EntityName, p.IngredientID)
	}
	if indexOf(s.properties, p.PropertyID) < 0 {
		return ingredient.Property{}, apperror.NewNotFound(property.EntityName, p.PropertyID)
	}
	if _, ok := s.ingredients[i].PropertyValue(p.PropertyID); ok {
		return ingredient.Property{}, apperror.NewValidation("property already assigned").
			WithDetail("property_id", p.PropertyID)
	}

	created := ingredient.Property{ID: s.newID(), IngredientID: p.IngredientID, PropertyID: p.PropertyID}
	s.ingredients[i].Properties = append(slices.Clone(s.ingredients[i].Properties), created)
	return created, nil
}

func (s *Store) SetIngredientPropertyValue(ingredientPropertyID id.ID, value types.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.ingredients {
		props := s.ingredients[i].Properties
		if j := indexOf(props, ingredientPropertyID); j >= 0 {
			props = slices.Clone(props)
			props[j].Value = value
			s.ingredients[i].Properties = props
			return nil
		}
	}
	return apperror.NewNotFound(ingredient.PropertyEntityName, ingredientPropertyID)
}

// ---------------------------------------------------------------------------
// Dishes
// ---------------------------------------------------------------------------

func (s *Store) Dishes() []dish.Dish {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.dishes)
}

func (s *Store) Dish(dishID id.ID) (dish.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.dishes, dishID)
	if i < 0 {
		return dish.Dish{}, apperror.NewNotFound(dish.EntityName, dishID)
	}
	return s.dishes[i], nil
}

func (s *Store) CreateDish(p dish.CreateParams) dish.Dish {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := dish.Dish{ID: s.newID(), Name: p.Name}
	s.dishes = append(s.dishes, created)
	return created
}

func (s *Store) ModifyDish(dishID id.ID, p dish.ModifyParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.dishes, dishID)
	if i < 0 {
		return apperror.NewNotFound(dish.EntityName, dishID)
	}
	s.dishes[i].Name = p.Name
	return nil
}
