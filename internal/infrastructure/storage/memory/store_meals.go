package memory

import (
	"cmp"
	"slices"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain/catalogs/category"
	"feedme/internal/domain/catalogs/dish"
	"feedme/internal/domain/catalogs/ingredient"
	"feedme/internal/domain/catalogs/property"
	"feedme/internal/domain/documents/meal"
)

// ---------------------------------------------------------------------------
// Meals
// ---------------------------------------------------------------------------

func (s *Store) Meals() []meal.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]meal.Meal, len(s.meals))
	for i, m := range s.meals {
		out[i] = s.render(m)
	}
	return out
}

func (s *Store) Meal(mealID id.ID) (meal.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.meals, mealID)
	if i < 0 {
		return meal.Meal{}, apperror.NewNotFound(meal.EntityName, mealID)
	}
	return s.render(s.meals[i]), nil
}

func (s *Store) CreateMeal(p meal.CreateParams) meal.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := meal.Meal{ID: s.newID(), TimestampUTC: p.TimestampUTC, TzOffsMin: p.TzOffsMin}
	s.meals = append(s.meals, created)
	return s.render(created)
}

func (s *Store) DeleteMeal(mealID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.meals, mealID)
	if i < 0 {
		return apperror.NewNotFound(meal.EntityName, mealID)
	}
	s.meals = slices.Delete(s.meals, i, i+1)
	return nil
}

func (s *Store) AddMealDish(p meal.AddDishParams) (meal.MealDish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mi := indexOf(s.meals, p.MealID)
	if mi < 0 {
		return meal.MealDish{}, apperror.NewNotFound(meal.EntityName, p.MealID)
	}
	if indexOf(s.dishes, p.DishID) < 0 {
		return meal.MealDish{}, apperror.NewNotFound(dish.EntityName, p.DishID)
	}
	created := meal.MealDish{ID: s.newID(), DishID: p.DishID, Ingredients: []meal.Ingredient{}}
	s.meals[mi].Dishes = append(s.meals[mi].Dishes, created)
	return created, nil
}

func (s *Store) DeleteMealDish(mealDishID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mi, di, ok := s.findMealDish(mealDishID)
	if !ok {
		return apperror.NewNotFound(meal.DishEntityName, mealDishID)
	}
	s.meals[mi].Dishes = slices.Delete(s.meals[mi].Dishes, di, di+1)
	return nil
}

// CopyMealDish appends a copy of every ingredient line of source to target and returns the
// created lines in order.
func (s *Store) CopyMealDish(targetID, sourceID id.ID) ([]meal.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tm, td, ok := s.findMealDish(targetID)
	if !ok {
		return nil, apperror.NewNotFound(meal.DishEntityName, targetID)
	}
	sm, sd, ok := s.findMealDish(sourceID)
	if !ok {
		return nil, apperror.NewNotFound(meal.DishEntityName, sourceID)
	}

	source := s.meals[sm].Dishes[sd].Ingredients
	created := make([]meal.Ingredient, 0, len(source))
	for _, line := range source {
		line.ID = s.newID()
		created = append(created, line)
	}
	target := &s.meals[tm].Dishes[td]
	target.Ingredients = append(target.Ingredients, created...)
	return created, nil
}

// AddMealDishIngredient adds a zero-quantity line measured in the first unit the ingredient
// can use.
func (s *Store) AddMealDishIngredient(p meal.AddIngredientParams) (meal.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mi, di, ok := s.findMealDish(p.MealDishID)
	if !ok {
		return meal.Ingredient{}, apperror.NewNotFound(meal.DishEntityName, p.MealDishID)
	}
	ii := indexOf(s.ingredients, p.IngredientID)
	if ii < 0 {
		return meal.Ingredient{}, apperror.NewNotFound(ingredient.EntityName, p.IngredientID)
	}

	unit := ingredient.UnitMass
	if usable := s.ingredients[ii].UsableUnits(); len(usable) > 0 {
		unit = usable[0]
	}
	created := meal.Ingredient{ID: s.newID(), IngredientID: p.IngredientID, Unit: unit}
	d := &s.meals[mi].Dishes[di]
	d.Ingredients = append(d.Ingredients, created)
	return created, nil
}

func (s *Store) UpdateMealDishIngredient(lineID id.ID, p meal.UpdateIngredientParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.findLine(lineID)
	if line == nil {
		return apperror.NewNotFound(meal.IngredientEntityName, lineID)
	}
	line.Quantity = p.Quantity
	line.Unit = p.Unit
	return nil
}

func (s *Store) DeleteMealDishIngredient(lineID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for mi := range s.meals {
		for di := range s.meals[mi].Dishes {
			d := &s.meals[mi].Dishes[di]
			if li := indexOf(d.Ingredients, lineID); li >= 0 {
				d.Ingredients = slices.Delete(d.Ingredients, li, li+1)
				return nil
			}
		}
	}
	return apperror.NewNotFound(meal.IngredientEntityName, lineID)
}

func (s *Store) findMealDish(mealDishID id.ID) (int, int, bool) {
	for mi, m := range s.meals {
		if di := indexOf(m.Dishes, mealDishID); di >= 0 {
			return mi, di, true
		}
	}
	return 0, 0, false
}

func (s *Store) findLine(lineID id.ID) *meal.Ingredient {
	for mi := range s.meals {
		for di := range s.meals[mi].Dishes {
			lines := s.meals[mi].Dishes[di].Ingredients
			if li := indexOf(lines, lineID); li >= 0 {
				return &lines[li]
			}
		}
	}
	return nil
}

// render deep-copies m and computes its nutrient summary. Each line contributes
// quantity / serving size times the per-serving value, counted for the property and every
// ancestor of it. The summary is complete when every ingredient is fully entered and
// measured in a usable unit.
func (s *Store) render(m meal.Meal) meal.Meal {
	out := m
	out.Dishes = make([]meal.MealDish, len(m.Dishes))
	totals := map[id.ID]types.Amount{}
	complete := true
	lookup := property.NewMapLookup(s.properties...)

	for i, d := range m.Dishes {
		d.Ingredients = slices.Clone(d.Ingredients)
		if d.Ingredients == nil {
			d.Ingredients = []meal.Ingredient{}
		}
		out.Dishes[i] = d

		for _, line := range d.Ingredients {
			ii := indexOf(s.ingredients, line.IngredientID)
			if ii < 0 {
				complete = false
				continue
			}
			ing := s.ingredients[ii]
			serving := ing.ServingSize(line.Unit)
			if !ing.FullyEntered || serving.IsZero() {
				complete = false
			}
			if serving.IsZero() {
				continue
			}
			factor := line.Quantity.Float64() / serving.Float64()
			for _, v := range ing.Properties {
				for _, pid := range s.ancestry(v.PropertyID, lookup) {
					totals[pid] += types.Amount(factor * v.Value.Float64())
				}
			}
		}
	}

	out.Summary = make([]property.Value, 0, len(totals))
	for pid, v := range totals {
		out.Summary = append(out.Summary, property.Value{PropertyID: pid, Value: v})
	}
	slices.SortFunc(out.Summary, func(a, b property.Value) int { return cmp.Compare(a.PropertyID, b.PropertyID) })
	out.SummaryComplete = complete
	return out
}

func (s *Store) ancestry(propertyID id.ID, lookup property.Lookup) []id.ID {
	p, ok := lookup.GetByID(propertyID)
	if !ok {
		return []id.ID{propertyID}
	}
	key, err := property.SortKey(p, lookup)
	if err != nil {
		return []id.ID{propertyID}
	}
	return key
}

// ---------------------------------------------------------------------------
// Ingredient categories
// ---------------------------------------------------------------------------

// Categories lists every category without its mappings.
func (s *Store) Categories() []category.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]category.Category, len(s.categories))
	for i, c := range s.categories {
		out[i] = s.renderCategory(c)
		out[i].Mappings = nil
	}
	return out
}

func (s *Store) Category(categoryID id.ID) (category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.categories, categoryID)
	if i < 0 {
		return category.Category{}, apperror.NewNotFound(category.EntityName, categoryID)
	}
	return s.renderCategory(s.categories[i]), nil
}

// CreateCategory creates a named category, or one seeded from an ingredient that takes the
// ingredient's name and maps it.
func (s *Store) CreateCategory(p category.CreateParams) (category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := storedCategory{Category: category.Category{Mappings: []category.Mapping{}}}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.IngredientID != nil {
		ii := indexOf(s.ingredients, *p.IngredientID)
		if ii < 0 {
			return category.Category{}, apperror.NewNotFound(ingredient.EntityName, *p.IngredientID)
		}
		if c.Name == "" {
			c.Name = s.ingredients[ii].Name
		}
	}
	c.ID = s.newID()
	if p.IngredientID != nil {
		c.Mappings = append(c.Mappings, category.Mapping{ID: s.newID(), IngredientID: *p.IngredientID, CategoryID: c.ID})
	}
	s.categories = append(s.categories, c)
	return s.renderCategory(c), nil
}

func (s *Store) ModifyCategory(categoryID id.ID, p category.ModifyParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.categories, categoryID)
	if i < 0 {
		return apperror.NewNotFound(category.EntityName, categoryID)
	}
	if p.Name != nil {
		s.categories[i].Name = *p.Name
	}
	if p.FullyEntered != nil {
		v := *p.FullyEntered
		s.categories[i].fullyEntered = &v
	}
	return nil
}

func (s *Store) AddCategoryMapping(p category.AddMappingParams) (category.Mapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ci := indexOf(s.categories, p.CategoryID)
	if ci < 0 {
		return category.Mapping{}, apperror.NewNotFound(category.EntityName, p.CategoryID)
	}
	if indexOf(s.ingredients, p.IngredientID) < 0 {
		return category.Mapping{}, apperror.NewNotFound(ingredient.EntityName, p.IngredientID)
	}
	if s.categories[ci].Contains(p.IngredientID) {
		return category.Mapping{}, apperror.NewValidation("ingredient already in category").
			WithDetail("ingredient_id", p.IngredientID)
	}
	created := category.Mapping{ID: s.newID(), IngredientID: p.IngredientID, CategoryID: p.CategoryID}
	s.categories[ci].Mappings = append(s.categories[ci].Mappings, created)
	return created, nil
}

func (s *Store) DeleteCategoryMapping(mappingID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ci := range s.categories {
		c := &s.categories[ci]
		if mi := indexOf(c.Mappings, mappingID); mi >= 0 {
			c.Mappings = slices.Delete(c.Mappings, mi, mi+1)
			return nil
		}
	}
	return apperror.NewNotFound(category.MappingEntityName, mappingID)
}

// mappingsOf lists the category mappings of an ingredient. Callers hold s.mu.
func (s *Store) mappingsOf(ingredientID id.ID) []category.Mapping {
	out := []category.Mapping{}
	for _, c := range s.categories {
		for _, m := range c.Mappings {
			if m.IngredientID == ingredientID {
				out = append(out, m)
			}
		}
	}
	return out
}

// renderCategory copies c and derives FullyEntered from its ingredients unless overridden.
func (s *Store) renderCategory(c storedCategory) category.Category {
	out := c.Category
	out.Mappings = slices.Clone(c.Mappings)
	if c.fullyEntered != nil {
		out.FullyEntered = *c.fullyEntered
		return out
	}
	out.FullyEntered = true
	for _, m := range c.Mappings {
		if ii := indexOf(s.ingredients, m.IngredientID); ii < 0 || !s.ingredients[ii].FullyEntered {
			out.FullyEntered = false
			break
		}
	}
	return out
}
