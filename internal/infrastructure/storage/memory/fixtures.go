package memory

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain/catalogs/category"
	"feedme/internal/domain/catalogs/dish"
	"feedme/internal/domain/catalogs/ingredient"
	"feedme/internal/domain/catalogs/property"
	"feedme/internal/domain/documents/meal"
)

// Fixture is a seed data set. Entities reference each other by name.
type Fixture struct {
	Properties  []PropertyFixture   `yaml:"properties"`
	Ingredients []IngredientFixture `yaml:"ingredients"`
	Categories  []CategoryFixture   `yaml:"categories"`
	Dishes      []string            `yaml:"dishes"`
	Meals       []MealFixture       `yaml:"meals"`
}

type PropertyFixture struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent"`
}

type IngredientFixture struct {
	Name              string             `yaml:"name"`
	ServingSizeG      float64            `yaml:"serving_size_g"`
	ServingSizeMl     float64            `yaml:"serving_size_ml"`
	ServingSizePieces float64            `yaml:"serving_size_pieces"`
	FullyEntered      bool               `yaml:"fully_entered"`
	Values            map[string]float64 `yaml:"values"`
}

type CategoryFixture struct {
	Name        string   `yaml:"name"`
	Ingredients []string `yaml:"ingredients"`
}

type MealFixture struct {
	// Time is RFC 3339; its offset becomes the meal's timezone
	Time   string            `yaml:"time"`
	Dishes []MealDishFixture `yaml:"dishes"`
}

type MealDishFixture struct {
	Dish        string            `yaml:"dish"`
	Ingredients []MealLineFixture `yaml:"ingredients"`
}

type MealLineFixture struct {
	Ingredient string          `yaml:"ingredient"`
	Quantity   float64         `yaml:"quantity"`
	Unit       ingredient.Unit `yaml:"unit"`
}

// LoadFixture reads a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Seed creates every entity of f in s, in dependency order.
func (s *Store) Seed(f *Fixture) error {
	props := map[string]id.ID{}
	for _, p := range f.Properties {
		params := property.CreateParams{Name: p.Name}
		if p.Parent != "" {
			parentID, ok := props[p.Parent]
			if !ok {
				return fmt.Errorf("property %q: unknown parent %q", p.Name, p.Parent)
			}
			params.ParentID = id.Ptr(parentID)
		}
		created, err := s.CreateProperty(params)
		if err != nil {
			return fmt.Errorf("property %q: %w", p.Name, err)
		}
		props[p.Name] = created.ID
	}

	ingredients := map[string]ingredient.Ingredient{}
	for _, in := range f.Ingredients {
		created := s.CreateIngredient(ingredient.CreateParams{Name: in.Name})
		g, ml, pieces := types.Amount(in.ServingSizeG), types.Amount(in.ServingSizeMl), types.Amount(in.ServingSizePieces)
		entered := in.FullyEntered
		if err := s.ModifyIngredient(created.ID, ingredient.ModifyParams{
			ServingSizeG:      &g,
			ServingSizeMl:     &ml,
			ServingSizePieces: &pieces,
			FullyEntered:      &entered,
		}); err != nil {
			return err
		}
		for name, v := range in.Values {
			propertyID, ok := props[name]
			if !ok {
				return fmt.Errorf("ingredient %q: unknown property %q", in.Name, name)
			}
			assigned, err := s.AddIngredientProperty(ingredient.AddPropertyParams{IngredientID: created.ID, PropertyID: propertyID})
			if err != nil {
				return fmt.Errorf("ingredient %q: %w", in.Name, err)
			}
			if err := s.SetIngredientPropertyValue(assigned.ID, types.Amount(v)); err != nil {
				return err
			}
		}
		current, err := s.Ingredient(created.ID)
		if err != nil {
			return err
		}
		ingredients[in.Name] = current
	}

	for _, c := range f.Categories {
		name := c.Name
		created, err := s.CreateCategory(category.CreateParams{Name: &name})
		if err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}
		for _, ingName := range c.Ingredients {
			ing, ok := ingredients[ingName]
			if !ok {
				return fmt.Errorf("category %q: unknown ingredient %q", c.Name, ingName)
			}
			if _, err := s.AddCategoryMapping(category.AddMappingParams{IngredientID: ing.ID, CategoryID: created.ID}); err != nil {
				return fmt.Errorf("category %q: %w", c.Name, err)
			}
		}
	}

	dishes := map[string]id.ID{}
	for _, name := range f.Dishes {
		dishes[name] = s.CreateDish(dish.CreateParams{Name: name}).ID
	}

	for _, m := range f.Meals {
		at, err := time.Parse(time.RFC3339, m.Time)
		if err != nil {
			return fmt.Errorf("meal time %q: %w", m.Time, err)
		}
		created := s.CreateMeal(meal.NewCreateParams(at))
		for _, d := range m.Dishes {
			dishID, ok := dishes[d.Dish]
			if !ok {
				return fmt.Errorf("meal %s: unknown dish %q", m.Time, d.Dish)
			}
			md, err := s.AddMealDish(meal.AddDishParams{MealID: created.ID, DishID: dishID})
			if err != nil {
				return err
			}
			for _, l := range d.Ingredients {
				ing, ok := ingredients[l.Ingredient]
				if !ok {
					return fmt.Errorf("meal %s: unknown ingredient %q", m.Time, l.Ingredient)
				}
				line, err := s.AddMealDishIngredient(meal.AddIngredientParams{MealDishID: md.ID, IngredientID: ing.ID})
				if err != nil {
					return err
				}
				unit := l.Unit
				if unit == "" {
					unit = line.Unit
				}
				if err := s.UpdateMealDishIngredient(line.ID, meal.UpdateIngredientParams{
					Quantity: types.Amount(l.Quantity),
					Unit:     unit,
				}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
