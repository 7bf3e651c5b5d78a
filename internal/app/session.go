// Package app assembles the client core: the cached collections, editors, reports and
// search pickers a front end works with.
package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"feedme/internal/core/id"
	"feedme/internal/domain"
	"feedme/internal/domain/catalogs/category"
	"feedme/internal/domain/catalogs/dish"
	"feedme/internal/domain/catalogs/ingredient"
	"feedme/internal/domain/catalogs/property"
	"feedme/internal/domain/documents/meal"
	"feedme/internal/domain/reports"
	"feedme/internal/domain/search"
	"feedme/pkg/logger"
)

// Session holds one client's view of the backend.
type Session struct {
	requester domain.Requester
	log       *logger.Logger

	Properties  *property.Collection
	Ingredients *ingredient.Collection
	Dishes      *dish.Collection
	Meals       *meal.Collection
	Categories  *category.Collection
}

// NewSession creates a session with empty collections. Call Initialize to load them.
func NewSession(r domain.Requester, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Default()
	}
	return &Session{
		requester:   r,
		log:         log.WithComponent("session"),
		Properties:  property.NewCollection(r, log),
		Ingredients: ingredient.NewCollection(r, log),
		Dishes:      dish.NewCollection(r, log),
		Meals:       meal.NewCollection(r, log),
		Categories:  category.NewCollection(r, log),
	}
}

// Initialize loads every collection concurrently and replays the items to observers
// registered so far. The first failure cancels the remaining loads.
func (s *Session) Initialize(ctx context.Context) error {
	return s.each(ctx, "initialize", func(ctx context.Context, c loader) error {
		return c.Initialize(ctx)
	})
}

// Refresh reloads every collection without notifying observers.
func (s *Session) Refresh(ctx context.Context) error {
	return s.each(ctx, "refresh", func(ctx context.Context, c loader) error {
		return c.Refresh(ctx)
	})
}

type loader interface {
	Initialize(ctx context.Context) error
	Refresh(ctx context.Context) error
}

func (s *Session) each(ctx context.Context, op string, fn func(context.Context, loader) error) error {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range []loader{s.Properties, s.Ingredients, s.Dishes, s.Meals, s.Categories} {
		g.Go(func() error { return fn(gctx, c) })
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%s session: %w", op, err)
	}

	s.log.WithContext(ctx).Debugw("session loaded",
		"op", op,
		"meals", s.Meals.Len(),
		"ingredients", s.Ingredients.Len(),
		"duration", time.Since(start),
	)
	return nil
}

// CreateMeal creates an empty meal at now, in now's zone, and caches it.
func (s *Session) CreateMeal(ctx context.Context, now time.Time) (meal.Meal, error) {
	return s.Meals.Add(ctx, meal.NewCreateParams(now))
}

// MealEditor opens a loaded editor for one meal.
func (s *Session) MealEditor(ctx context.Context, mealID id.ID) (*meal.Editor, error) {
	e := meal.NewEditor(s.requester, mealID)
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// IngredientEditor opens a loaded editor for one ingredient.
func (s *Session) IngredientEditor(ctx context.Context, ingredientID id.ID) (*ingredient.Editor, error) {
	e := ingredient.NewEditor(s.requester, ingredientID)
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// CategoryEditor opens a loaded editor for one category.
func (s *Session) CategoryEditor(ctx context.Context, categoryID id.ID) (*category.Editor, error) {
	e := category.NewEditor(s.requester, categoryID)
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// PropertyEditor opens a loaded editor for one property.
func (s *Session) PropertyEditor(ctx context.Context, propertyID id.ID) (*property.Editor, error) {
	e := property.NewEditor(s.requester, propertyID)
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// DishEditor opens a loaded editor for one dish.
func (s *Session) DishEditor(ctx context.Context, dishID id.ID) (*dish.Editor, error) {
	e := dish.NewEditor(s.requester, dishID)
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Reports builds summaries over the cached meals.
func (s *Session) Reports() *reports.Service {
	return reports.NewService(s.Meals, s.Properties)
}

// MealSummary renders a meal that may not be cached, e.g. one an editor just reloaded.
func (s *Session) MealSummary(m meal.Meal) (*reports.Summary, error) {
	return reports.MealSummary(m, s.Properties)
}

// Label names a meal by its dishes.
func (s *Session) Label(m meal.Meal) string {
	return meal.Label(m, s.Dishes)
}

// OtherVersions lists earlier instances of dishID outside mealID, the copy candidates.
func (s *Session) OtherVersions(mealID, dishID id.ID) []meal.Version {
	return meal.OtherVersions(s.Meals.Items(), mealID, dishID)
}

// DishSearch creates a picker over the cached dishes.
func (s *Session) DishSearch(cfg search.Config[dish.Dish]) *search.Search[dish.Dish] {
	return search.New(func(text string) []dish.Dish {
		return search.FilterByName(s.Dishes.Items(), func(d dish.Dish) string { return d.Name }, text)
	}, cfg)
}

// IngredientSearch creates a picker over the cached ingredients.
func (s *Session) IngredientSearch(cfg search.Config[ingredient.Ingredient]) *search.Search[ingredient.Ingredient] {
	return search.New(func(text string) []ingredient.Ingredient {
		return search.FilterByName(s.Ingredients.Items(), func(i ingredient.Ingredient) string { return i.Name }, text)
	}, cfg)
}
