// Package v1 provides the HTTP API of the development backend: the REST surface the feedme
// client core talks to, served from in-memory storage.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"feedme/internal/core/id"
	"feedme/internal/domain/catalogs/category"
	"feedme/internal/domain/catalogs/dish"
	"feedme/internal/domain/catalogs/ingredient"
	"feedme/internal/domain/catalogs/property"
	"feedme/internal/domain/documents/meal"
	"feedme/internal/infrastructure/http/v1/handlers"
	"feedme/internal/infrastructure/http/v1/middleware"
	"feedme/internal/infrastructure/storage/memory"
	"feedme/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	Store *memory.Store

	// Logger for request logging
	Logger *logger.Logger

	// Registry receives the request metrics and is served at /metrics; nil disables both
	Registry *prometheus.Registry

	// BasePath prefixes every API route, e.g. "/api"
	BasePath string

	// CompressThreshold is the smallest response body that gets compressed
	CompressThreshold int
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.CompressThreshold == 0 {
		cfg.CompressThreshold = middleware.DefaultCompressThreshold
	}

	router := gin.New()

	// Global middleware (order matters: Recovery sits inside ErrorHandler, which renders
	// its error, and Compress sees the final body)
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger.WithComponent("http")))
	if cfg.Registry != nil {
		metrics, err := middleware.Metrics(cfg.Registry)
		if err != nil {
			return nil, err
		}
		router.Use(metrics)
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}
	compress, err := middleware.Compress(cfg.CompressThreshold)
	if err != nil {
		return nil, err
	}
	router.Use(compress)
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery(cfg.Logger.WithComponent("recovery")))

	router.GET("/health/live", handlers.Live)

	api := router.Group(cfg.BasePath)
	registerRoutes(api, cfg.Store, handlers.NewBaseHandler())
	return router, nil
}

func registerRoutes(api *gin.RouterGroup, s *memory.Store, base *handlers.BaseHandler) {
	// --- Catalogs ---
	RegisterCatalogRoutes(api.Group(property.Path), handlers.NewCatalogHandler(base,
		handlers.CatalogHandlerConfig[property.Property, property.CreateParams, property.ModifyParams]{
			List:   s.Properties,
			Get:    s.Property,
			Create: s.CreateProperty,
			Modify: s.ModifyProperty,
		}))

	RegisterCatalogRoutes(api.Group(ingredient.Path), handlers.NewCatalogHandler(base,
		handlers.CatalogHandlerConfig[ingredient.Ingredient, ingredient.CreateParams, ingredient.ModifyParams]{
			List:   s.Ingredients,
			Get:    s.Ingredient,
			Create: handlers.Infallible(s.CreateIngredient),
			Modify: s.ModifyIngredient,
		}))
	ingredientProperties := api.Group(ingredient.PropertiesPath)
	ingredientProperties.PUT("", handlers.Create(base, s.AddIngredientProperty))
	ingredientProperties.PUT("/:id", handlers.Update(base, func(propertyID id.ID, p ingredient.SetValueParams) error {
		return s.SetIngredientPropertyValue(propertyID, p.Value)
	}))

	RegisterCatalogRoutes(api.Group(dish.Path), handlers.NewCatalogHandler(base,
		handlers.CatalogHandlerConfig[dish.Dish, dish.CreateParams, dish.ModifyParams]{
			List:   s.Dishes,
			Get:    s.Dish,
			Create: handlers.Infallible(s.CreateDish),
			Modify: s.ModifyDish,
		}))

	categories := api.Group(category.Path)
	RegisterCatalogRoutes(categories, handlers.NewCatalogHandler(base,
		handlers.CatalogHandlerConfig[category.Category, category.CreateParams, category.ModifyParams]{
			List:   s.Categories,
			Get:    s.Category,
			Create: s.CreateCategory,
			Modify: s.ModifyCategory,
		}))
	mappings := api.Group(category.MappingsPath)
	mappings.PUT("", handlers.Create(base, s.AddCategoryMapping))
	mappings.DELETE("/:id", handlers.Delete(base, s.DeleteCategoryMapping))

	// --- Meals ---
	meals := api.Group(meal.Path)
	RegisterCatalogRoutes(meals, handlers.NewCatalogHandler(base,
		handlers.CatalogHandlerConfig[meal.Meal, meal.CreateParams, struct{}]{
			List:   s.Meals,
			Get:    s.Meal,
			Create: handlers.Infallible(s.CreateMeal),
		}))
	meals.DELETE("/:id", handlers.Delete(base, s.DeleteMeal))

	mealDishes := api.Group(meal.DishesPath)
	mealDishes.PUT("", handlers.Create(base, s.AddMealDish))
	mealDishes.DELETE("/:id", handlers.Delete(base, s.DeleteMealDish))
	mealDishes.PUT("/:id/copy_from", handlers.Action(base, func(target id.ID, p meal.CopyFromParams) ([]meal.Ingredient, error) {
		return s.CopyMealDish(target, p.MealDishID)
	}))

	lines := api.Group(meal.IngredientsPath)
	lines.PUT("", handlers.Create(base, s.AddMealDishIngredient))
	lines.PUT("/:id", handlers.Update(base, s.UpdateMealDishIngredient))
	lines.DELETE("/:id", handlers.Delete(base, s.DeleteMealDishIngredient))
}
