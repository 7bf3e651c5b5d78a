package v1

import (
	"github.com/gin-gonic/gin"
)

// CatalogRouteHandler defines the interface for resources with a collection endpoint.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	CanUpdate() bool
}

// RegisterCatalogRoutes registers the collection routes of a resource. The backend creates
// with PUT on the collection, not POST.
//
// Usage:
//
//	handler := handlers.NewCatalogHandler(base, handlers.CatalogHandlerConfig[...]{...})
//	RegisterCatalogRoutes(api.Group(dish.Path), handler)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.PUT("", handler.Create)
	group.GET("/:id", handler.Get)
	if handler.CanUpdate() {
		group.PUT("/:id", handler.Update)
	}
}
