package handlers

import (
	"github.com/gin-gonic/gin"

	"feedme/internal/core/id"
)

// CatalogHandler serves the list, get, create and modify routes shared by every resource
// with a collection endpoint.
type CatalogHandler[T any, CreateParams any, ModifyParams any] struct {
	*BaseHandler
	list   func() []T
	get    func(id.ID) (T, error)
	create func(CreateParams) (T, error)
	modify func(id.ID, ModifyParams) error
}

// CatalogHandlerConfig configures the catalog handler. Modify may be nil for resources that
// cannot be updated.
type CatalogHandlerConfig[T any, CreateParams any, ModifyParams any] struct {
	List   func() []T
	Get    func(id.ID) (T, error)
	Create func(CreateParams) (T, error)
	Modify func(id.ID, ModifyParams) error
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler[T any, CreateParams any, ModifyParams any](
	base *BaseHandler,
	cfg CatalogHandlerConfig[T, CreateParams, ModifyParams],
) *CatalogHandler[T, CreateParams, ModifyParams] {
	return &CatalogHandler[T, CreateParams, ModifyParams]{
		BaseHandler: base,
		list:        cfg.List,
		get:         cfg.Get,
		create:      cfg.Create,
		modify:      cfg.Modify,
	}
}

// List handles GET /{entity}.
func (h *CatalogHandler[T, C, M]) List(c *gin.Context) {
	h.OK(c, h.list())
}

// Get handles GET /{entity}/:id.
func (h *CatalogHandler[T, C, M]) Get(c *gin.Context) {
	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}
	item, err := h.get(entityID)
	Respond(h.BaseHandler, c, item, err)
}

// Create handles PUT /{entity} and answers with the created entity.
func (h *CatalogHandler[T, C, M]) Create(c *gin.Context) {
	var req C
	if !h.BindJSON(c, &req) {
		return
	}
	created, err := h.create(req)
	Respond(h.BaseHandler, c, created, err)
}

// Update handles PUT /{entity}/:id.
func (h *CatalogHandler[T, C, M]) Update(c *gin.Context) {
	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req M
	if !h.BindJSON(c, &req) {
		return
	}
	Finish(h.BaseHandler, c, h.modify(entityID, req))
}

// CanUpdate reports whether the resource accepts PUT /{entity}/:id.
func (h *CatalogHandler[T, C, M]) CanUpdate() bool {
	return h.modify != nil
}
