package handlers

import (
	"github.com/gin-gonic/gin"

	"feedme/internal/core/id"
)

// Create serves PUT on a resource without a list endpoint, answering with the created value.
func Create[P any, T any](h *BaseHandler, create func(P) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req P
		if !h.BindJSON(c, &req) {
			return
		}
		created, err := create(req)
		Respond(h, c, created, err)
	}
}

// Update serves PUT /{entity}/:id.
func Update[P any](h *BaseHandler, update func(id.ID, P) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, ok := h.ParseID(c)
		if !ok {
			return
		}
		var req P
		if !h.BindJSON(c, &req) {
			return
		}
		Finish(h, c, update(entityID, req))
	}
}

// Action serves PUT /{entity}/:id/{action}, answering with the action's result.
func Action[P any, T any](h *BaseHandler, action func(id.ID, P) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, ok := h.ParseID(c)
		if !ok {
			return
		}
		var req P
		if !h.BindJSON(c, &req) {
			return
		}
		result, err := action(entityID, req)
		Respond(h, c, result, err)
	}
}

// Delete serves DELETE /{entity}/:id.
func Delete(h *BaseHandler, remove func(id.ID) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, ok := h.ParseID(c)
		if !ok {
			return
		}
		Finish(h, c, remove(entityID))
	}
}

// Infallible adapts a constructor that cannot fail.
func Infallible[P any, T any](fn func(P) T) func(P) (T, error) {
	return func(p P) (T, error) { return fn(p), nil }
}
