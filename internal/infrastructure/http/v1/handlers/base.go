// Package handlers provides the HTTP request handlers of the development backend.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/domain"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds the request body and runs its Validate method when it has one.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	if v, ok := obj.(domain.Validatable); ok {
		if err := v.Validate(c.Request.Context()); err != nil {
			h.Error(c, err)
			return false
		}
	}
	return true
}

// ParseID parses the :id path parameter.
func (h *BaseHandler) ParseID(c *gin.Context) (id.ID, bool) {
	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail("id", c.Param("id")))
		return id.Nil, false
	}
	return entityID, true
}

// Error registers err on the Gin context and aborts the request.
// The JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// OK sends 200 with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Done sends 200 with an empty body, the backend's answer to updates and deletes.
func (h *BaseHandler) Done(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Respond sends data, or the error when err is set.
func Respond[T any](h *BaseHandler, c *gin.Context, data T, err error) {
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, data)
}

// Finish sends an empty 200, or the error when err is set.
func Finish(h *BaseHandler, c *gin.Context, err error) {
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Done(c)
}
