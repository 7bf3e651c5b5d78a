// Package middleware provides HTTP middleware components for the development backend.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"feedme/internal/core/apperror"
	"feedme/pkg/logger"
)

// Recovery middleware turns a handler panic into an internal error naming the request, so a
// client that logged the request id can find the stack in the backend log.
// It must run inside ErrorHandler, which renders the error.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				trace := traceOf(c)
				log.WithContext(c.Request.Context()).Errorw("panic recovered",
					"panic", r,
					"method", c.Request.Method,
					"route", c.FullPath(),
					"command", trace.Command,
					"stack", string(debug.Stack()),
				)

				_ = c.Error(
					apperror.NewInternal(fmt.Errorf("panic in %s %s: %v", c.Request.Method, c.FullPath(), r)).
						WithDetail("request_id", trace.RequestID).
						WithDetail("trace_id", trace.TraceID),
				)
				c.Abort()
			}
		}()
		c.Next()
	}
}
