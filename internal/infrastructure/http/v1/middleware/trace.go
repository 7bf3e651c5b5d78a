package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "feedme/internal/core/context"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
	HeaderCommand   = "X-Feedme-Command"
)

// Trace middleware adopts the trace the client sent with the request.
// The feedme client sends its per-request id, the trace id of the CLI command and the command
// itself; ids that are missing or malformed are generated here instead.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		trace := appctx.FromHeaders(
			c.GetHeader(HeaderTraceID),
			c.GetHeader(HeaderRequestID),
			c.GetHeader(HeaderCommand),
		)
		c.Request = c.Request.WithContext(appctx.WithTrace(c.Request.Context(), trace))

		c.Set("trace_id", trace.TraceID)
		c.Set("request_id", trace.RequestID)

		c.Header(HeaderRequestID, trace.RequestID)
		c.Header(HeaderTraceID, trace.TraceID)

		c.Next()
	}
}

// traceOf returns the trace set up by Trace, or an empty one.
func traceOf(c *gin.Context) *appctx.TraceContext {
	if t := appctx.GetTrace(c.Request.Context()); t != nil {
		return t
	}
	return &appctx.TraceContext{}
}
