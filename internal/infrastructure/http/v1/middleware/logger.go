package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"feedme/pkg/logger"
)

// quietPrefixes are polled by tooling and only logged when they fail.
var quietPrefixes = []string{"/health", "/metrics"}

// Logger middleware logs one line per API request.
// Server errors log at error level, rejected requests at warn and the rest at info, so a
// backend started at warn shows only what went wrong for the client.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		if status < 400 && quiet(path) {
			return
		}

		trace := traceOf(c)
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"route", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_trace", trace.Propagated,
		}
		if trace.Command != "" {
			fields = append(fields, "command", trace.Command)
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, "error", errs.String())
		}

		l := log.WithContext(c.Request.Context())
		switch {
		case status >= 500:
			l.Errorw("api request", fields...)
		case status >= 400:
			l.Warnw("api request", fields...)
		default:
			l.Infow("api request", fields...)
		}
	}
}

func quiet(path string) bool {
	for _, p := range quietPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
