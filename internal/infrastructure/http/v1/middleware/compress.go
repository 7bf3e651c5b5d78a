package middleware

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"feedme/pkg/logger"
)

// DefaultCompressThreshold is the smallest body worth compressing.
const DefaultCompressThreshold = 1024

// Compress buffers the response and encodes bodies of at least threshold bytes with zstd or
// gzip, whichever the client accepts (zstd first). It must run outside ErrorHandler so error
// bodies pass through it too.
func Compress(threshold int) (gin.HandlerFunc, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		accept := c.GetHeader("Accept-Encoding")
		if !strings.Contains(accept, "zstd") && !strings.Contains(accept, "gzip") {
			c.Next()
			return
		}

		w := &bufferedWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()
		c.Writer = w.ResponseWriter

		if !w.Written() {
			return
		}

		body := w.buf.Bytes()
		if len(body) >= threshold {
			switch {
			case strings.Contains(accept, "zstd"):
				body = encoder.EncodeAll(body, nil)
				w.Header().Set("Content-Encoding", "zstd")
			default:
				var buf bytes.Buffer
				zw := gzip.NewWriter(&buf)
				if _, err := zw.Write(body); err == nil && zw.Close() == nil {
					body = buf.Bytes()
					w.Header().Set("Content-Encoding", "gzip")
				}
			}
			w.Header().Add("Vary", "Accept-Encoding")
		}

		w.Header().Del("Content-Length")
		w.ResponseWriter.WriteHeader(w.Status())
		if _, err := w.ResponseWriter.Write(body); err != nil {
			logger.Warn(c.Request.Context(), "write response", "error", err)
		}
	}, nil
}

// bufferedWriter holds the status and body until the handler chain returns.
type bufferedWriter struct {
	gin.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *bufferedWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	if w.status == 0 {
		w.status = http.StatusOK
	}
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.WriteHeaderNow()
	return w.buf.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.WriteHeaderNow()
	return w.buf.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *bufferedWriter) Size() int {
	if w.status == 0 {
		return -1
	}
	return w.buf.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.status != 0
}
