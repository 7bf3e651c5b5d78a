// Package remote implements domain.Requester over HTTP against the feedme backend.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appctx "feedme/internal/core/context"
	"feedme/internal/domain"
	"feedme/pkg/logger"
)

var tracer = otel.Tracer("feedme/remote")

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
	HeaderCommand   = "X-Feedme-Command"

	acceptEncoding = "zstd, gzip"
)

// Config holds client settings.
type Config struct {
	// BaseURL is the backend root, e.g. http://localhost:8080/api
	BaseURL string

	// Timeout bounds a single request; zero means no timeout
	Timeout time.Duration

	UserAgent string
}

// Client sends JSON requests to the backend.
type Client struct {
	base    *url.URL
	http    *http.Client
	log     *logger.Logger
	metrics MetricsRecorder
	agent   string
	zstd    *zstd.Decoder
}

var _ domain.Requester = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithMetrics sets the request metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for cfg.BaseURL.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	c := &Client{
		base:    base,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     logger.Nop(),
		metrics: NopMetrics{},
		agent:   cfg.UserAgent,
		zstd:    dec,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("remote")
	return c, nil
}

// Close releases the decoder resources.
func (c *Client) Close() {
	c.zstd.Close()
}

// Do sends one request. Only transport failures are returned as errors; any HTTP status is
// returned in the Response.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*domain.Response, error) {
	// every request gets its own id under the command's trace
	ctx = appctx.WithTrace(ctx, appctx.GetTrace(ctx).ForRequest())

	ctx, span := tracer.Start(ctx, "remote.Do",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", RouteOf(path)),
		))
	defer span.End()

	start := time.Now()
	resp, err := c.do(ctx, method, path, body)
	elapsed := time.Since(start)

	log := c.log.WithContext(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.metrics.Observe(ctx, method, path, 0, elapsed)
		log.Warnw("request failed", "method", method, "path", path, "error", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if !resp.OK() {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		log.Warnw("request rejected", "method", method, "path", path, "status", resp.StatusCode)
	} else {
		log.Debugw("request", "method", method, "path", path, "status", resp.StatusCode,
			"latency_ms", elapsed.Milliseconds())
	}
	c.metrics.Observe(ctx, method, path, resp.StatusCode, elapsed)
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*domain.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", acceptEncoding)
	if c.agent != "" {
		req.Header.Set("User-Agent", c.agent)
	}
	setTraceHeaders(ctx, req)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer httpResp.Body.Close()

	data, err := c.readBody(httpResp)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	return &domain.Response{StatusCode: httpResp.StatusCode, Body: data}, nil
}

// readBody decodes the response according to Content-Encoding.
func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "zstd":
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return c.zstd.DecodeAll(raw, nil)
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	default:
		return io.ReadAll(resp.Body)
	}
}

// setTraceHeaders propagates the ids of the request trace in ctx, set up by Do.
func setTraceHeaders(ctx context.Context, req *http.Request) {
	t := appctx.GetTrace(ctx)
	if t == nil {
		return
	}
	req.Header.Set(HeaderRequestID, t.RequestID)
	req.Header.Set(HeaderTraceID, t.TraceID)
	if t.Command != "" {
		req.Header.Set(HeaderCommand, t.Command)
	}
}
