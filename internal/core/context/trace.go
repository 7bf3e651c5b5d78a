// Package context carries request tracing information across the client core.
//
// A CLI command opens one trace; every backend request it issues gets its own request id
// under that trace. The development backend reads the same ids back from the headers so both
// sides log matching fields.
package context

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// MaxIDLength bounds ids accepted from the wire.
const MaxIDLength = 64

// TraceContext contains request tracing information.
type TraceContext struct {
	TraceID   string
	SpanID    string
	RequestID string

	// Command is the CLI command path that opened the trace, e.g. "feedme meals add"
	Command string

	// Propagated is set on the backend when the ids came from the client
	Propagated bool
}

type traceContextKey struct{}

// WithTrace adds TraceContext to context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns TraceContext from context.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// NewRequestID returns a fresh request identifier.
func NewRequestID() string {
	return uuid.New().String()
}

func newSpanID() string {
	return uuid.New().String()[:16]
}

// NewCommandTrace opens the trace of one CLI command. It carries no request id: each request
// gets its own through ForRequest.
func NewCommandTrace(command string) *TraceContext {
	return &TraceContext{
		TraceID: uuid.New().String(),
		SpanID:  newSpanID(),
		Command: command,
	}
}

// ForRequest derives the context of one request under t. A nil t starts a fresh trace.
// A request id already set on t is kept.
func (t *TraceContext) ForRequest() *TraceContext {
	if t == nil {
		return &TraceContext{
			TraceID:   uuid.New().String(),
			SpanID:    newSpanID(),
			RequestID: NewRequestID(),
		}
	}
	next := *t
	next.SpanID = newSpanID()
	if next.RequestID == "" {
		next.RequestID = NewRequestID()
	}
	return &next
}

// FromHeaders rebuilds a request trace from the values a client sent. Ids that are empty or
// not a plausible token are replaced, and Propagated reports whether both were kept.
func FromHeaders(traceID, requestID, command string) *TraceContext {
	t := &TraceContext{
		TraceID:    traceID,
		SpanID:     newSpanID(),
		RequestID:  requestID,
		Command:    sanitize(command, 128),
		Propagated: true,
	}
	if !validID(t.TraceID) {
		t.TraceID = uuid.New().String()
		t.Propagated = false
	}
	if !validID(t.RequestID) {
		t.RequestID = NewRequestID()
		t.Propagated = false
	}
	return t
}

func validID(s string) bool {
	if s == "" || len(s) > MaxIDLength {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !(r == '-' || r == '_' || r == '.' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	}) < 0
}

// sanitize drops control characters and truncates s to n bytes.
func sanitize(s string, n int) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	if len(s) > n {
		s = s[:n]
	}
	return s
}
