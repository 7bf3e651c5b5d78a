package context

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForRequest(t *testing.T) {
	cmd := NewCommandTrace("feedme days")
	assert.Empty(t, cmd.RequestID)

	a, b := cmd.ForRequest(), cmd.ForRequest()
	assert.Equal(t, cmd.TraceID, a.TraceID)
	assert.Equal(t, "feedme days", a.Command)
	assert.NotEmpty(t, a.RequestID)
	assert.NotEqual(t, a.RequestID, b.RequestID)
	assert.NotEqual(t, cmd.SpanID, a.SpanID)

	fixed := &TraceContext{TraceID: "t", RequestID: "r"}
	assert.Equal(t, "r", fixed.ForRequest().RequestID)

	var none *TraceContext
	fresh := none.ForRequest()
	assert.NotEmpty(t, fresh.TraceID)
	assert.NotEmpty(t, fresh.RequestID)
}

func TestFromHeaders(t *testing.T) {
	got := FromHeaders("trace-1", "req-1", "feedme meals add")
	assert.True(t, got.Propagated)
	assert.Equal(t, "trace-1", got.TraceID)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "feedme meals add", got.Command)

	tests := []struct {
		name             string
		traceID, request string
	}{
		{"missing", "", ""},
		{"spaces", "trace 1", "req-1"},
		{"too long", "trace-1", strings.Repeat("r", MaxIDLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromHeaders(tt.traceID, tt.request, "")
			assert.False(t, got.Propagated)
			assert.NotEmpty(t, got.TraceID)
			assert.NotEmpty(t, got.RequestID)
			assert.LessOrEqual(t, len(got.RequestID), MaxIDLength)
		})
	}

	assert.Equal(t, "feedme days", FromHeaders("t", "r", "feedme\n days").Command)
}

func TestWithTrace(t *testing.T) {
	assert.Nil(t, GetTrace(context.Background()))

	trace := NewCommandTrace("feedme")
	got := GetTrace(WithTrace(context.Background(), trace))
	require.NotNil(t, got)
	assert.Same(t, trace, got)
}
