package dish

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedme/internal/core/apperror"
	"feedme/internal/domain/domaintest"
)

func routes(calls []domaintest.Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method + " " + c.Path
	}
	return out
}

func TestEditor_Load(t *testing.T) {
	req := domaintest.New().OK(http.MethodGet, "/dishes/4", Dish{ID: 4, Name: "egg on bread"})
	e := NewEditor(req, 4)

	require.NoError(t, e.Load(context.Background()))
	assert.True(t, e.Loaded())
	assert.Equal(t, Dish{ID: 4, Name: "egg on bread"}, e.Data())
}

func TestEditor_LoadMissing(t *testing.T) {
	e := NewEditor(domaintest.New(), 4)

	err := e.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.False(t, e.Loaded())
}

func TestEditor_RenameRefetches(t *testing.T) {
	req := domaintest.New().
		On(http.MethodGet, "/dishes/4",
			domaintest.Reply{Status: http.StatusOK, Body: Dish{ID: 4, Name: "egg on bread"}},
			domaintest.Reply{Status: http.StatusOK, Body: Dish{ID: 4, Name: "egg on toast"}},
		).
		OK(http.MethodPut, "/dishes/4", nil)
	e := NewEditor(req, 4)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))
	require.NoError(t, e.Rename(ctx, "egg on toast"))

	assert.Equal(t, "egg on toast", e.Data().Name)
	assert.Equal(t, []string{
		"GET /dishes/4",
		"PUT /dishes/4",
		"GET /dishes/4",
	}, routes(req.Calls()))

	var body ModifyParams
	require.NoError(t, req.LastBody(http.MethodPut, "/dishes/4", &body))
	assert.Equal(t, ModifyParams{Name: "egg on toast"}, body)
}

func TestEditor_RenameFailureKeepsSnapshot(t *testing.T) {
	req := domaintest.New().
		OK(http.MethodGet, "/dishes/4", Dish{ID: 4, Name: "egg on bread"}).
		Fail(http.MethodPut, "/dishes/4", http.StatusInternalServerError)
	e := NewEditor(req, 4)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	err := e.Rename(ctx, "egg on toast")
	require.Error(t, err)
	assert.True(t, apperror.IsRemoteWrite(err))
	assert.Equal(t, "egg on bread", e.Data().Name)
	assert.Len(t, req.CallsTo(http.MethodGet, "/dishes/4"), 1)
}

func TestEditor_RenameEmptyNeverSent(t *testing.T) {
	req := domaintest.New().OK(http.MethodGet, "/dishes/4", Dish{ID: 4, Name: "egg on bread"})
	e := NewEditor(req, 4)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	assert.True(t, apperror.IsValidation(e.Rename(ctx, "  ")))
	assert.Empty(t, req.CallsTo(http.MethodPut, "/dishes/4"))
}
