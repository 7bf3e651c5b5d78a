package category

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/domain/domaintest"
)

func bread() Category {
	return Category{
		ID:   3,
		Name: "bread",
		Mappings: []Mapping{
			{ID: 1, IngredientID: 20},
			{ID: 2, IngredientID: 21},
		},
	}
}

func TestEditor_LoadReplaysMappings(t *testing.T) {
	req := domaintest.New().OK(http.MethodGet, "/ingredient_categories/3", bread())
	e := NewEditor(req, 3)

	var seen []id.ID
	e.OnNewMapping(func(m Mapping) { seen = append(seen, m.IngredientID) })

	require.NoError(t, e.Load(context.Background()))
	assert.Equal(t, []id.ID{20, 21}, seen)
	assert.True(t, e.Data().Contains(21))
}

func TestEditor_AddIngredient(t *testing.T) {
	req := domaintest.New().
		OK(http.MethodGet, "/ingredient_categories/3", bread()).
		OK(http.MethodPut, "/ingredient_category_mappings", Mapping{ID: 5, IngredientID: 22})
	e := NewEditor(req, 3)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	var added []Mapping
	e.OnNewMapping(func(m Mapping) { added = append(added, m) })

	m, err := e.AddIngredient(ctx, 22)
	require.NoError(t, err)
	assert.Equal(t, id.ID(3), m.CategoryID)
	assert.Equal(t, []Mapping{m}, added)
	assert.Len(t, e.Data().Mappings, 3)

	var body AddMappingParams
	require.NoError(t, req.LastBody(http.MethodPut, "/ingredient_category_mappings", &body))
	assert.Equal(t, AddMappingParams{IngredientID: 22, CategoryID: 3}, body)
}

func TestEditor_DeleteMapping(t *testing.T) {
	req := domaintest.New().
		OK(http.MethodGet, "/ingredient_categories/3", bread()).
		OK(http.MethodDelete, "/ingredient_category_mappings/2", nil)
	e := NewEditor(req, 3)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	var removed []Mapping
	e.OnMappingRemoved(func(m Mapping) { removed = append(removed, m) })

	require.NoError(t, e.DeleteMapping(ctx, 2))
	assert.Equal(t, []Mapping{{ID: 2, IngredientID: 21}}, removed)
	assert.Equal(t, []Mapping{{ID: 1, IngredientID: 20}}, e.Data().Mappings)
}

func TestEditor_DeleteMappingFailure(t *testing.T) {
	req := domaintest.New().
		OK(http.MethodGet, "/ingredient_categories/3", bread()).
		Fail(http.MethodDelete, "/ingredient_category_mappings/2", http.StatusInternalServerError)
	e := NewEditor(req, 3)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	err := e.DeleteMapping(ctx, 2)
	require.Error(t, err)
	assert.True(t, apperror.IsRemoteWrite(err))
	assert.Len(t, e.Data().Mappings, 2)

	assert.True(t, apperror.IsNotFound(e.DeleteMapping(ctx, 99)))
}

func TestCreateParams_Validate(t *testing.T) {
	ctx := context.Background()
	name := "bread"
	assert.NoError(t, CreateParams{Name: &name}.Validate(ctx))
	assert.NoError(t, CreateParams{IngredientID: id.Ptr(4)}.Validate(ctx))
	assert.True(t, apperror.IsValidation(CreateParams{}.Validate(ctx)))
}

func TestEditor_RenameRefetches(t *testing.T) {
	renamed := bread()
	renamed.Name = "breads"

	req := domaintest.New().
		On(http.MethodGet, "/ingredient_categories/3",
			domaintest.Reply{Status: http.StatusOK, Body: bread()},
			domaintest.Reply{Status: http.StatusOK, Body: renamed},
		).
		OK(http.MethodPut, "/ingredient_categories/3", nil)
	e := NewEditor(req, 3)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	replayed := 0
	e.OnNewMapping(func(Mapping) { replayed++ })

	require.NoError(t, e.Rename(ctx, "breads"))
	assert.Equal(t, "breads", e.Data().Name)
	assert.Zero(t, replayed, "a re-read does not replay mappings")

	var calls []string
	for _, c := range req.Calls() {
		calls = append(calls, c.Method+" "+c.Path)
	}
	assert.Equal(t, []string{
		"GET /ingredient_categories/3",
		"PUT /ingredient_categories/3",
		"GET /ingredient_categories/3",
	}, calls)

	var body map[string]any
	require.NoError(t, req.LastBody(http.MethodPut, "/ingredient_categories/3", &body))
	assert.Equal(t, map[string]any{"name": "breads"}, body)
}

func TestEditor_ModifyCompleteness(t *testing.T) {
	done := bread()
	done.FullyEntered = true

	req := domaintest.New().
		On(http.MethodGet, "/ingredient_categories/3",
			domaintest.Reply{Status: http.StatusOK, Body: bread()},
			domaintest.Reply{Status: http.StatusOK, Body: done},
		).
		OK(http.MethodPut, "/ingredient_categories/3", nil)
	e := NewEditor(req, 3)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	complete := true
	require.NoError(t, e.Modify(ctx, ModifyParams{FullyEntered: &complete}))
	assert.True(t, e.Data().FullyEntered)

	var body map[string]any
	require.NoError(t, req.LastBody(http.MethodPut, "/ingredient_categories/3", &body))
	assert.Equal(t, map[string]any{"fully_entered": true}, body)
}

func TestEditor_ModifyFailureKeepsSnapshot(t *testing.T) {
	req := domaintest.New().
		OK(http.MethodGet, "/ingredient_categories/3", bread()).
		Fail(http.MethodPut, "/ingredient_categories/3", http.StatusInternalServerError)
	e := NewEditor(req, 3)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	err := e.Rename(ctx, "breads")
	require.Error(t, err)
	assert.True(t, apperror.IsRemoteWrite(err))
	assert.Equal(t, bread(), e.Data())
	assert.Len(t, req.CallsTo(http.MethodGet, "/ingredient_categories/3"), 1)

	assert.True(t, apperror.IsValidation(e.Modify(ctx, ModifyParams{})))
	assert.Len(t, req.CallsTo(http.MethodPut, "/ingredient_categories/3"), 1)
}
