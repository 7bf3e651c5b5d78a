package ingredient

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain/domaintest"
)

func egg() Ingredient {
	return Ingredient{
		ID:                1,
		Name:              "egg",
		ServingSizeG:      50,
		ServingSizePieces: 1,
		Properties: []Property{
			{ID: 10, IngredientID: 1, PropertyID: 100, Value: 70},
			{ID: 11, IngredientID: 1, PropertyID: 101, Value: 6.1},
		},
	}
}

func TestEditor_LoadReplaysProperties(t *testing.T) {
	req := domaintest.New().OK(http.MethodGet, "/ingredients/1", egg())
	e := NewEditor(req, 1)

	var seen []id.ID
	e.OnNewProperty(func(p Property) { seen = append(seen, p.ID) })

	require.NoError(t, e.Load(context.Background()))
	assert.Equal(t, []id.ID{10, 11}, seen)
}

func TestEditor_AddProperty(t *testing.T) {
	req := domaintest.New().
		OK(http.MethodGet, "/ingredients/1", egg()).
		OK(http.MethodPut, "/ingredient_properties", Property{ID: 12, IngredientID: 1, PropertyID: 102})
	e := NewEditor(req, 1)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	var seen []Property
	e.OnNewProperty(func(p Property) { seen = append(seen, p) })

	created, err := e.AddProperty(ctx, 102)
	require.NoError(t, err)

	assert.Equal(t, []Property{created}, seen)
	assert.Len(t, e.Data().Properties, 3)

	var body AddPropertyParams
	require.NoError(t, req.LastBody(http.MethodPut, "/ingredient_properties", &body))
	assert.Equal(t, AddPropertyParams{IngredientID: 1, PropertyID: 102}, body)
	assert.Len(t, req.CallsTo(http.MethodGet, "/ingredients/1"), 1, "no re-fetch after add")
}

func TestEditor_AddPropertyFailure(t *testing.T) {
	req := domaintest.New().
		OK(http.MethodGet, "/ingredients/1", egg()).
		Fail(http.MethodPut, "/ingredient_properties", http.StatusConflict)
	e := NewEditor(req, 1)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	fired := false
	e.OnNewProperty(func(Property) { fired = true })

	_, err := e.AddProperty(ctx, 100)
	require.Error(t, err)
	assert.True(t, apperror.IsRemoteWrite(err))
	assert.False(t, fired)
	assert.Len(t, e.Data().Properties, 2)
}

func TestEditor_SetPropertyValue(t *testing.T) {
	req := domaintest.New().
		OK(http.MethodGet, "/ingredients/1", egg()).
		OK(http.MethodPut, "/ingredient_properties/11", nil)
	e := NewEditor(req, 1)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))
	before := e.Data()

	var changed []Property
	e.OnPropertyChanged(func(p Property) { changed = append(changed, p) })

	updated, err := e.SetPropertyValue(ctx, 11, 6.5)
	require.NoError(t, err)
	assert.Equal(t, types.Amount(6.5), updated.Value)
	assert.Equal(t, []Property{updated}, changed)

	v, ok := e.Data().PropertyValue(101)
	require.True(t, ok)
	assert.Equal(t, types.Amount(6.5), v)

	// earlier snapshots are never patched in place
	assert.Equal(t, types.Amount(6.1), before.Properties[1].Value)

	var body SetValueParams
	require.NoError(t, req.LastBody(http.MethodPut, "/ingredient_properties/11", &body))
	assert.Equal(t, types.Amount(6.5), body.Value)
}

func TestEditor_SetPropertyValueUnknown(t *testing.T) {
	req := domaintest.New().OK(http.MethodGet, "/ingredients/1", egg())
	e := NewEditor(req, 1)
	require.NoError(t, e.Load(context.Background()))

	_, err := e.SetPropertyValue(context.Background(), 99, 1)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, req.CallsTo(http.MethodPut, "/ingredient_properties/99"))
}

func TestEditor_MarkCompleteRefetches(t *testing.T) {
	done := egg()
	done.FullyEntered = true

	req := domaintest.New().
		On(http.MethodGet, "/ingredients/1",
			domaintest.Reply{Status: http.StatusOK, Body: egg()},
			domaintest.Reply{Status: http.StatusOK, Body: done},
		).
		OK(http.MethodPut, "/ingredients/1", nil)
	e := NewEditor(req, 1)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))
	require.NoError(t, e.MarkComplete(ctx, true))
	assert.True(t, e.Data().FullyEntered)

	var body map[string]any
	require.NoError(t, req.LastBody(http.MethodPut, "/ingredients/1", &body))
	assert.Equal(t, map[string]any{"fully_entered": true}, body)
}

func TestEditor_SetServingSizes(t *testing.T) {
	sized := egg()
	sized.ServingSizeMl = 45

	req := domaintest.New().
		On(http.MethodGet, "/ingredients/1",
			domaintest.Reply{Status: http.StatusOK, Body: egg()},
			domaintest.Reply{Status: http.StatusOK, Body: sized},
		).
		OK(http.MethodPut, "/ingredients/1", nil)
	e := NewEditor(req, 1)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))
	require.NoError(t, e.SetServingSizes(ctx, 50, 45, 1))

	assert.Equal(t, types.Amount(45), e.Data().ServingSizeMl)
	assert.True(t, e.Data().CanUse(UnitVolume))

	var body map[string]any
	require.NoError(t, req.LastBody(http.MethodPut, "/ingredients/1", &body))
	assert.Equal(t, map[string]any{
		"serving_size_g":      float64(50),
		"serving_size_ml":     float64(45),
		"serving_size_pieces": float64(1),
	}, body)

	var calls []string
	for _, c := range req.Calls() {
		calls = append(calls, c.Method+" "+c.Path)
	}
	assert.Equal(t, []string{"GET /ingredients/1", "PUT /ingredients/1", "GET /ingredients/1"}, calls)
}

func TestEditor_SetServingSizesFailureKeepsSnapshot(t *testing.T) {
	req := domaintest.New().
		OK(http.MethodGet, "/ingredients/1", egg()).
		Fail(http.MethodPut, "/ingredients/1", http.StatusServiceUnavailable)
	e := NewEditor(req, 1)

	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	err := e.SetServingSizes(ctx, 50, 45, 1)
	require.Error(t, err)
	assert.True(t, apperror.IsRemoteWrite(err))
	assert.Equal(t, egg(), e.Data())

	assert.True(t, apperror.IsValidation(e.SetServingSizes(ctx, -1, 0, 0)))
	assert.Len(t, req.CallsTo(http.MethodPut, "/ingredients/1"), 1)
}

func TestModifyParams_Validate(t *testing.T) {
	ctx := context.Background()
	assert.True(t, apperror.IsValidation(ModifyParams{}.Validate(ctx)))

	negative := types.Amount(-1)
	assert.True(t, apperror.IsValidation(ModifyParams{ServingSizeG: &negative}.Validate(ctx)))

	ok := types.Amount(28)
	assert.NoError(t, ModifyParams{ServingSizeG: &ok}.Validate(ctx))
}
