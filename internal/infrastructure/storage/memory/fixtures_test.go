package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_RepositoryFixture(t *testing.T) {
	f, err := LoadFixture(filepath.Join("..", "..", "..", "..", "configs", "fixtures.yaml"))
	require.NoError(t, err)

	s := NewStore()
	require.NoError(t, s.Seed(f))

	assert.Len(t, s.Properties(), 4)
	assert.Len(t, s.Ingredients(), 4)
	assert.Len(t, s.Dishes(), 2)
	assert.Len(t, s.Categories(), 1)

	meals := s.Meals()
	require.Len(t, meals, 2)
	assert.Equal(t, -420, meals[0].TzOffsMin)
	assert.True(t, meals[0].SummaryComplete)
	assert.False(t, meals[1].SummaryComplete)

	var calories float64
	for _, v := range meals[1].Summary {
		if v.PropertyID == s.Properties()[0].ID {
			calories = v.Value.Float64()
		}
	}
	assert.InDelta(t, 505, calories, 1e-3)
}

func TestSeed_UnknownReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("properties:\n  - name: fat\n    parent: lipids\n"), 0o600))

	f, err := LoadFixture(path)
	require.NoError(t, err)
	assert.ErrorContains(t, NewStore().Seed(f), `unknown parent "lipids"`)
}

func TestLoadFixture_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("properties: {name: ["), 0o600))

	_, err := LoadFixture(path)
	assert.Error(t, err)
}
