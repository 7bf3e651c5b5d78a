package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type food struct {
	id   int
	name string
}

func foods() []food {
	return []food{{1, "Egg"}, {2, "Bread"}, {3, "Cream cheese"}, {4, "Bagel"}}
}

func byName(f food) string { return f.name }

func TestSearch_QueryReplacesCandidates(t *testing.T) {
	var picked []int
	s := New(func(text string) []food {
		return FilterByName(foods(), byName, text)
	}, Config[food]{
		Autoselect: true,
		OnSelect:   func(_ int, f food) { picked = append(picked, f.id) },
	})
	assert.Equal(t, 4, s.Len())

	s.SetQuery("BA")
	assert.Equal(t, []food{{4, "Bagel"}}, s.Items())
	assert.Equal(t, "BA", s.Text())

	assert.Equal(t, CommitSelected, s.Commit())
	assert.Equal(t, []int{4}, picked)

	s.Clear()
	assert.Equal(t, 4, s.Len())
	assert.Empty(t, s.Text())
}

func TestSearch_NoMatchCommitsText(t *testing.T) {
	var created []string
	s := New(func(text string) []food {
		return FilterByName(foods(), byName, text)
	}, Config[food]{
		Autoselect: true,
		OnNew:      func(text string) { created = append(created, text) },
	})

	s.SetQuery("toast")
	assert.Zero(t, s.Len())
	assert.Equal(t, CommitNew, s.Commit())
	assert.Equal(t, []string{"toast"}, created)
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Cream cheese", "CHEE"))
	assert.True(t, ContainsFold("egg", ""))
	assert.False(t, ContainsFold("egg", "eggs"))
}
