package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type highlight struct {
	index int
	on    bool
}

type recorder struct {
	highlights []highlight
	changes    []int
	selected   []string
	created    []string
}

func (r *recorder) config(autoselect bool) Config[string] {
	return Config[string]{
		Autoselect:  autoselect,
		OnHighlight: func(i int, on bool) { r.highlights = append(r.highlights, highlight{i, on}) },
		OnChange:    func(i int) { r.changes = append(r.changes, i) },
		OnSelect:    func(_ int, item string) { r.selected = append(r.selected, item) },
		OnNew:       func(text string) { r.created = append(r.created, text) },
	}
}

func index[T any](s *Selection[T]) int {
	i, _ := s.Selected()
	return i
}

func TestSelection_NoWraparound(t *testing.T) {
	s := NewSelection(Config[string]{})
	s.SetResults([]string{"egg", "bread", "cheese"})

	s.NavigateUp()
	assert.Equal(t, None, index(s))

	s.NavigateDown()
	s.NavigateDown()
	s.NavigateDown()
	assert.Equal(t, 2, index(s))

	s.NavigateDown()
	assert.Equal(t, 2, index(s))
}

func TestSelection_NavigateUpFromFirstClears(t *testing.T) {
	s := NewSelection(Config[string]{Autoselect: true})
	s.SetResults([]string{"egg", "bread"})
	require.Equal(t, 0, index(s))

	s.NavigateUp()
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestSelection_Autoselect(t *testing.T) {
	s := NewSelection(Config[string]{Autoselect: true})

	s.SetResults([]string{"egg"})
	assert.Equal(t, 0, index(s))

	s.SetResults(nil)
	assert.Equal(t, None, index(s))

	s.NavigateDown()
	assert.Equal(t, None, index(s), "empty list stays unselected")
}

func TestSelection_HighlightDeltas(t *testing.T) {
	var r recorder
	s := NewSelection(r.config(false))
	s.SetResults([]string{"a", "b", "c"})

	s.NavigateDown()
	s.NavigateDown()
	s.NavigateUp()
	s.NavigateUp()

	assert.Equal(t, []highlight{
		{0, true},
		{0, false}, {1, true},
		{1, false}, {0, true},
		{0, false},
	}, r.highlights)
	assert.Equal(t, []int{None, 0, 1, 0, None}, r.changes)
}

func TestSelection_UnchangedIndexReportsNothing(t *testing.T) {
	var r recorder
	s := NewSelection(r.config(false))
	s.SetResults([]string{"a", "b"})
	s.NavigateDown()
	s.NavigateDown()
	r.highlights = nil

	s.NavigateDown()
	assert.Empty(t, r.highlights)

	assert.True(t, s.Select(1))
	assert.Empty(t, r.highlights)
}

func TestSelection_SelectExplicit(t *testing.T) {
	var r recorder
	s := NewSelection(r.config(true))
	s.SetResults([]string{"a", "b", "c"})
	r.highlights = nil

	assert.True(t, s.Select(2))
	assert.Equal(t, []highlight{{0, false}, {2, true}}, r.highlights)

	assert.False(t, s.Select(3))
	assert.False(t, s.Select(-1))
	assert.Equal(t, 2, index(s))
}

func TestSelection_CommitSelected(t *testing.T) {
	var r recorder
	s := NewSelection(r.config(true))
	s.SetResults([]string{"egg", "bread"})
	s.NavigateDown()

	assert.Equal(t, CommitSelected, s.Commit("br"))
	assert.Equal(t, []string{"bread"}, r.selected)
	assert.Empty(t, r.created)
}

func TestSelection_CommitFreeText(t *testing.T) {
	var r recorder
	s := NewSelection(r.config(false))
	s.SetResults([]string{"egg"})

	assert.Equal(t, CommitNew, s.Commit("bagel"))
	assert.Equal(t, []string{"bagel"}, r.created)
	assert.Empty(t, r.selected)
}

func TestSelection_CommitWithoutHandlers(t *testing.T) {
	s := NewSelection(Config[string]{})
	s.SetResults([]string{"egg"})
	assert.Equal(t, CommitIgnored, s.Commit("x"))

	s.NavigateDown()
	assert.Equal(t, CommitIgnored, s.Commit("x"))
}

func TestSelection_SelectedWithoutOnSelectFallsBackToNew(t *testing.T) {
	var created []string
	s := NewSelection(Config[string]{
		Autoselect: true,
		OnNew:      func(text string) { created = append(created, text) },
	})
	s.SetResults([]string{"egg"})

	assert.Equal(t, CommitNew, s.Commit("eg"))
	assert.Equal(t, []string{"eg"}, created)
}

func TestSelection_Clear(t *testing.T) {
	var r recorder
	s := NewSelection(r.config(true))
	s.SetResults([]string{"a"})
	s.Clear()

	_, ok := s.SelectedItem()
	assert.False(t, ok)
	assert.Equal(t, highlight{0, false}, r.highlights[len(r.highlights)-1])
}
