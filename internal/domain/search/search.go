package search

import "strings"

// QueryFunc returns the candidates matching the typed text.
type QueryFunc[T any] func(text string) []T

// Search couples a Selection with the typed text and the query that produces candidates.
type Search[T any] struct {
	*Selection[T]
	query QueryFunc[T]
	text  string
}

// New creates a search and loads the candidates for empty text.
func New[T any](query QueryFunc[T], cfg Config[T]) *Search[T] {
	s := &Search[T]{Selection: NewSelection(cfg), query: query}
	s.SetResults(query(""))
	return s
}

// SetQuery updates the typed text and recomputes the candidates.
func (s *Search[T]) SetQuery(text string) {
	s.text = text
	s.SetResults(s.query(text))
}

// Text returns the typed text.
func (s *Search[T]) Text() string { return s.text }

// Clear empties the text and restores the full candidate list.
func (s *Search[T]) Clear() {
	s.SetQuery("")
}

// Commit commits with the typed text.
func (s *Search[T]) Commit() Outcome {
	return s.Selection.Commit(s.text)
}

// ContainsFold reports whether name contains text, ignoring case.
func ContainsFold(name, text string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(text))
}

// FilterByName keeps the items whose name contains text, ignoring case.
func FilterByName[T any](items []T, name func(T) string, text string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if ContainsFold(name(item), text) {
			out = append(out, item)
		}
	}
	return out
}
