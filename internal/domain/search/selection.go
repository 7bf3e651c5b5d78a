// Package search provides the keyboard-driven selection used by incremental search pickers.
package search

// None is the index reported when nothing is selected.
const None = -1

// Outcome tells which callback a commit fired.
type Outcome int

const (
	// Nothing fired: no selection and no free-text handler
	CommitIgnored Outcome = iota
	CommitSelected
	CommitNew
)

// Config wires a Selection to its consumer. Every callback is optional.
type Config[T any] struct {
	// Autoselect selects the first candidate whenever the candidates are replaced
	Autoselect bool

	// OnHighlight receives highlight deltas: the old index turned off, the new one on
	OnHighlight func(index int, highlighted bool)

	// OnChange receives the selected index (None for no selection) after every transition
	OnChange func(index int)

	// OnSelect receives the committed candidate
	OnSelect func(index int, item T)

	// OnNew receives the typed text when committing without a selection
	OnNew func(text string)
}

// Selection is the state machine behind a search picker: NoneSelected or Selected(i) over a
// replaceable candidate list. It is not safe for concurrent use; drive it from one UI loop.
type Selection[T any] struct {
	cfg      Config[T]
	items    []T
	selected int
}

// NewSelection creates a selection with no candidates.
func NewSelection[T any](cfg Config[T]) *Selection[T] {
	return &Selection[T]{cfg: cfg, selected: None}
}

// Items returns the current candidates.
func (s *Selection[T]) Items() []T { return s.items }

// Len returns the number of candidates.
func (s *Selection[T]) Len() int { return len(s.items) }

// Selected returns the selected index.
func (s *Selection[T]) Selected() (int, bool) {
	return s.selected, s.selected != None
}

// SelectedItem returns the selected candidate.
func (s *Selection[T]) SelectedItem() (T, bool) {
	if s.selected == None {
		var zero T
		return zero, false
	}
	return s.items[s.selected], true
}

// SetResults replaces the candidates. With autoselect the first one is selected, otherwise
// nothing is. The previous candidates are gone, so only the new highlight is reported.
func (s *Selection[T]) SetResults(items []T) {
	s.items = items
	s.selected = None
	if s.cfg.Autoselect && len(items) > 0 {
		s.selected = 0
		s.highlight(0, true)
	}
	s.changed()
}

// NavigateDown moves the selection one candidate down, stopping at the last one.
func (s *Selection[T]) NavigateDown() {
	switch {
	case len(s.items) == 0:
		return
	case s.selected == None:
		s.move(0)
	case s.selected+1 < len(s.items):
		s.move(s.selected + 1)
	}
}

// NavigateUp moves the selection one candidate up; from the first candidate it clears the
// selection.
func (s *Selection[T]) NavigateUp() {
	if s.selected == None {
		return
	}
	s.move(s.selected - 1)
}

// Select selects index i explicitly, e.g. on hover. Out-of-range indexes are ignored.
func (s *Selection[T]) Select(i int) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	if i != s.selected {
		s.move(i)
	}
	return true
}

// Clear drops the selection.
func (s *Selection[T]) Clear() {
	if s.selected != None {
		s.move(None)
	}
}

// Commit fires OnSelect for the selected candidate, or OnNew with text when nothing is
// selected (or no OnSelect is registered). At most one callback fires.
func (s *Selection[T]) Commit(text string) Outcome {
	if s.selected != None && s.cfg.OnSelect != nil {
		s.cfg.OnSelect(s.selected, s.items[s.selected])
		return CommitSelected
	}
	if s.cfg.OnNew != nil {
		s.cfg.OnNew(text)
		return CommitNew
	}
	return CommitIgnored
}

// move transitions to next and reports exactly the highlight delta.
func (s *Selection[T]) move(next int) {
	prev := s.selected
	s.selected = next
	if prev != None {
		s.highlight(prev, false)
	}
	if next != None {
		s.highlight(next, true)
	}
	s.changed()
}

func (s *Selection[T]) highlight(i int, on bool) {
	if s.cfg.OnHighlight != nil {
		s.cfg.OnHighlight(i, on)
	}
}

func (s *Selection[T]) changed() {
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(s.selected)
	}
}
