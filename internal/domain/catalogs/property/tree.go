package property

import (
	"slices"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
)

// Lookup resolves a property id. *Collection satisfies it.
type Lookup interface {
	GetByID(id.ID) (Property, bool)
}

// MapLookup is a Lookup over an in-memory set of properties.
type MapLookup map[id.ID]Property

// GetByID implements Lookup.
func (m MapLookup) GetByID(propertyID id.ID) (Property, bool) {
	p, ok := m[propertyID]
	return p, ok
}

// NewMapLookup indexes props by id.
func NewMapLookup(props ...Property) MapLookup {
	m := make(MapLookup, len(props))
	for _, p := range props {
		m[p.ID] = p
	}
	return m
}

// ancestry walks parent links from p upwards and returns [p.ID, parent, ..., root].
func ancestry(p Property, lookup Lookup) ([]id.ID, error) {
	path := []id.ID{p.ID}
	visited := map[id.ID]struct{}{p.ID: {}}

	current := p
	for current.ParentID != nil {
		parentID := *current.ParentID
		if _, seen := visited[parentID]; seen {
			return nil, apperror.NewCyclicHierarchy(EntityName, p.ID).
				WithDetail("repeated", parentID)
		}

		parent, ok := lookup.GetByID(parentID)
		if !ok {
			return nil, apperror.NewNotFound(EntityName, parentID)
		}

		visited[parentID] = struct{}{}
		path = append(path, parentID)
		current = parent
	}

	return path, nil
}

// Depth returns the number of parent links between p and its root (roots are 0).
func Depth(p Property, lookup Lookup) (int, error) {
	path, err := ancestry(p, lookup)
	if err != nil {
		return 0, err
	}
	return len(path) - 1, nil
}

// SortKey returns the materialized path [root, ..., p.ID].
func SortKey(p Property, lookup Lookup) ([]id.ID, error) {
	path, err := ancestry(p, lookup)
	if err != nil {
		return nil, err
	}
	slices.Reverse(path)
	return path, nil
}

// CompareKeys orders sort keys element by element; an ancestor (strict prefix) comes first.
func CompareKeys(a, b []id.ID) int {
	return slices.Compare(a, b)
}

// SortHierarchically returns props in pre-order: each parent directly followed by its subtree.
func SortHierarchically(props []Property, lookup Lookup) ([]Property, error) {
	type keyed struct {
		prop Property
		key  []id.ID
	}

	rows := make([]keyed, 0, len(props))
	for _, p := range props {
		key, err := SortKey(p, lookup)
		if err != nil {
			return nil, err
		}
		rows = append(rows, keyed{prop: p, key: key})
	}

	slices.SortStableFunc(rows, func(a, b keyed) int {
		return CompareKeys(a.key, b.key)
	})

	out := make([]Property, len(rows))
	for i, r := range rows {
		out[i] = r.prop
	}
	return out, nil
}
