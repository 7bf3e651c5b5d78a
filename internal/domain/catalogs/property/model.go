// Package property provides the Property catalog: nutrients arranged in a parent-linked forest.
package property

import (
	"context"
	"strings"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/core/types"
	"feedme/internal/domain"
	"feedme/pkg/logger"
)

const (
	// Path is the collection resource.
	Path = "/properties"

	// EntityName is used in errors and logs.
	EntityName = "property"
)

// Property is a nutrient or classification node. Roots have no parent.
type Property struct {
	ID   id.ID  `json:"id"`
	Name string `json:"name"`

	// ParentID references another Property; nil for roots
	ParentID *id.ID `json:"parent_id,omitempty"`
}

// GetID implements domain.Entity.
func (p Property) GetID() id.ID { return p.ID }

// IsRoot reports whether the property has no parent.
func (p Property) IsRoot() bool { return p.ParentID == nil }

// Value is one nutrient amount of a summary, keyed by property.
type Value struct {
	PropertyID id.ID        `json:"property_id"`
	Value      types.Amount `json:"value"`
}

// CreateParams is the body of PUT /properties.
// ParentID is always sent; a root is created with an explicit null.
type CreateParams struct {
	Name     string `json:"name"`
	ParentID *id.ID `json:"parent_id"`
}

// Validate implements domain.Validatable.
func (p CreateParams) Validate(_ context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("property name is required")
	}
	return nil
}

// ModifyParams is the body of PUT /properties/{id}.
// A nil ParentID keeps the current parent; ClearParent makes the property a root.
type ModifyParams struct {
	Name        string `json:"name"`
	ParentID    *id.ID `json:"parent_id,omitempty"`
	ClearParent bool   `json:"clear_parent,omitempty"`
}

// Validate implements domain.Validatable.
func (p ModifyParams) Validate(_ context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("property name is required")
	}
	if p.ClearParent && p.ParentID != nil {
		return apperror.NewValidation("parent_id and clear_parent are exclusive")
	}
	return nil
}

// Collection is the cached property list.
type Collection = domain.RemoteCollection[Property]

// NewCollection creates the property cache.
func NewCollection(r domain.Requester, log *logger.Logger) *Collection {
	return domain.NewRemoteCollection(domain.CollectionConfig[Property]{
		Requester:  r,
		Path:       Path,
		EntityName: EntityName,
		Logger:     log,
	})
}
