// Package dish provides the Dish catalog: named, reusable ingredient compositions that meals
// instantiate as meal dishes.
package dish

import (
	"context"
	"strings"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/domain"
	"feedme/pkg/logger"
)

const (
	// Path is the collection resource.
	Path = "/dishes"

	EntityName = "dish"
)

// Dish is a named template.
type Dish struct {
	ID   id.ID  `json:"id"`
	Name string `json:"name"`
}

// GetID implements domain.Entity.
func (d Dish) GetID() id.ID { return d.ID }

// CreateParams is the body of PUT /dishes.
type CreateParams struct {
	Name string `json:"name"`
}

// Validate implements domain.Validatable.
func (p CreateParams) Validate(_ context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("dish name is required")
	}
	return nil
}

// ModifyParams is the body of PUT /dishes/{id}.
type ModifyParams = CreateParams

// Collection is the cached dish list.
type Collection = domain.RemoteCollection[Dish]

// NewCollection creates the dish cache.
func NewCollection(r domain.Requester, log *logger.Logger) *Collection {
	return domain.NewRemoteCollection(domain.CollectionConfig[Dish]{
		Requester:  r,
		Path:       Path,
		EntityName: EntityName,
		Logger:     log,
	})
}

// Editor wraps one dish.
type Editor struct {
	*domain.Record[Dish]
}

// NewEditor creates an unloaded editor for dishID.
func NewEditor(r domain.Requester, dishID id.ID) *Editor {
	return &Editor{
		Record: domain.NewRecord[Dish](domain.RecordConfig{
			Requester:  r,
			EntityName: EntityName,
			Collection: Path,
			ID:         dishID,
		}),
	}
}

// Load fetches the dish.
func (e *Editor) Load(ctx context.Context) error {
	return e.Refresh(ctx)
}

// Rename changes the dish name, then re-reads it.
func (e *Editor) Rename(ctx context.Context, name string) error {
	return e.Put(ctx, ModifyParams{Name: name})
}
