package property

import (
	"context"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/internal/domain"
)

// Editor wraps one property for modification.
type Editor struct {
	*domain.Record[Property]
}

// NewEditor creates an unloaded editor for propertyID.
func NewEditor(r domain.Requester, propertyID id.ID) *Editor {
	return &Editor{
		Record: domain.NewRecord[Property](domain.RecordConfig{
			Requester:  r,
			EntityName: EntityName,
			Collection: Path,
			ID:         propertyID,
		}),
	}
}

// Load fetches the property.
func (e *Editor) Load(ctx context.Context) error {
	return e.Refresh(ctx)
}

// Modify renames or re-parents the property, then re-reads it.
func (e *Editor) Modify(ctx context.Context, params ModifyParams) error {
	if params.ParentID != nil && *params.ParentID == e.ID() {
		return apperror.NewValidation("property cannot be its own parent").
			WithDetail("id", e.ID())
	}
	return e.Put(ctx, params)
}
