package domain

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"feedme/internal/core/id"
)

// RecordConfig configures a Record.
type RecordConfig struct {
	Requester  Requester
	EntityName string

	// Collection is the collection resource; the record lives at Collection/ID.
	Collection string
	ID         id.ID
}

// Record holds the local snapshot of one server-side entity.
//
// Editors embed a Record and build their mutations on it. The snapshot is only ever replaced
// wholesale: Update receives the current value and returns the next one, so slices inside T
// must be copied before they are modified.
type Record[T any] struct {
	requester  Requester
	entityName string
	path       string
	id         id.ID

	mu     sync.RWMutex
	data   T
	loaded bool
}

// NewRecord creates an unloaded record.
func NewRecord[T any](cfg RecordConfig) *Record[T] {
	return &Record[T]{
		requester:  cfg.Requester,
		entityName: cfg.EntityName,
		path:       Path(cfg.Collection, cfg.ID),
		id:         cfg.ID,
	}
}

// ID returns the entity id.
func (r *Record[T]) ID() id.ID { return r.id }

// Path returns the entity resource path.
func (r *Record[T]) Path() string { return r.path }

// EntityName returns the entity name used in errors.
func (r *Record[T]) EntityName() string { return r.entityName }

// Requester returns the network boundary the record talks through.
func (r *Record[T]) Requester() Requester { return r.requester }

// Data returns the current snapshot.
func (r *Record[T]) Data() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

// Loaded reports whether a snapshot has been stored.
func (r *Record[T]) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Fetch reads the entity without storing it.
// A 404 is a NotFound error, any other failure a RemoteRead error.
func (r *Record[T]) Fetch(ctx context.Context) (T, error) {
	var data T
	if err := FetchEntity(ctx, r.requester, r.path, r.entityName, r.id, &data); err != nil {
		return data, fmt.Errorf("load %s: %w", r.entityName, err)
	}
	return data, nil
}

// Refresh re-reads the entity and replaces the snapshot. Observers are not involved.
func (r *Record[T]) Refresh(ctx context.Context) error {
	data, err := r.Fetch(ctx)
	if err != nil {
		return err
	}
	r.Update(func(T) T { return data })
	return nil
}

// Update replaces the snapshot with next(current) under the write lock.
func (r *Record[T]) Update(next func(current T) T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = next(r.data)
	r.loaded = true
}

// View runs fn with the current snapshot under the read lock.
// fn must not call back into the record.
func (r *Record[T]) View(fn func(current T)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn(r.data)
}

// Put sends a field update and re-reads the record: the response does not carry the
// complete entity.
func (r *Record[T]) Put(ctx context.Context, params any) error {
	if err := validate(ctx, params); err != nil {
		return err
	}
	if err := Send(ctx, r.requester, http.MethodPut, r.path, params, nil); err != nil {
		return fmt.Errorf("modify %s: %w", r.entityName, err)
	}
	return r.Refresh(ctx)
}

// Delete removes the entity on the server. The snapshot is kept for the caller to discard.
func (r *Record[T]) Delete(ctx context.Context) error {
	if err := Send(ctx, r.requester, http.MethodDelete, r.path, nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", r.entityName, err)
	}
	return nil
}
