package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
	"feedme/pkg/logger"
)

// Entity is anything the backend identifies by id.
type Entity interface {
	GetID() id.ID
}

// DecodeFunc converts one raw JSON element of a collection into an item.
type DecodeFunc[T any] func(raw json.RawMessage) (T, error)

// DecodeJSON is the default DecodeFunc.
func DecodeJSON[T any](raw json.RawMessage) (T, error) {
	var item T
	err := json.Unmarshal(raw, &item)
	return item, err
}

// CollectionConfig configures a RemoteCollection.
type CollectionConfig[T Entity] struct {
	Requester Requester

	// Path is the collection resource, e.g. "/ingredients"
	Path string

	// EntityName for error messages and logs
	EntityName string

	// Decode defaults to DecodeJSON
	Decode DecodeFunc[T]

	// Logger defaults to logger.Default()
	Logger *logger.Logger
}

// RemoteCollection mirrors one server-side collection.
//
// Refresh replaces the local items wholesale and never notifies; only items appended by Add
// (and the replay done by Initialize) reach observers. There is no diffing between
// refreshes. GetByID is a linear scan: collections hold tens to hundreds of entries.
type RemoteCollection[T Entity] struct {
	requester  Requester
	path       string
	entityName string
	decode     DecodeFunc[T]
	log        *logger.Logger

	mu        sync.RWMutex
	items     []T
	observers Observers[T]
}

// NewRemoteCollection creates an empty collection. Call Initialize or Refresh to load it.
func NewRemoteCollection[T Entity](cfg CollectionConfig[T]) *RemoteCollection[T] {
	decode := cfg.Decode
	if decode == nil {
		decode = DecodeJSON[T]
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	return &RemoteCollection[T]{
		requester:  cfg.Requester,
		path:       cfg.Path,
		entityName: cfg.EntityName,
		decode:     decode,
		log:        log.WithComponent("collection").With("entity", cfg.EntityName),
	}
}

// Path returns the collection resource path.
func (c *RemoteCollection[T]) Path() string { return c.path }

// Refresh re-reads the whole collection and swaps it in atomically.
// On failure the previous items stay in place.
func (c *RemoteCollection[T]) Refresh(ctx context.Context) error {
	_, _, err := c.refresh(ctx)
	return err
}

// Initialize refreshes the collection, then replays every item, in order, to the observers
// registered at that point. An observer subscribed before Initialize therefore sees each
// item exactly once.
func (c *RemoteCollection[T]) Initialize(ctx context.Context) error {
	items, delivery, err := c.refresh(ctx)
	if err != nil {
		return err
	}
	delivery.Deliver(items...)
	return nil
}

// refresh returns the swapped-in items and the observers registered at the swap.
// Items added after the swap are delivered by Add and are not part of the returned slice.
func (c *RemoteCollection[T]) refresh(ctx context.Context) ([]T, Delivery[T], error) {
	var raw []json.RawMessage
	if err := Fetch(ctx, c.requester, c.path, &raw); err != nil {
		return nil, nil, fmt.Errorf("refresh %s: %w", c.entityName, err)
	}

	items := make([]T, 0, len(raw))
	for i, elem := range raw {
		item, err := c.decode(elem)
		if err != nil {
			return nil, nil, fmt.Errorf("refresh %s: %w", c.entityName,
				apperror.NewRemoteRead(c.path, http.StatusOK).
					WithDetail("index", i).
					WithCause(err))
		}
		items = append(items, item)
	}

	c.mu.Lock()
	c.items = items
	delivery := c.observers.Snapshot()
	c.mu.Unlock()

	c.log.WithContext(ctx).Debugw("collection refreshed", "count", len(items))
	return items, delivery, nil
}

// Add creates an item on the server, appends the created item and notifies observers once.
// A rejected request leaves the collection untouched and notifies nobody.
func (c *RemoteCollection[T]) Add(ctx context.Context, params any) (T, error) {
	var zero T

	if err := validate(ctx, params); err != nil {
		return zero, err
	}

	var raw json.RawMessage
	if err := Send(ctx, c.requester, http.MethodPut, c.path, params, &raw); err != nil {
		return zero, fmt.Errorf("add %s: %w", c.entityName, err)
	}

	item, err := c.decode(raw)
	if err != nil {
		return zero, fmt.Errorf("add %s: %w", c.entityName,
			apperror.NewRemoteWrite(http.MethodPut, c.path, http.StatusOK).WithCause(err))
	}

	c.mu.Lock()
	c.items = append(c.items, item)
	delivery := c.observers.Snapshot()
	c.mu.Unlock()

	c.log.WithContext(ctx).Debugw("collection item added", "id", item.GetID())
	delivery.Deliver(item)
	return item, nil
}

// GetByID returns the item with the given id.
func (c *RemoteCollection[T]) GetByID(itemID id.ID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.GetID() == itemID {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// MustGet is GetByID returning a NotFound error instead of a flag.
func (c *RemoteCollection[T]) MustGet(itemID id.ID) (T, error) {
	item, ok := c.GetByID(itemID)
	if !ok {
		return item, apperror.NewNotFound(c.entityName, itemID)
	}
	return item, nil
}

// Items returns a copy of the items in cache order.
func (c *RemoteCollection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of cached items.
func (c *RemoteCollection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Filter returns the items matching keep, in cache order.
func (c *RemoteCollection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []T
	for _, item := range c.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// OnNewItem subscribes fn to items appended by Add and replayed by Initialize.
func (c *RemoteCollection[T]) OnNewItem(fn Observer[T]) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observers.Subscribe(fn)
}
