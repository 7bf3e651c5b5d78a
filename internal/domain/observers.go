package domain

import "sync"

// Observer receives one item.
type Observer[T any] func(item T)

// Observers is an ordered, append-only list of subscribers. The zero value is ready to use.
//
// Delivery always happens on a snapshot of the list taken by the caller, so observers run
// without any lock held and may subscribe, cancel or call back into their source.
type Observers[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription[T]
}

type subscription[T any] struct {
	id int
	fn Observer[T]
}

// Delivery is a frozen list of observers.
type Delivery[T any] []Observer[T]

// Subscribe appends fn and returns a function that removes it again.
func (o *Observers[T]) Subscribe(fn Observer[T]) (cancel func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	subID := o.nextID
	o.subs = append(o.subs, subscription[T]{id: subID, fn: fn})

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		kept := make([]subscription[T], 0, len(o.subs))
		for _, s := range o.subs {
			if s.id != subID {
				kept = append(kept, s)
			}
		}
		o.subs = kept
	}
}

// Snapshot freezes the current subscriber list.
func (o *Observers[T]) Snapshot() Delivery[T] {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.subs) == 0 {
		return nil
	}
	d := make(Delivery[T], len(o.subs))
	for i, s := range o.subs {
		d[i] = s.fn
	}
	return d
}

// Len returns the number of subscribers.
func (o *Observers[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}

// Notify delivers items to the current subscribers.
func (o *Observers[T]) Notify(items ...T) {
	o.Snapshot().Deliver(items...)
}

// Deliver hands every item, in order, to every observer in subscription order.
func (d Delivery[T]) Deliver(items ...T) {
	for _, item := range items {
		for _, fn := range d {
			fn(item)
		}
	}
}
