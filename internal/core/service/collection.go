package service

import "sync"

// Collection is the single optimistic-update primitive shared by every page:
// a refetch replaces the whole snapshot, a successful write applies the
// equivalent local patch (insert / remove / patch-by-id) so renders reflect
// the change without waiting for another round trip. Relative order of
// surviving items is always preserved.
type Collection[T any] struct {
	mu    sync.RWMutex
	keyOf func(T) int64
	items []T
}

// NewCollection builds an empty collection keyed by keyOf.
func NewCollection[T any](keyOf func(T) int64) *Collection[T] {
	return &Collection[T]{keyOf: keyOf}
}

// ReplaceAll swaps in a fresh snapshot, preserving input order.
func (c *Collection[T]) ReplaceAll(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]T, len(items))
	copy(c.items, items)
}

// Insert appends a newly created item.
func (c *Collection[T]) Insert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Remove deletes the item with the given key. Reports whether it was present.
func (c *Collection[T]) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if c.keyOf(item) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// PatchByID applies patch to the item with the given key in place.
// Reports whether the item was present.
func (c *Collection[T]) PatchByID(id int64, patch func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.keyOf(c.items[i]) == id {
			patch(&c.items[i])
			return true
		}
	}
	return false
}

// Items returns an order-preserving copy of the snapshot.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items currently held.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
