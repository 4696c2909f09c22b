// Package memstore holds the in-process fallback collections the
// entity stores mirror into when no database is configured or a
// database operation misses.
package memstore

import "sync"

// Arena is an ordered, id-keyed collection. Insertion order is
// preserved across puts; deletes compact the order.
type Arena[T any] struct {
	mu    sync.RWMutex
	items []T
	index map[string]int
	idOf  func(T) string
}

// New creates an arena. idOf extracts the record id.
func New[T any](idOf func(T) string) *Arena[T] {
	return &Arena[T]{
		index: make(map[string]int),
		idOf:  idOf,
	}
}

// Len returns the number of records.
func (a *Arena[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.items)
}

// List returns all records in insertion order.
func (a *Arena[T]) List() []T {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]T, len(a.items))
	copy(out, a.items)
	return out
}

// Get returns the record with the given id.
func (a *Arena[T]) Get(id string) (T, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if i, ok := a.index[id]; ok {
		return a.items[i], true
	}
	var zero T
	return zero, false
}

// Find returns the first record matching pred, in insertion order.
func (a *Arena[T]) Find(pred func(T) bool) (T, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, item := range a.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Put inserts the record, or replaces an existing one in place.
func (a *Arena[T]) Put(item T) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.idOf(item)
	if i, ok := a.index[id]; ok {
		a.items[i] = item
		return
	}
	a.index[id] = len(a.items)
	a.items = append(a.items, item)
}

// Insert adds the record only if its id is not present yet.
func (a *Arena[T]) Insert(item T) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.idOf(item)
	if _, ok := a.index[id]; ok {
		return false
	}
	a.index[id] = len(a.items)
	a.items = append(a.items, item)
	return true
}

// Delete removes the record with the given id.
func (a *Arena[T]) Delete(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	i, ok := a.index[id]
	if !ok {
		return false
	}
	a.items = append(a.items[:i], a.items[i+1:]...)
	a.reindex()
	return true
}

// DeleteWhere removes every record matching pred and returns the count.
func (a *Arena[T]) DeleteWhere(pred func(T) bool) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	kept := a.items[:0]
	removed := 0
	for _, item := range a.items {
		if pred(item) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	a.items = kept
	a.reindex()
	return removed
}

// Clear removes every record and returns the count removed.
func (a *Arena[T]) Clear() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := len(a.items)
	a.items = nil
	a.index = make(map[string]int)
	return n
}

func (a *Arena[T]) reindex() {
	a.index = make(map[string]int, len(a.items))
	for i, item := range a.items {
		a.index[a.idOf(item)] = i
	}
}
