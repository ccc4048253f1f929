package store

import (
	"sort"
	"sync"
)

// Collection is a keyed set of entities of one kind for one team. It is the
// single read model for every screen showing that kind: all writes go
// through Replace/Upsert/Remove, and every subscriber observes the same
// sequence of snapshots.
type Collection[T any] struct {
	id   func(T) string
	less func(a, b T) bool

	// wmu serializes writes end-to-end, including observer notification,
	// so concurrent writers cannot deliver snapshots out of order.
	wmu sync.Mutex

	mu      sync.RWMutex
	items   map[string]T
	subs    map[int]func([]T)
	nextSub int
}

// NewCollection creates a collection keyed by id. If less is non-nil,
// snapshots are sorted with it (message streams are time-ordered; other
// kinds don't care).
func NewCollection[T any](id func(T) string, less func(a, b T) bool) *Collection[T] {
	return &Collection[T]{
		id:    id,
		less:  less,
		items: make(map[string]T),
		subs:  make(map[int]func([]T)),
	}
}

// Replace swaps the full collection contents for an authoritative server
// fetch result.
func (c *Collection[T]) Replace(items []T) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.mu.Lock()
	c.items = make(map[string]T, len(items))
	for _, item := range items {
		c.items[c.id(item)] = item
	}
	c.mu.Unlock()

	c.notify()
}

// Upsert inserts or wholesale-replaces one item by id. Items fetched
// concurrently are untouched.
func (c *Collection[T]) Upsert(item T) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.mu.Lock()
	c.items[c.id(item)] = item
	c.mu.Unlock()

	c.notify()
}

// Remove deletes an item by id. Unknown ids are a no-op.
func (c *Collection[T]) Remove(id string) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.mu.Lock()
	if _, ok := c.items[id]; !ok {
		c.mu.Unlock()
		return
	}
	delete(c.items, id)
	c.mu.Unlock()

	c.notify()
}

// Get returns the item with the given id, if present.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// Len returns the number of items currently held.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Snapshot returns the current contents as a fresh slice.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Subscribe registers an observer that is called synchronously with the
// current snapshot, then again after every Replace/Upsert/Remove. The
// returned function unsubscribes. Observers must not write back into the
// same collection.
func (c *Collection[T]) Subscribe(observer func([]T)) func() {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.mu.Lock()
	key := c.nextSub
	c.nextSub++
	c.subs[key] = observer
	c.mu.Unlock()

	c.mu.RLock()
	snapshot := c.snapshotLocked()
	c.mu.RUnlock()
	observer(snapshot)

	return func() {
		c.mu.Lock()
		delete(c.subs, key)
		c.mu.Unlock()
	}
}

// notify delivers the current snapshot to every subscriber. Called with
// wmu held but not mu, so observers can read the store freely.
func (c *Collection[T]) notify() {
	c.mu.RLock()
	snapshot := c.snapshotLocked()
	subs := make([]func([]T), 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub)
	}
	c.mu.RUnlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}

func (c *Collection[T]) snapshotLocked() []T {
	snapshot := make([]T, 0, len(c.items))
	for _, item := range c.items {
		snapshot = append(snapshot, item)
	}
	if c.less != nil {
		sort.Slice(snapshot, func(i, j int) bool { return c.less(snapshot[i], snapshot[j]) })
	}
	return snapshot
}
