// Package state holds the in-memory containers the synchronizers and entity
// services share. Containers are safe for concurrent use; reads return copies.
package state

import (
	"encoding/json"
	"slices"
	"sync"
)

// Source identifies who produced a change, so watchers can skip their own writes.
type Source string

const (
	SourceLocal   Source = "local"
	SourceRefresh Source = "refresh"
	SourceMirror  Source = "mirror"
	SourceDisk    Source = "disk"
)

// WatchFunc is called after every change, outside the container lock.
type WatchFunc func(src Source)

type watchers struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]WatchFunc
}

func (w *watchers) add(fn WatchFunc) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fns == nil {
		w.fns = make(map[int]WatchFunc)
	}

	id := w.nextID
	w.nextID++
	w.fns[id] = fn

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		delete(w.fns, id)
	}
}

func (w *watchers) notify(src Source) {
	w.mu.Lock()
	fns := make([]WatchFunc, 0, len(w.fns))

	for _, fn := range w.fns {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(src)
	}
}

// Container is a list of records of one entity family.
type Container[T any] struct {
	mu    sync.RWMutex
	items []T
	watchers
}

func NewContainer[T any]() *Container[T] {
	return &Container[T]{}
}

// All returns a copy of the current records, never nil.
func (c *Container[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)

	return out
}

func (c *Container[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Find returns the first record matching the predicate.
func (c *Container[T]) Find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if match(item) {
			return item, true
		}
	}

	var zero T

	return zero, false
}

// Replace swaps the whole list.
func (c *Container[T]) Replace(src Source, items []T) {
	c.mu.Lock()
	c.items = slices.Clone(items)
	c.mu.Unlock()

	c.notify(src)
}

// Update applies fn to the current list under the write lock.
func (c *Container[T]) Update(src Source, fn func(items []T) []T) {
	c.mu.Lock()
	c.items = fn(slices.Clone(c.items))
	c.mu.Unlock()

	c.notify(src)
}

// Watch registers fn for change notifications and returns its cancel func.
func (c *Container[T]) Watch(fn WatchFunc) func() {
	return c.add(fn)
}

func (c *Container[T]) MarshalJSON() ([]byte, error) {
	items := c.All()
	if items == nil {
		items = []T{}
	}

	return json.Marshal(items)
}

func (c *Container[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	c.Replace(SourceDisk, items)

	return nil
}

func (c *Container[T]) reset() {
	c.Replace(SourceDisk, nil)
}

// Value holds a single record, such as the current register session.
type Value[T any] struct {
	mu sync.RWMutex
	v  T
	watchers
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.v
}

func (v *Value[T]) Set(src Source, val T) {
	v.mu.Lock()
	v.v = val
	v.mu.Unlock()

	v.notify(src)
}

func (v *Value[T]) Watch(fn WatchFunc) func() {
	return v.add(fn)
}

func (v *Value[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Get())
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}

	v.Set(SourceDisk, val)

	return nil
}

func (v *Value[T]) reset() {
	var zero T
	v.Set(SourceDisk, zero)
}
