package hashmap

import "sync"

// SyncMap implements the Map interface by guarding a Table with a RWMutex in order to provide thread safety
type SyncMap[K comparable, V any] struct {
	mtx        sync.RWMutex
	underlying *Table[K, V]
}

var _ Map[int, any] = (*SyncMap[int, any])(nil)

// NewSync creates a new thread safe Map
func NewSync[K comparable, V any](opts ...Option[K]) *SyncMap[K, V] {
	return &SyncMap[K, V]{
		underlying: New[K, V](opts...),
	}
}

// Size returns the amount of stored key-value pairs
func (obj *SyncMap[K, V]) Size() int {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Size()
}

// Empty returns whether no key-value pairs are stored
func (obj *SyncMap[K, V]) Empty() bool {
	return obj.Size() == 0
}

// Has returns whether a value is assigned to the given key
func (obj *SyncMap[K, V]) Has(key K) bool {
	_, ok := obj.Lookup(key)
	return ok
}

// Lookup returns the value assigned to the given key and a boolean indicating if there was one
func (obj *SyncMap[K, V]) Lookup(key K) (V, bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Lookup(key)
}

// Get returns the value assigned to the given key.
// May be the type's zero value if there is none; use Has or Lookup for this information.
func (obj *SyncMap[K, V]) Get(key K) V {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Get(key)
}

// At returns the value assigned to the given key or a *KeyNotFoundError if there is none
func (obj *SyncMap[K, V]) At(key K) (V, error) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.At(key)
}

// Insert inserts a key-value pair if the key is not present yet and reports whether it did so
func (obj *SyncMap[K, V]) Insert(key K, value V) bool {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	return obj.underlying.Insert(key, value)
}

// Set sets a key-value pair, overwriting any existing value
func (obj *SyncMap[K, V]) Set(key K, value V) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.underlying.Set(key, value)
}

// Erase deletes the value assigned to the given key and reports whether there was one
func (obj *SyncMap[K, V]) Erase(key K) bool {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	return obj.underlying.Erase(key)
}

// Clear removes all key-value pairs
func (obj *SyncMap[K, V]) Clear() {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.underlying.Clear()
}

// Snapshot returns an independent copy of the underlying table
func (obj *SyncMap[K, V]) Snapshot() *Table[K, V] {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Clone()
}

// BootstrappedManipulation allows a thread safe direct manipulation of the underlying table by wrapping the given
// function in a lock of the underlying mutex.
// Neither the table nor any of its entries may be retained by the function.
func (obj *SyncMap[K, V]) BootstrappedManipulation(action func(underlying *Table[K, V])) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	action(obj.underlying)
}
