package hashmap

import "iter"

// Iterator walks the entries of a table in insertion order.
// It is positioned before the first entry until Next is called.
type Iterator[K comparable, V any] struct {
	table *Table[K, V]
	entry *Entry[K, V]
}

// Iterate returns an iterator over all entries of the table
func (table *Table[K, V]) Iterate() Iterator[K, V] {
	return Iterator[K, V]{table: table}
}

// Next advances the iterator and reports whether it stands on an entry afterwards
func (it *Iterator[K, V]) Next() bool {
	if it.entry == nil {
		if it.table == nil {
			return false
		}
		it.entry = it.table.entries.head
		it.table = nil
	} else {
		it.entry = it.entry.Next()
	}
	return it.entry != nil
}

// Entry returns the entry the iterator stands on
func (it *Iterator[K, V]) Entry() *Entry[K, V] {
	return it.entry
}

// Key returns the key of the entry the iterator stands on
func (it *Iterator[K, V]) Key() K {
	return it.entry.key
}

// Val returns a pointer to the value of the entry the iterator stands on
func (it *Iterator[K, V]) Val() *V {
	return &it.entry.Value
}

// All returns an iterator over all key-value pairs in insertion order.
// The yielded key may be erased during the iteration.
func (table *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for entry := table.entries.head; entry != nil; entry = entry.Next() {
			if !yield(entry.key, entry.Value) {
				return
			}
		}
	}
}

// Keys returns an iterator over all keys in insertion order
func (table *Table[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for entry := table.entries.head; entry != nil; entry = entry.Next() {
			if !yield(entry.key) {
				return
			}
		}
	}
}

// Values returns an iterator over all values in insertion order
func (table *Table[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for entry := table.entries.head; entry != nil; entry = entry.Next() {
			if !yield(entry.Value) {
				return
			}
		}
	}
}

// Equal reports whether both tables hold the same key-value pairs, ignoring their order
func Equal[K, V comparable](a, b *Table[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is like Equal but compares values using eq
func EqualFunc[K comparable, V1, V2 any](a *Table[K, V1], b *Table[K, V2], eq func(V1, V2) bool) bool {
	if a.Size() != b.Size() {
		return false
	}
	for entry := a.Front(); entry != nil; entry = entry.Next() {
		other := b.Find(entry.key)
		if other == nil || !eq(entry.Value, other.Value) {
			return false
		}
	}
	return true
}
