package hashmap

// Entry represents a single key-value pair stored in a Table.
// The key is fixed for the lifetime of the entry, the value may be changed freely through the Value field.
// A pointer to an entry stays valid until the entry itself is erased; inserting or erasing other entries and
// resizing the table never move it.
type Entry[K comparable, V any] struct {
	key   K
	Value V

	prev, next *Entry[K, V]
	erased     bool
}

// Key returns the key of the entry
func (entry *Entry[K, V]) Key() K {
	return entry.key
}

// Next returns the entry inserted after this one or nil if this is the last one.
// Calling Next on an erased entry resumes at the next live entry that followed it at the time of its erasure,
// which makes it safe to erase the current entry while walking the table.
func (entry *Entry[K, V]) Next() *Entry[K, V] {
	next := entry.next
	for next != nil && next.erased {
		next = next.next
	}
	return next
}

// Prev returns the entry inserted before this one or nil if this is the first one or the entry was erased
func (entry *Entry[K, V]) Prev() *Entry[K, V] {
	return entry.prev
}

// sequence is the insertion-ordered, doubly linked list owning all entries of a table
type sequence[K comparable, V any] struct {
	head, tail *Entry[K, V]
}

func (seq *sequence[K, V]) pushBack(key K, value V) *Entry[K, V] {
	entry := &Entry[K, V]{
		key:   key,
		Value: value,
		prev:  seq.tail,
	}
	if seq.tail == nil {
		seq.head = entry
	} else {
		seq.tail.next = entry
	}
	seq.tail = entry
	return entry
}

// remove unlinks the entry. Its next pointer is kept so iterators standing on it can still advance.
func (seq *sequence[K, V]) remove(entry *Entry[K, V]) {
	if entry.prev == nil {
		seq.head = entry.next
	} else {
		entry.prev.next = entry.next
	}
	if entry.next == nil {
		seq.tail = entry.prev
	} else {
		entry.next.prev = entry.prev
	}
	entry.prev = nil
	entry.erased = true
}

// reset erases every entry and empties the sequence
func (seq *sequence[K, V]) reset() {
	for entry := seq.head; entry != nil; entry = entry.next {
		entry.prev = nil
		entry.erased = true
	}
	seq.head = nil
	seq.tail = nil
}
