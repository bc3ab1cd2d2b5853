package hashmap

import "iter"

const (
	// DefaultCapacity is the amount of buckets of an empty table
	DefaultCapacity = 1

	// The table grows once its size reaches capacity/growDivisor and shrinks once its size drops to
	// capacity/shrinkDivisor. Both factors are powers of two, so capacity always stays one as well.
	growDivisor   = 2
	shrinkDivisor = 8
	resizeFactor  = 2
)

// Pair is a single key-value pair used to bulk-load a table
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Table is a hash table using separate chaining.
// Entries are kept in insertion order in a linked sequence which owns them; the buckets only reference entries of
// that sequence. The table grows when it is half full and shrinks when less than an eighth of its buckets are used.
//
// A Table is not safe for concurrent use; see SyncMap.
type Table[K comparable, V any] struct {
	hasher   Hasher[K]
	capacity int
	size     int
	buckets  [][]*Entry[K, V]
	entries  sequence[K, V]
}

var _ Map[int, any] = (*Table[int, any])(nil)

// New creates a new empty table
func New[K comparable, V any](opts ...Option[K]) *Table[K, V] {
	return newTable[K, V](buildOptions(opts).hasher)
}

// FromPairs creates a new table holding the given pairs.
// If a key occurs multiple times, its first occurrence wins.
func FromPairs[K comparable, V any](pairs []Pair[K, V], opts ...Option[K]) *Table[K, V] {
	table := New[K, V](opts...)
	for _, pair := range pairs {
		table.Insert(pair.Key, pair.Value)
	}
	return table
}

// Collect creates a new table holding all key-value pairs yielded by seq.
// If a key is yielded multiple times, its first occurrence wins.
func Collect[K comparable, V any](seq iter.Seq2[K, V], opts ...Option[K]) *Table[K, V] {
	table := New[K, V](opts...)
	for key, value := range seq {
		table.Insert(key, value)
	}
	return table
}

func newTable[K comparable, V any](hasher Hasher[K]) *Table[K, V] {
	return &Table[K, V]{
		hasher:   hasher,
		capacity: DefaultCapacity,
		buckets:  make([][]*Entry[K, V], DefaultCapacity),
	}
}

// Size returns the amount of stored key-value pairs
func (table *Table[K, V]) Size() int {
	return table.size
}

// Empty returns whether the table holds no key-value pairs
func (table *Table[K, V]) Empty() bool {
	return table.size == 0
}

// Capacity returns the current amount of buckets
func (table *Table[K, V]) Capacity() int {
	return table.capacity
}

// LoadFactor returns the ratio of stored key-value pairs to buckets
func (table *Table[K, V]) LoadFactor() float64 {
	return float64(table.size) / float64(table.capacity)
}

// HashFunction returns the hasher used by the table
func (table *Table[K, V]) HashFunction() Hasher[K] {
	return table.hasher
}

// locate returns the bucket the key belongs to and the key's position inside of it (-1 if it is not present)
func (table *Table[K, V]) locate(key K) (int, int) {
	bucket := int(table.hasher(key) % uint64(table.capacity))
	for i, entry := range table.buckets[bucket] {
		if entry.key == key {
			return bucket, i
		}
	}
	return bucket, -1
}

// add inserts the pair if the key is not present yet and returns the entry holding the key
func (table *Table[K, V]) add(key K, value V) (*Entry[K, V], bool) {
	bucket, i := table.locate(key)
	var (
		entry    *Entry[K, V]
		inserted bool
	)
	if i < 0 {
		entry = table.entries.pushBack(key, value)
		table.buckets[bucket] = append(table.buckets[bucket], entry)
		table.size++
		inserted = true
	} else {
		entry = table.buckets[bucket][i]
	}
	table.rebuildIfNeeded()
	return entry, inserted
}

// Insert inserts a key-value pair and reports whether it did so.
// If the key is already present, its value is left untouched.
func (table *Table[K, V]) Insert(key K, value V) bool {
	_, inserted := table.add(key, value)
	return inserted
}

// Erase removes the value assigned to the given key and reports whether there was one
func (table *Table[K, V]) Erase(key K) bool {
	bucket, i := table.locate(key)
	if i >= 0 {
		entries := table.buckets[bucket]
		last := len(entries) - 1
		entries[i], entries[last] = entries[last], entries[i]
		table.entries.remove(entries[last])
		entries[last] = nil
		table.buckets[bucket] = entries[:last]
		table.size--
	}
	table.rebuildIfNeeded()
	return i >= 0
}

// Find returns the entry holding the given key or nil if there is none
func (table *Table[K, V]) Find(key K) *Entry[K, V] {
	bucket, i := table.locate(key)
	if i < 0 {
		return nil
	}
	return table.buckets[bucket][i]
}

// Has returns whether a value is assigned to the given key
func (table *Table[K, V]) Has(key K) bool {
	return table.Find(key) != nil
}

// Lookup returns the value assigned to the given key and a boolean indicating if there was one
func (table *Table[K, V]) Lookup(key K) (V, bool) {
	entry := table.Find(key)
	if entry == nil {
		var zero V
		return zero, false
	}
	return entry.Value, true
}

// Get returns the value assigned to the given key.
// May be the type's zero value if there is none; use Has, Lookup or At for this information.
func (table *Table[K, V]) Get(key K) V {
	value, _ := table.Lookup(key)
	return value
}

// At returns the value assigned to the given key or a *KeyNotFoundError if there is none
func (table *Table[K, V]) At(key K) (V, error) {
	value, ok := table.Lookup(key)
	if !ok {
		return value, &KeyNotFoundError{Key: key}
	}
	return value, nil
}

// Ref returns a pointer to the value assigned to the given key, inserting the type's zero value first if there is
// none. The pointer stays valid until the key is erased or the table is cleared.
func (table *Table[K, V]) Ref(key K) *V {
	var zero V
	entry, _ := table.add(key, zero)
	return &entry.Value
}

// Set assigns the value to the given key, overwriting any existing one
func (table *Table[K, V]) Set(key K, value V) {
	*table.Ref(key) = value
}

// Clear removes all key-value pairs and resets the capacity to DefaultCapacity
func (table *Table[K, V]) Clear() {
	table.entries.reset()
	table.size = 0
	table.capacity = DefaultCapacity
	table.buckets = make([][]*Entry[K, V], DefaultCapacity)
}

// Front returns the first inserted entry or nil if the table is empty
func (table *Table[K, V]) Front() *Entry[K, V] {
	return table.entries.head
}

// Back returns the last inserted entry or nil if the table is empty
func (table *Table[K, V]) Back() *Entry[K, V] {
	return table.entries.tail
}

// Clone returns an independent copy of the table using the same hasher and capacity.
// Values are copied by assignment.
func (table *Table[K, V]) Clone() *Table[K, V] {
	clone := &Table[K, V]{
		hasher: table.hasher,
		size:   table.size,
	}
	for entry := table.entries.head; entry != nil; entry = entry.next {
		clone.entries.pushBack(entry.key, entry.Value)
	}
	clone.rebuild(table.capacity)
	return clone
}

// Move transfers all entries into a new table in constant time and leaves the receiver empty.
// Entry pointers obtained from the receiver stay valid and now belong to the returned table.
func (table *Table[K, V]) Move() *Table[K, V] {
	moved := *table
	*table = *newTable[K, V](table.hasher)
	return &moved
}

// rebuild replaces the bucket index with one of the given capacity holding every entry in sequence order
func (table *Table[K, V]) rebuild(capacity int) {
	table.buckets = make([][]*Entry[K, V], capacity)
	table.capacity = capacity
	for entry := table.entries.head; entry != nil; entry = entry.next {
		bucket := table.hasher(entry.key) % uint64(capacity)
		table.buckets[bucket] = append(table.buckets[bucket], entry)
	}
}

func (table *Table[K, V]) rebuildIfNeeded() {
	if table.size*growDivisor >= table.capacity {
		table.rebuild(table.capacity * resizeFactor)
	} else if table.size*shrinkDivisor <= table.capacity && table.capacity > DefaultCapacity {
		table.rebuild(table.capacity / resizeFactor)
	}
}
