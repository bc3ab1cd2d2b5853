package hashmap

// Map represents the interface every map provided by this package has to implement
type Map[K comparable, V any] interface {
	// Size returns the amount of stored key-value pairs
	Size() int

	// Empty returns whether no key-value pairs are stored
	Empty() bool

	// Has returns whether a value is assigned to the given key
	Has(key K) bool

	// Lookup returns the value assigned to the given key and a boolean indicating if there was one
	Lookup(key K) (V, bool)

	// Get returns the value assigned to the given key.
	// May be the type's zero value if there is none; use Has or Lookup for this information.
	Get(key K) V

	// At returns the value assigned to the given key or an error matching ErrKeyNotFound if there is none
	At(key K) (V, error)

	// Insert inserts a key-value pair if the key is not present yet and reports whether it did so
	Insert(key K, value V) bool

	// Set sets a key-value pair, overwriting any existing value
	Set(key K, value V)

	// Erase deletes the value assigned to the given key and reports whether there was one
	Erase(key K) bool

	// Clear removes all key-value pairs
	Clear()
}
