package hashmap

import (
	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
	"hash/maphash"
)

// Hasher maps a key to an unsigned integer.
// Keys that are equal must produce the same hash.
type Hasher[K any] func(key K) uint64

// DefaultHasher returns the standard hasher for any comparable key type.
// Every call creates a new random seed, so two default hashers generally disagree; a table keeps the hasher it was
// created with for its whole lifetime, including clones.
func DefaultHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(key K) uint64 {
		return maphash.Comparable(seed, key)
	}
}

// StringHasher hashes strings using xxHash
func StringHasher(key string) uint64 {
	return xxhash.Sum64String(key)
}

// IntegerHasher uses the integer itself as its hash
func IntegerHasher[K constraints.Integer](key K) uint64 {
	return uint64(key)
}
