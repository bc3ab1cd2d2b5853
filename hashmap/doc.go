/*
Package hashmap provides a generic hash table using separate chaining.

Entries live in an insertion-ordered sequence which owns them, while an array of buckets references them for
lookups. Pointers to entries stay valid until the entry itself is erased, no matter how often the table is resized.

Basic usage:

	table := hashmap.New[string, int](hashmap.WithHasher(hashmap.StringHasher))

	// no-op if "a" is present already
	table.Insert("a", 1)

	// inserts 0 first if "b" is missing
	*table.Ref("b") += 2

	// err matches hashmap.ErrKeyNotFound
	value, err := table.At("c")

	// insertion order
	for key, value := range table.All() {
		fmt.Println(key, value)
	}

Resizing:

The table starts with a single bucket. After every Insert, Erase and Ref it doubles its bucket count once
size >= capacity/2 and otherwise halves it once size <= capacity/8, never going below one bucket. Every resize
rehashes all entries.

Table is not safe for concurrent use. SyncMap guards a table with a mutex and ExpiringMap builds a cache with a
fixed value lifetime on top of it.
*/
package hashmap
