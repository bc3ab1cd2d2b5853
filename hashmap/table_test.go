package hashmap_test

import (
	"errors"
	"github.com/google/go-cmp/cmp"
	"github.com/skybi/chaintable/hashmap"
	"iter"
	"math/rand"
	"slices"
	"testing"
)

func newIntTable[V any]() *hashmap.Table[int, V] {
	return hashmap.New[int, V](hashmap.WithHasher(hashmap.IntegerHasher[int]))
}

func checkShape[K comparable, V any](t *testing.T, table *hashmap.Table[K, V]) {
	t.Helper()
	size, capacity := table.Size(), table.Capacity()
	if capacity < hashmap.DefaultCapacity || capacity&(capacity-1) != 0 {
		t.Fatalf("capacity %d is not a power of two", capacity)
	}
	if 2*size > capacity {
		t.Fatalf("size %d exceeds half of the capacity %d", size, capacity)
	}
	if table.Empty() != (size == 0) {
		t.Fatalf("Empty() = %t with size %d", table.Empty(), size)
	}
}

func TestNewTable(t *testing.T) {
	table := hashmap.New[string, int]()
	if table.Size() != 0 || !table.Empty() {
		t.Fatalf("Expected an empty table, got size %d", table.Size())
	}
	if table.Capacity() != hashmap.DefaultCapacity {
		t.Fatalf("Expected capacity %d, got %d", hashmap.DefaultCapacity, table.Capacity())
	}
	if table.Front() != nil || table.Back() != nil {
		t.Fatal("Expected no entries in an empty table")
	}
	if table.HashFunction() == nil {
		t.Fatal("Expected a default hasher")
	}
}

func TestCapacityScenario(t *testing.T) {
	table := newIntTable[string]()

	pairs := []hashmap.Pair[int, string]{{1, "a"}, {2, "b"}, {3, "c"}}
	wantCapacities := []int{2, 4, 8}
	for i, pair := range pairs {
		if !table.Insert(pair.Key, pair.Value) {
			t.Fatalf("Failed to insert key %d", pair.Key)
		}
		if table.Capacity() != wantCapacities[i] {
			t.Fatalf("Expected capacity %d after %d inserts, got %d", wantCapacities[i], i+1, table.Capacity())
		}
	}

	entry := table.Find(2)
	if entry == nil {
		t.Fatal("Key 2 not found")
	}
	if entry.Key() != 2 || entry.Value != "b" {
		t.Errorf("Expected entry 2=b, got %d=%s", entry.Key(), entry.Value)
	}

	_, err := table.At(4)
	if !errors.Is(err, hashmap.ErrKeyNotFound) {
		t.Fatalf("Expected ErrKeyNotFound, got %v", err)
	}
	var notFound *hashmap.KeyNotFoundError
	if !errors.As(err, &notFound) || notFound.Key != 4 {
		t.Errorf("Expected a KeyNotFoundError for key 4, got %#v", err)
	}
}

func TestFromPairsFirstOccurrenceWins(t *testing.T) {
	table := hashmap.FromPairs([]hashmap.Pair[int, string]{{1, "x"}, {1, "y"}})
	if table.Size() != 1 {
		t.Fatalf("Expected size 1, got %d", table.Size())
	}
	value, err := table.At(1)
	if err != nil {
		t.Fatalf("Failed to get key 1: %v", err)
	}
	if value != "x" {
		t.Errorf("Expected value x, got %s", value)
	}
}

func TestCollect(t *testing.T) {
	var seq iter.Seq2[string, int] = func(yield func(string, int) bool) {
		for _, pair := range []hashmap.Pair[string, int]{{"a", 1}, {"b", 2}, {"a", 3}, {"c", 4}} {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}

	table := hashmap.Collect(seq, hashmap.WithHasher(hashmap.StringHasher))
	if table.Size() != 3 {
		t.Fatalf("Expected size 3, got %d", table.Size())
	}
	if got := table.Get("a"); got != 1 {
		t.Errorf("Expected the first value of a to win, got %d", got)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, slices.Collect(table.Keys())); diff != "" {
		t.Errorf("Unexpected key order (-want +got):\n%s", diff)
	}
}

func TestInsertKeepsExistingValue(t *testing.T) {
	table := hashmap.New[string, string]()
	if !table.Insert("k", "v1") {
		t.Fatal("Expected first insert to succeed")
	}
	if table.Insert("k", "v2") {
		t.Fatal("Expected second insert to be a no-op")
	}
	if got := table.Get("k"); got != "v1" {
		t.Errorf("Expected value v1, got %s", got)
	}
	if table.Size() != 1 {
		t.Errorf("Expected size 1, got %d", table.Size())
	}
}

func TestNoOpCallsRunResizeCheck(t *testing.T) {
	table := newIntTable[int]()
	table.Insert(1, 1)
	if table.Capacity() != 2 {
		t.Fatalf("Expected capacity 2, got %d", table.Capacity())
	}

	// size 1 with capacity 2 sits exactly on the growth threshold
	table.Insert(1, 2)
	if table.Capacity() != 4 {
		t.Errorf("Expected duplicate insert to grow the table to 4, got %d", table.Capacity())
	}

	table.Clear()
	table.Insert(1, 1)
	table.Ref(1)
	if table.Capacity() != 4 {
		t.Errorf("Expected ref on an existing key to grow the table to 4, got %d", table.Capacity())
	}
}

func TestEraseThenFind(t *testing.T) {
	table := hashmap.New[string, int]()
	table.Insert("k", 1)
	if !table.Erase("k") {
		t.Fatal("Expected erase to remove the key")
	}
	if table.Find("k") != nil {
		t.Fatal("Expected erased key to be absent")
	}
	if table.Erase("k") {
		t.Error("Expected erasing a missing key to be a no-op")
	}
	if _, ok := table.Lookup("k"); ok {
		t.Error("Expected lookup of erased key to fail")
	}
	if table.Size() != 0 {
		t.Errorf("Expected size 0, got %d", table.Size())
	}
}

func TestShrinking(t *testing.T) {
	table := newIntTable[int]()
	for i := 0; i < 8; i++ {
		table.Insert(i, i)
	}
	if table.Capacity() != 32 {
		t.Fatalf("Expected capacity 32 after 8 inserts, got %d", table.Capacity())
	}

	wantCapacities := []int{32, 32, 32, 16, 16, 8, 4, 2}
	for i := 0; i < 8; i++ {
		table.Erase(i)
		if table.Capacity() != wantCapacities[i] {
			t.Fatalf("Expected capacity %d after erasing %d keys, got %d", wantCapacities[i], i+1, table.Capacity())
		}
	}

	table.Erase(42)
	if table.Capacity() != 1 {
		t.Fatalf("Expected capacity 1 after erasing a missing key, got %d", table.Capacity())
	}
	table.Erase(42)
	if table.Capacity() != hashmap.DefaultCapacity {
		t.Fatalf("Expected capacity to stay at %d, got %d", hashmap.DefaultCapacity, table.Capacity())
	}
}

func TestRefRoundTrip(t *testing.T) {
	table := hashmap.New[string, int]()

	ref := table.Ref("missing")
	if *ref != 0 {
		t.Fatalf("Expected zero value, got %d", *ref)
	}
	if table.Size() != 1 {
		t.Fatalf("Expected ref to insert the key, got size %d", table.Size())
	}

	*ref = 42
	if got := table.Get("missing"); got != 42 {
		t.Errorf("Expected value 42, got %d", got)
	}

	// the reference survives resizes caused by other keys
	for i := 0; i < 100; i++ {
		table.Set(string(rune('a'+i%26))+string(rune('A'+i/26)), i)
	}
	*ref = 7
	if got := table.Get("missing"); got != 7 {
		t.Errorf("Expected value 7 after resizing, got %d", got)
	}

	table.Set("missing", 9)
	if *table.Ref("missing") != 9 {
		t.Errorf("Expected Set to overwrite the value")
	}
}

func TestInsertionOrder(t *testing.T) {
	table := hashmap.New[int, int]()
	rng := rand.New(rand.NewSource(7))

	var want []int
	for len(want) < 500 {
		key := rng.Intn(10_000)
		if table.Insert(key, len(want)) {
			want = append(want, key)
		}
	}

	if diff := cmp.Diff(want, slices.Collect(table.Keys())); diff != "" {
		t.Fatalf("Keys are not yielded in insertion order (-want +got):\n%s", diff)
	}

	i := 0
	for key, value := range table.All() {
		if key != want[i] || value != i {
			t.Fatalf("Expected %d=%d at position %d, got %d=%d", want[i], i, i, key, value)
		}
		i++
	}

	i = len(want) - 1
	for entry := table.Back(); entry != nil; entry = entry.Prev() {
		if entry.Key() != want[i] {
			t.Fatalf("Expected key %d at position %d walking backwards, got %d", want[i], i, entry.Key())
		}
		i--
	}
	if i != -1 {
		t.Fatalf("Walking backwards stopped at position %d", i)
	}
}

func TestRandomOperationsAgainstBuiltinMap(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		rng := rand.New(rand.NewSource(seed))
		table := hashmap.New[int, int]()
		want := make(map[int]int)

		for step := 0; step < 5_000; step++ {
			key := rng.Intn(300)
			switch rng.Intn(3) {
			case 0:
				if table.Insert(key, step) {
					want[key] = step
				}
			case 1:
				table.Erase(key)
				delete(want, key)
			case 2:
				*table.Ref(key) = step
				want[key] = step
			}
			checkShape(t, table)
			if table.Size() != len(want) {
				t.Fatalf("seed %d step %d: expected size %d, got %d", seed, step, len(want), table.Size())
			}
		}

		for key, value := range want {
			entry := table.Find(key)
			if entry == nil {
				t.Fatalf("seed %d: key %d not reachable", seed, key)
			}
			if entry.Value != value {
				t.Errorf("seed %d: expected %d=%d, got %d", seed, key, value, entry.Value)
			}
		}

		seen := make(map[int]struct{})
		for key := range table.Keys() {
			if _, dup := seen[key]; dup {
				t.Fatalf("seed %d: key %d yielded twice", seed, key)
			}
			seen[key] = struct{}{}
		}
		if len(seen) != len(want) {
			t.Fatalf("seed %d: iterated %d keys, expected %d", seed, len(seen), len(want))
		}
	}
}

func TestCollidingHasher(t *testing.T) {
	table := hashmap.New[string, int](hashmap.WithHasher(func(string) uint64 { return 7 }))
	keys := []string{"a", "b", "c", "d", "e", "f"}
	for i, key := range keys {
		table.Insert(key, i)
	}

	table.Erase("b")
	table.Erase("e")

	for i, key := range keys {
		value, ok := table.Lookup(key)
		if key == "b" || key == "e" {
			if ok {
				t.Errorf("Expected %s to be erased", key)
			}
			continue
		}
		if !ok || value != i {
			t.Errorf("Expected %s=%d, got (%d, %t)", key, i, value, ok)
		}
	}
	if diff := cmp.Diff([]string{"a", "c", "d", "f"}, slices.Collect(table.Keys())); diff != "" {
		t.Errorf("Unexpected key order (-want +got):\n%s", diff)
	}
}

func TestClear(t *testing.T) {
	table := newIntTable[int]()
	for i := 0; i < 20; i++ {
		table.Insert(i, i)
	}
	first := table.Front()

	table.Clear()
	if table.Size() != 0 || !table.Empty() {
		t.Fatalf("Expected an empty table, got size %d", table.Size())
	}
	if table.Capacity() != hashmap.DefaultCapacity {
		t.Fatalf("Expected capacity %d, got %d", hashmap.DefaultCapacity, table.Capacity())
	}
	if table.Front() != nil || table.Has(0) {
		t.Fatal("Expected no entries after clear")
	}
	if first.Next() != nil {
		t.Error("Expected entries to be erased by clear")
	}

	table.Insert(1, 1)
	if table.Get(1) != 1 || table.Size() != 1 {
		t.Error("Expected the table to be usable after clear")
	}
}

func TestCloneIndependence(t *testing.T) {
	original := hashmap.FromPairs([]hashmap.Pair[int, string]{{1, "a"}, {2, "b"}, {3, "c"}})
	clone := original.Clone()

	if !hashmap.Equal(original, clone) {
		t.Fatal("Expected clone to equal the original")
	}
	if clone.Capacity() != original.Capacity() {
		t.Errorf("Expected capacity %d, got %d", original.Capacity(), clone.Capacity())
	}
	if slices.Collect(clone.Keys())[0] != 1 {
		t.Error("Expected clone to keep the insertion order")
	}
	hasher, cloneHasher := original.HashFunction(), clone.HashFunction()
	if hasher(123) != cloneHasher(123) {
		t.Error("Expected clone to share the hasher")
	}

	clone.Set(1, "z")
	clone.Insert(4, "d")
	if original.Get(1) != "a" || original.Has(4) {
		t.Error("Mutating the clone changed the original")
	}

	original.Erase(2)
	if !clone.Has(2) {
		t.Error("Mutating the original changed the clone")
	}
	if hashmap.Equal(original, clone) {
		t.Error("Expected diverged tables to differ")
	}
}

func TestMoveLeavesSourceEmpty(t *testing.T) {
	source := hashmap.FromPairs([]hashmap.Pair[int, string]{{1, "a"}, {2, "b"}})
	entry := source.Find(2)

	moved := source.Move()
	if source.Size() != 0 || !source.Empty() {
		t.Fatalf("Expected the source to be empty, got size %d", source.Size())
	}
	if source.Capacity() != hashmap.DefaultCapacity || source.Front() != nil {
		t.Fatal("Expected the source to be reset")
	}
	if moved.Size() != 2 || moved.Get(1) != "a" {
		t.Fatalf("Expected the moved table to hold the entries, got size %d", moved.Size())
	}
	if moved.Find(2) != entry {
		t.Error("Expected entries to survive the move")
	}

	source.Insert(3, "c")
	if source.Size() != 1 || moved.Has(3) {
		t.Error("Expected the source to be usable and independent after the move")
	}
}

func TestEqualFunc(t *testing.T) {
	a := hashmap.FromPairs([]hashmap.Pair[string, int]{{"x", 1}, {"y", 2}})
	b := hashmap.FromPairs([]hashmap.Pair[string, string]{{"y", "2"}, {"x", "1"}})

	eq := func(v int, s string) bool { return string(rune('0'+v)) == s }
	if !hashmap.EqualFunc(a, b, eq) {
		t.Error("Expected tables to be equal regardless of order")
	}
	b.Set("x", "3")
	if hashmap.EqualFunc(a, b, eq) {
		t.Error("Expected tables with different values to differ")
	}
}
