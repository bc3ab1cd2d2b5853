package hashmap

import (
	"github.com/skybi/chaintable/internal/task"
	"sync"
	"time"
)

type expiringEntry[T any] struct {
	raw      T
	inserted time.Time
}

// ExpiringMap implements the Map interface and wraps a SyncMap in order to implement value expiration.
// Values are kept in the order they were last set, so the oldest ones are always at the front of the underlying
// table.
type ExpiringMap[K comparable, V any] struct {
	locked      *SyncMap[K, *expiringEntry[V]]
	lifetime    time.Duration
	now         func() time.Time
	taskMtx     sync.Mutex
	cleanupTask *task.RepeatingTask
}

var _ Map[int, any] = (*ExpiringMap[int, any])(nil)

// NewExpiring creates a new expiring map whose values exist for a specific lifetime.
// Expired values will not be removed before Cleanup or ScheduleCleanupTask is called.
// Until then this map behaves exactly like a SyncMap.
func NewExpiring[K comparable, V any](lifetime time.Duration, opts ...Option[K]) *ExpiringMap[K, V] {
	return &ExpiringMap[K, V]{
		locked:   NewSync[K, *expiringEntry[V]](opts...),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// ScheduleCleanupTask schedules the task that cleans up expired values in a specific interval.
// A call to StopCleanupTask as soon as the map is no longer needed is highly recommended because it would not be
// garbage collected otherwise.
func (obj *ExpiringMap[K, V]) ScheduleCleanupTask(tick time.Duration) {
	obj.taskMtx.Lock()
	defer obj.taskMtx.Unlock()
	if obj.cleanupTask != nil {
		return
	}
	obj.cleanupTask = task.NewRepeating(func() {
		obj.Cleanup()
	}, tick)
	obj.cleanupTask.Start()
}

// StopCleanupTask stops the cleanup task and runs the cleanup one last time
func (obj *ExpiringMap[K, V]) StopCleanupTask() {
	obj.taskMtx.Lock()
	defer obj.taskMtx.Unlock()
	if obj.cleanupTask == nil {
		return
	}
	obj.cleanupTask.Stop(true)
	obj.cleanupTask = nil
}

// Cleanup removes all expired values and returns their amount
func (obj *ExpiringMap[K, V]) Cleanup() int {
	removed := 0
	obj.locked.BootstrappedManipulation(func(table *Table[K, *expiringEntry[V]]) {
		now := obj.now()
		for entry := table.Front(); entry != nil; {
			if now.Sub(entry.Value.inserted) <= obj.lifetime {
				break
			}
			next := entry.Next()
			table.Erase(entry.Key())
			removed++
			entry = next
		}
	})
	return removed
}

// Size returns the amount of stored key-value pairs
func (obj *ExpiringMap[K, V]) Size() int {
	return obj.locked.Size()
}

// Empty returns whether no key-value pairs are stored
func (obj *ExpiringMap[K, V]) Empty() bool {
	return obj.locked.Empty()
}

// Has returns whether a value is assigned to the given key
func (obj *ExpiringMap[K, V]) Has(key K) bool {
	return obj.locked.Has(key)
}

// Lookup returns the value assigned to the given key and a boolean indicating if there was one
func (obj *ExpiringMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := obj.locked.Lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	return val.raw, true
}

// Get returns the value assigned to the given key.
// May be the type's zero value if there is none; use Has or Lookup for this information.
func (obj *ExpiringMap[K, V]) Get(key K) V {
	val, _ := obj.Lookup(key)
	return val
}

// At returns the value assigned to the given key or a *KeyNotFoundError if there is none
func (obj *ExpiringMap[K, V]) At(key K) (V, error) {
	val, err := obj.locked.At(key)
	if err != nil {
		var zero V
		return zero, err
	}
	return val.raw, nil
}

// Insert inserts a key-value pair if the key is not present yet and reports whether it did so.
// An existing value keeps its age.
func (obj *ExpiringMap[K, V]) Insert(key K, value V) bool {
	var inserted bool
	obj.locked.BootstrappedManipulation(func(table *Table[K, *expiringEntry[V]]) {
		if table.Has(key) {
			return
		}
		inserted = table.Insert(key, &expiringEntry[V]{
			raw:      value,
			inserted: obj.now(),
		})
	})
	return inserted
}

// Set sets a key-value pair and resets its age
func (obj *ExpiringMap[K, V]) Set(key K, value V) {
	obj.locked.BootstrappedManipulation(func(table *Table[K, *expiringEntry[V]]) {
		table.Erase(key)
		table.Insert(key, &expiringEntry[V]{
			raw:      value,
			inserted: obj.now(),
		})
	})
}

// Erase deletes the value assigned to the given key and reports whether there was one
func (obj *ExpiringMap[K, V]) Erase(key K) bool {
	return obj.locked.Erase(key)
}

// Clear removes all key-value pairs
func (obj *ExpiringMap[K, V]) Clear() {
	obj.locked.Clear()
}
