package workload

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/skybi/chaintable/hashmap"
	"github.com/skybi/chaintable/internal/bitflag"
	"github.com/skybi/chaintable/internal/random"
	"math/rand"
	"time"
)

const stringKeyLength = 16

// Stats summarizes a workload run
type Stats struct {
	Operations    int
	Inserts       int
	Erases        int
	Refs          int
	Finds         int
	Ats           int
	Hits          int
	Misses        int
	Grows         int
	Shrinks       int
	MaxCapacity   int
	FinalSize     int
	FinalCapacity int
	Duration      time.Duration
}

// MismatchError is returned if the table diverged from the reference map
type MismatchError struct {
	Step   int
	Op     string
	Key    any
	Reason string
}

func (err *MismatchError) Error() string {
	return fmt.Sprintf("step %d (%s %v): %s", err.Step, err.Op, err.Key, err.Reason)
}

// Run performs a randomized sequence of operations on a table and verifies every result against a builtin map
func Run(opts *Options, logger zerolog.Logger) (*Stats, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	switch opts.KeyKind {
	case KeyKindInt:
		keys := make([]int64, opts.KeySpace)
		for i := range keys {
			keys[i] = rng.Int63()
		}
		return run(opts, rng, keys, hashmap.IntegerHasher[int64], logger)
	case KeyKindString:
		keys := random.Strings(rng, opts.KeySpace, stringKeyLength, random.CharsetAlphanumeric)
		return run(opts, rng, keys, hashmap.StringHasher, logger)
	case KeyKindUUID:
		keys := make([]uuid.UUID, opts.KeySpace)
		for i := range keys {
			id, err := uuid.NewRandomFromReader(rng)
			if err != nil {
				return nil, fmt.Errorf("could not generate UUID key: %w", err)
			}
			keys[i] = id
		}
		return run(opts, rng, keys, hashmap.DefaultHasher[uuid.UUID](), logger)
	}
	return nil, fmt.Errorf("%w: '%s'", ErrUnknownKeyKind, opts.KeyKind)
}

type runner[K comparable] struct {
	table      *hashmap.Table[K, int]
	oracle     map[K]int
	insertedAt map[K]int
	stats      *Stats
}

func run[K comparable](opts *Options, rng *rand.Rand, keys []K, hasher hashmap.Hasher[K], logger zerolog.Logger) (*Stats, error) {
	r := &runner[K]{
		table:      hashmap.New[K, int](hashmap.WithHasher(hasher)),
		oracle:     make(map[K]int),
		insertedAt: make(map[K]int),
		stats:      &Stats{MaxCapacity: hashmap.DefaultCapacity},
	}
	ops := opts.Ops.Filter(OpInsert, OpErase, OpRef, OpFind, OpAt)
	progress := opts.Operations / 10
	if progress == 0 {
		progress = 1
	}

	start := time.Now()
	for step := 0; step < opts.Operations; step++ {
		op := ops[rng.Intn(len(ops))]
		key := keys[rng.Intn(len(keys))]
		before := r.table.Capacity()

		if reason := r.apply(step, op, key, rng.Int()); reason != "" {
			return r.stats, &MismatchError{Step: step, Op: opName(op), Key: key, Reason: reason}
		}
		if reason := r.checkShape(); reason != "" {
			return r.stats, &MismatchError{Step: step, Op: opName(op), Key: key, Reason: reason}
		}

		after := r.table.Capacity()
		switch {
		case after > before:
			r.stats.Grows++
			logger.Trace().Int("step", step).Int("from", before).Int("to", after).Msg("table grew")
		case after < before:
			r.stats.Shrinks++
			logger.Trace().Int("step", step).Int("from", before).Int("to", after).Msg("table shrank")
		}
		if after > r.stats.MaxCapacity {
			r.stats.MaxCapacity = after
		}
		r.stats.Operations++

		if (step+1)%progress == 0 {
			logger.Debug().
				Int("step", step+1).
				Int("size", r.table.Size()).
				Int("capacity", after).
				Float64("load_factor", r.table.LoadFactor()).
				Msg("workload progress")
		}
	}
	r.stats.Duration = time.Since(start)

	if reason := r.checkContents(); reason != "" {
		return r.stats, &MismatchError{Step: opts.Operations, Op: "verify", Reason: reason}
	}
	r.stats.FinalSize = r.table.Size()
	r.stats.FinalCapacity = r.table.Capacity()
	return r.stats, nil
}

// apply performs a single operation on both the table and the oracle and returns a non-empty reason on divergence
func (r *runner[K]) apply(step int, op bitflag.Flag, key K, value int) string {
	want, present := r.oracle[key]
	switch op {
	case OpInsert:
		r.stats.Inserts++
		if inserted := r.table.Insert(key, value); inserted == present {
			return fmt.Sprintf("insert reported inserted=%t for a key that is present=%t", inserted, present)
		}
		if !present {
			r.record(step, key, value)
		}
	case OpErase:
		r.stats.Erases++
		if erased := r.table.Erase(key); erased != present {
			return fmt.Sprintf("erase reported erased=%t for a key that is present=%t", erased, present)
		}
		delete(r.oracle, key)
		delete(r.insertedAt, key)
	case OpRef:
		r.stats.Refs++
		ref := r.table.Ref(key)
		if *ref != want {
			return fmt.Sprintf("ref returned %d, expected %d", *ref, want)
		}
		*ref = value
		if !present {
			r.insertedAt[key] = step
		}
		r.oracle[key] = value
	case OpFind:
		r.stats.Finds++
		entry := r.table.Find(key)
		if (entry != nil) != present {
			return fmt.Sprintf("find found=%t for a key that is present=%t", entry != nil, present)
		}
		r.countHit(present)
		if entry != nil && (entry.Key() != key || entry.Value != want) {
			return fmt.Sprintf("find returned the entry %v=%d, expected %d", entry.Key(), entry.Value, want)
		}
	case OpAt:
		r.stats.Ats++
		got, err := r.table.At(key)
		r.countHit(present)
		if present && (err != nil || got != want) {
			return fmt.Sprintf("at returned (%d, %v), expected %d", got, err, want)
		}
		if !present && !errors.Is(err, hashmap.ErrKeyNotFound) {
			return fmt.Sprintf("at returned %v for a missing key", err)
		}
	}
	return ""
}

func (r *runner[K]) record(step int, key K, value int) {
	r.oracle[key] = value
	r.insertedAt[key] = step
}

func (r *runner[K]) countHit(hit bool) {
	if hit {
		r.stats.Hits++
	} else {
		r.stats.Misses++
	}
}

// checkShape verifies the size and the load factor bound of the table
func (r *runner[K]) checkShape() string {
	size, capacity := r.table.Size(), r.table.Capacity()
	if size != len(r.oracle) {
		return fmt.Sprintf("size is %d, expected %d", size, len(r.oracle))
	}
	if capacity < hashmap.DefaultCapacity || capacity&(capacity-1) != 0 {
		return fmt.Sprintf("capacity %d is not a power of two", capacity)
	}
	if 2*size > capacity {
		return fmt.Sprintf("size %d exceeds half of the capacity %d", size, capacity)
	}
	return ""
}

// checkContents verifies that every key is reachable and the iteration follows the insertion order
func (r *runner[K]) checkContents() string {
	for key, want := range r.oracle {
		got, ok := r.table.Lookup(key)
		if !ok || got != want {
			return fmt.Sprintf("key %v holds (%d, %t), expected %d", key, got, ok, want)
		}
	}
	last, seen := -1, 0
	for key := range r.table.Keys() {
		at, ok := r.insertedAt[key]
		if !ok {
			return fmt.Sprintf("iteration yielded the unknown key %v", key)
		}
		if at <= last {
			return fmt.Sprintf("iteration yielded %v (inserted at %d) after an entry inserted at %d", key, at, last)
		}
		last = at
		seen++
	}
	if seen != len(r.oracle) {
		return fmt.Sprintf("iteration yielded %d keys, expected %d", seen, len(r.oracle))
	}
	return ""
}
