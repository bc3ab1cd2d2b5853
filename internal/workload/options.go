package workload

import (
	"errors"
	"fmt"
	"github.com/skybi/chaintable/internal/bitflag"
	"github.com/skybi/chaintable/internal/config"
)

// The operations a workload may perform on a table
const (
	OpInsert bitflag.Flag = 1 << iota
	OpErase
	OpRef
	OpFind
	OpAt
)

// AllOps contains every operation
var AllOps = bitflag.EmptyContainer.With(OpInsert, OpErase, OpRef, OpFind, OpAt)

// OpNames maps the configurable operation names to their flags
var OpNames = map[string]bitflag.Flag{
	"insert": OpInsert,
	"erase":  OpErase,
	"ref":    OpRef,
	"find":   OpFind,
	"at":     OpAt,
}

func opName(op bitflag.Flag) string {
	for name, flag := range OpNames {
		if flag == op {
			return name
		}
	}
	return "unknown"
}

// The supported key kinds
const (
	KeyKindInt    = "int"
	KeyKindString = "string"
	KeyKindUUID   = "uuid"
)

var (
	ErrNoOperations   = errors.New("at least one operation has to be performed")
	ErrEmptyKeySpace  = errors.New("the key space must not be empty")
	ErrNoOpsEnabled   = errors.New("at least one operation kind has to be enabled")
	ErrUnknownKeyKind = errors.New("unknown key kind")
)

// Options configures a workload run
type Options struct {
	Operations int
	KeySpace   int
	KeyKind    string
	Seed       int64
	Ops        bitflag.Container
}

// FromConfig builds validated workload options out of the application configuration
func FromConfig(cfg *config.Config) (*Options, error) {
	ops, err := bitflag.Parse(cfg.Ops, OpNames)
	if err != nil {
		return nil, fmt.Errorf("invalid operations: %w", err)
	}
	opts := &Options{
		Operations: cfg.Operations,
		KeySpace:   cfg.KeySpace,
		KeyKind:    cfg.KeyKind,
		Seed:       cfg.Seed,
		Ops:        ops,
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate checks whether the options describe a runnable workload
func (opts *Options) Validate() error {
	if opts.Operations <= 0 {
		return ErrNoOperations
	}
	if opts.KeySpace <= 0 {
		return ErrEmptyKeySpace
	}
	if opts.Ops == bitflag.EmptyContainer {
		return ErrNoOpsEnabled
	}
	switch opts.KeyKind {
	case KeyKindInt, KeyKindString, KeyKindUUID:
		return nil
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownKeyKind, opts.KeyKind)
	}
}
