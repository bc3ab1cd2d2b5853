package bitflag

import (
	"fmt"
	"strings"
)

// Flag represents a single bitflag
type Flag uint

// Container represents a bitflag container and provides methods to simplify working with them
type Container uint

// EmptyContainer provides an empty bitflag container
const EmptyContainer Container = 0

// Has checks if the container has all the given flags set
func (cur Container) Has(flags ...Flag) bool {
	for _, flag := range flags {
		if uint(cur)&uint(flag) == 0 {
			return false
		}
	}
	return true
}

// With returns a new container with the given flags and the current ones set
func (cur Container) With(flags ...Flag) Container {
	val := uint(cur)
	for _, flag := range flags {
		val |= uint(flag)
	}
	return Container(val)
}

// Without returns a new container with the current flags but without the given ones set
func (cur Container) Without(flags ...Flag) Container {
	val := uint(cur)
	for _, flag := range flags {
		val &= ^uint(flag)
	}
	return Container(val)
}

// Filter returns the given flags that are set in the container, keeping their order
func (cur Container) Filter(flags ...Flag) []Flag {
	res := make([]Flag, 0, len(flags))
	for _, flag := range flags {
		if cur.Has(flag) {
			res = append(res, flag)
		}
	}
	return res
}

// Parse builds a container out of flag names.
// Names are matched case-insensitively against known; surrounding whitespace is ignored.
func Parse(names []string, known map[string]Flag) (Container, error) {
	cur := EmptyContainer
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		flag, ok := known[name]
		if !ok {
			return EmptyContainer, fmt.Errorf("unknown flag '%s'", name)
		}
		cur = cur.With(flag)
	}
	return cur, nil
}
