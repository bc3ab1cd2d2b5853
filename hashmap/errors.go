package hashmap

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is matched by every KeyNotFoundError using errors.Is
var ErrKeyNotFound = errors.New("key not found")

// KeyNotFoundError is returned by At if no value is assigned to the requested key
type KeyNotFoundError struct {
	Key any
}

func (err *KeyNotFoundError) Error() string {
	return fmt.Sprintf("%s: %v", ErrKeyNotFound.Error(), err.Key)
}

func (err *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}
