package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned for keys that are empty or could escape a
// namespace (path separators, "..").
var ErrInvalidKey = errors.New("storage: invalid key")

// Store is a durable key-value slot. Values are opaque byte strings and
// every Set replaces the previous value wholesale.
type Store interface {
	// Get returns the value stored under key. The boolean is false when
	// nothing has been stored yet.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
