package storage

import (
	"context"
)

// Substrate is the key-value text store underneath the persistence
// adapter. Implementations store opaque string values under string keys.
// A missing key is reported as a not-found error so callers can tell it
// apart from an unreachable or failing substrate.
type Substrate interface {
	// Get returns the value stored under key. Missing keys yield a
	// not-found error; other errors indicate substrate failure.
	Get(ctx context.Context, key string) (string, error)

	// Set writes value under key, replacing any previous value. Writes
	// that exceed the substrate's capacity yield a capacity error.
	Set(ctx context.Context, key string, value string) error

	// Remove deletes the value under key. Removing a missing key is not
	// an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the substrate.
	Close() error
}
