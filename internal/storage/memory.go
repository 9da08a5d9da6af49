package storage

import (
	"context"

	"taskman/internal/errors"
)

// Memory is an in-process substrate backed by a plain map. It is used by
// tests and as a stand-in when no durable storage is wanted. The Fail
// and Capacity knobs inject substrate failures for adapter tests.
type Memory struct {
	values map[string]string

	// Fail makes every operation report a storage failure, simulating an
	// unreachable substrate.
	Fail bool

	// Capacity caps the byte size of a single value; zero means
	// unlimited.
	Capacity int
}

// NewMemory creates an empty in-memory substrate.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	if err := m.check(ctx, "get"); err != nil {
		return "", err
	}
	value, ok := m.values[key]
	if !ok {
		return "", errors.NewNotFoundError("key", key)
	}
	return value, nil
}

// Set writes value under key.
func (m *Memory) Set(ctx context.Context, key string, value string) error {
	if err := m.check(ctx, "set"); err != nil {
		return err
	}
	if m.Capacity > 0 && len(value) > m.Capacity {
		return errors.NewCapacityError(key, len(value), m.Capacity)
	}
	m.values[key] = value
	return nil
}

// Remove deletes the value under key.
func (m *Memory) Remove(ctx context.Context, key string) error {
	if err := m.check(ctx, "remove"); err != nil {
		return err
	}
	delete(m.values, key)
	return nil
}

// Close is a no-op for the in-memory substrate.
func (m *Memory) Close() error {
	return nil
}

// MaxValueBytes returns the configured capacity cap; zero means unlimited.
func (m *Memory) MaxValueBytes() int {
	return m.Capacity
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	return len(m.values)
}

func (m *Memory) check(ctx context.Context, operation string) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError(operation, err)
	}
	if m.Fail {
		return errors.NewStorageError(operation, nil)
	}
	return nil
}
