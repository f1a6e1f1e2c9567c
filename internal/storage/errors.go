package storage

import "errors"

// Storage errors shared by all cache backends.
var (
	// ErrNotFound is returned when a requested entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCacheFull is returned when inserting a new key would exceed the
	// hard key cap. Existing entries are never evicted to make room: the
	// cache memoizes permanent facts.
	ErrCacheFull = errors.New("cache full: key cap reached")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
