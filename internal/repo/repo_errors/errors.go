package repo_errors

import "errors"

var (
	// ErrNotFound: no row matched the lookup.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict: a uniqueness constraint was violated (duplicate bid,
	// duplicate email). Terminal, never retried.
	ErrConflict = errors.New("entity already exists")

	// ErrTransient: storage-level contention (serialization failure,
	// deadlock). Safe to retry with backoff.
	ErrTransient = errors.New("transient storage conflict")
)
