package storage

import "errors"

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates the key is malformed or contains invalid characters.
	// This includes empty keys and path traversal attempts.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrExists indicates a write targeted a key that is already taken.
	ErrExists = errors.New("storage: key already exists")

	// ErrUnavailable wraps I/O failures of the underlying store.
	ErrUnavailable = errors.New("storage: unavailable")
)
