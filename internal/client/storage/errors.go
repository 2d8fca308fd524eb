package storage

import "errors"

// Common client storage errors
var (
	// ErrStorage wraps every failure of the local store (I/O, constraint violation)
	ErrStorage = errors.New("storage error")

	// ErrUnknownField indicates that a field name is not a column of the table
	ErrUnknownField = errors.New("unknown field")

	// ErrReadOnlyField indicates an attempt to update a base field directly
	ErrReadOnlyField = errors.New("read-only field")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
