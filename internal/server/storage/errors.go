package storage

import "errors"

// Common storage errors
var (
	// ErrUnknownTable indicates that the table is not served
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnknownColumn indicates a filter, order or record field that is not a column
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidRecord indicates that a record cannot be stored as sent
	ErrInvalidRecord = errors.New("invalid record")

	// ErrDuplicate indicates an insert of an existing primary key
	ErrDuplicate = errors.New("duplicate key")

	// ErrMissingFilter indicates a delete without any filter
	ErrMissingFilter = errors.New("delete requires a filter")
)
