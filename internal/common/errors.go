// Package common defines sentinel errors shared by the storage, seeding and
// query layers of the employee directory. Callers should use errors.Is to
// match these values; every layer wraps them with additional context.
package common

import "errors"

var (
	// Storage-level errors.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCorruptDocument    = errors.New("corrupt document")

	// Query-level errors.
	ErrNotFound     = errors.New("not found")
	ErrInvalidField = errors.New("invalid field")
	ErrInvalidQuery = errors.New("invalid query")

	// Seed / record validation errors.
	ErrInvalidRecord = errors.New("invalid record")
)
