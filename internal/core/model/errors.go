package model

import "errors"

// Error taxonomy surfaced by the engine. Callers match with errors.Is; the
// concrete message around a sentinel carries the offending ids.
var (
	// ErrInvalidInput marks self-referential relations and references to
	// persons that do not exist. Rejected before any write.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict marks an exact-duplicate relationship triple, whether caught
	// by the pre-insert check or by the store's uniqueness constraint.
	ErrConflict = errors.New("relationship already exists")

	// ErrNotFound marks a lookup or delete of a non-existent id.
	ErrNotFound = errors.New("not found")
)
