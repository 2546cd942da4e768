package registry

import "errors"

// Error taxonomy for registry operations. Callers branch with errors.Is;
// the HTTP layer maps each kind to a status code. NotFound, AlreadyExists
// and InvalidOperation are caller errors raised before any write, so they
// never leave partial state behind.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrPersistence      = errors.New("persistence failure")
)
