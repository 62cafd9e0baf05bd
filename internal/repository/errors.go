package repository

import "errors"

// Sentinel errors shared by every adapter. The port contract requires
// both backends to signal the same kind for the same condition, so
// adapters map their driver's errors onto these at the boundary and
// nothing driver-specific escapes the adapter package.
var (
	ErrNotFound        = errors.New("repository: not found")
	ErrConflict        = errors.New("repository: already exists")
	ErrInvalidArgument = errors.New("repository: invalid argument")
)
