package core

import "errors"

// Common errors.
var (
	ErrReadOnly = errors.New("collection is in read-only mode")
	ErrNotFound = errors.New("article not found")
)
