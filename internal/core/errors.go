package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrValidation matches any ValidationError.
	ErrValidation = errors.New("invalid request")

	// ErrStoreRead wraps failures reading from the document store.
	ErrStoreRead = errors.New("store read failed")

	// ErrStoreWrite wraps failures writing to the document store.
	ErrStoreWrite = errors.New("store write failed")
)

// NotFoundError reports an operation that targeted a missing record.
type NotFoundError struct {
	Kind string // "declaration", "master bill"
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a malformed request that was rejected before any
// state was changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
