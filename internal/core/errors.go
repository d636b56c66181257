package core

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an absent record. It is distinct from a malformed-id
// validation failure: the lookup was well-formed, the row just is not there.
var ErrNotFound = errors.New("record not found")

// ValidationError reports malformed input. It is always raised before any
// store mutation happens, so callers can safely retry with corrected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConstraintError reports an operation refused because it would violate a
// referential invariant. Deterministic until the underlying data changes.
type ConstraintError struct {
	Reason string
}

func (e *ConstraintError) Error() string {
	return e.Reason
}

// StoreError wraps a persistence-layer failure. Reads are idempotent and may
// be retried by the caller; writes are never retried automatically.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}

func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
