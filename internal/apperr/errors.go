// Package apperr defines the error taxonomy shared by the assessment core
// and the transports that surface it.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError indicates a bad or missing caller-supplied field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %v", e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NotFoundError indicates that no record exists for the requested id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for %q", e.Resource, e.ID)
}

// UpstreamError indicates the text-completion service failed after all
// fallbacks were exhausted.
type UpstreamError struct {
	RateLimited bool
	Err         error
}

func (e *UpstreamError) Error() string {
	if e.RateLimited {
		return fmt.Sprintf("AI usage limit exceeded: %v", e.Err)
	}
	return fmt.Sprintf("AI service unavailable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// PersistenceError indicates a store failure. The surrounding unit of work
// has been rolled back when this is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ErrMissing is the cause of every ValidationError built by Missing.
var ErrMissing = errors.New("field is required")

// Invalid wraps err as a ValidationError on field.
func Invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// Missing reports a required field that was absent.
func Missing(field string) error {
	return &ValidationError{Field: field, Err: ErrMissing}
}

// Persistence wraps err as a PersistenceError unless it already carries a
// classification from this package.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsClassified(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsClassified reports whether err already belongs to the taxonomy.
func IsClassified(err error) bool {
	var (
		v *ValidationError
		n *NotFoundError
		u *UpstreamError
		p *PersistenceError
	)
	return errors.As(err, &v) || errors.As(err, &n) || errors.As(err, &u) || errors.As(err, &p)
}
