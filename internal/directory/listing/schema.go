// Package listing holds the list controller and record form shared by every
// directory screen. A controller owns one collection in memory and writes the
// whole collection back through its Repository after every change.
package listing

import (
	"context"
	"errors"
)

var (
	ErrRecordNotFound = errors.New("listing: record not found")
	ErrFormClosed     = errors.New("listing: form is no longer open")
)

// ValidationError is a human-readable rejection of a submitted record. The
// message is meant to be shown next to the action that triggered it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Repository loads and saves a whole collection and mints ids for new records.
type Repository[R any] interface {
	Load(ctx context.Context) ([]R, error)
	Save(ctx context.Context, records []R) error
	NextID() string
}

// Schema describes one entity type to the generic controller and form.
type Schema[R any] struct {
	// Entity names the record type in logs, e.g. "role".
	Entity string

	ID     func(R) string
	WithID func(R, string) R

	// Clone deep-copies a record so drafts never alias stored values.
	// Optional for records without reference fields.
	Clone func(R) R

	// Validate rejects incomplete submissions on the controller path.
	// A nil Validate accepts everything.
	Validate func(R) error

	// FormValidate is the form-local check run before the form hands the
	// draft to its parent. A nil FormValidate accepts everything.
	FormValidate func(R) error
}

func (s Schema[R]) clone(r R) R {
	if s.Clone == nil {
		return r
	}
	return s.Clone(r)
}
