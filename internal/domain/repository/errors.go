package repository

import (
	"context"
	"errors"
)

// Storage-level failures every implementation reports the same way
var (
	// ErrDuplicateKey is returned when a write violates a unique constraint.
	ErrDuplicateKey = errors.New("repository: duplicate key")
	// ErrMissingReference is returned when a write points at a row that does not exist.
	ErrMissingReference = errors.New("repository: referenced record does not exist")
)

// Transactor runs fn inside one storage transaction. Repository calls made
// with the context passed to fn join that transaction; fn returning an error
// rolls everything back. Nested calls join the outer transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
