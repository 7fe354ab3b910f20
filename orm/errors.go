package orm

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a query expects exactly one row but finds none.
var ErrNotFound = errors.New("orm: not found")

// ErrUnsavedReference is returned when a belongs-to association is assigned
// a record that has not been persisted yet (its primary key is zero).
var ErrUnsavedReference = errors.New("orm: referenced record has no primary key")

// NotFoundError reports a primary-key lookup that matched no row.
// It wraps ErrNotFound.
type NotFoundError struct {
	Table string
	ID    int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("orm: %s with id %d not found", e.Table, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
