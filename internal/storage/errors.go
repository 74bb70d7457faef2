package storage

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidReference = errors.New("referenced row does not exist")
)

// ReferenceError names the foreign key column that rejected a write.
type ReferenceError struct {
	Column string
}

func (e *ReferenceError) Error() string {
	return ErrInvalidReference.Error() + ": " + e.Column
}

func (e *ReferenceError) Unwrap() error { return ErrInvalidReference }
