// Package errs holds the error kinds every service error is classified by.
// Handlers map kinds to HTTP statuses; services define their own sentinels on
// top of them with New.
package errs

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation             = errors.New("invalid data")
	ErrNotFound               = errors.New("not found")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrConflict               = errors.New("already exists")
	ErrInvalidCredential      = errors.New("invalid credential")
	ErrDependencyFailure      = errors.New("dependency failure")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// New returns an error with its own message that still matches kind with
// errors.Is.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid data: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Validation(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

func Invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
