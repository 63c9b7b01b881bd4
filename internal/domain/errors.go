package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MsgRequired is recorded for a required field left blank
const MsgRequired = "Field can't be empty"

// FieldErrors maps a form field name to a human-readable message.
// A second error on the same field replaces the first.
type FieldErrors map[string]string

// Add records msg for field, replacing any earlier message
func (f FieldErrors) Add(field, msg string) {
	f[field] = msg
}

// Has reports whether field has a recorded error
func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Err returns nil when no errors were recorded, otherwise a *ValidationError
// carrying the full set
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Errors: f}
}

// ValidationError reports one or more rejected form fields
type ValidationError struct {
	Errors FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// PersistenceError reports a store failure other than referential integrity.
// Err holds the underlying driver error, if any.
type PersistenceError struct {
	Op  string
	Msg string
	Err error
}

// NewPersistenceError wraps a store error for operation op
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Msg: err.Error(), Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IntegrityError reports an operation blocked by a foreign-key dependency,
// typically deleting a department that sellers still reference
type IntegrityError struct {
	Op  string
	Msg string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a *ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsIntegrity reports whether err is or wraps an *IntegrityError
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}

// IsPersistence reports whether err is or wraps a *PersistenceError
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
