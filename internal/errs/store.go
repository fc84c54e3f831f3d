package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCriteria matches every *InvalidCriteriaError via errors.Is.
var ErrInvalidCriteria = errors.New("invalid criteria")

// InvalidCriteriaError is returned when a request is rejected before any
// query reaches the store (bad limit, negative prices, min above max, ...).
type InvalidCriteriaError struct {
	Fields []FieldError
}

func (e *InvalidCriteriaError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidCriteria.Error()
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Error)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidCriteria, strings.Join(parts, "; "))
}

func (e *InvalidCriteriaError) Is(target error) bool {
	return target == ErrInvalidCriteria
}

// NewInvalidCriteria builds an InvalidCriteriaError for a single field.
func NewInvalidCriteria(field, message string) *InvalidCriteriaError {
	return &InvalidCriteriaError{Fields: []FieldError{{Field: field, Error: message}}}
}

// StoreError wraps a failure reported by the backing store. Op names the
// repository operation as "<table>.<action>", Err keeps the driver
// diagnostic for errors.As.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Table is the table part of Op, or "" when Op has no dot.
func (e *StoreError) Table() string {
	table, _, ok := strings.Cut(e.Op, ".")
	if !ok {
		return ""
	}
	return table
}

// NewStoreError returns nil when err is nil so call sites can wrap
// unconditionally.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
