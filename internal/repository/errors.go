package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound signals that no row matched the given id. Handlers map it
// to 404; callers that pre-checked existence still receive it when the
// row disappeared between the check and the mutating statement.
var ErrNotFound = errors.New("solicitacao not found")

// ValidationError carries every violation found for a request, in order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from one or more messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// PersistenceError wraps a store round trip that failed or returned an
// unexpected shape.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence failure: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// DuplicateError wraps a unique-constraint violation.
type DuplicateError struct {
	Err error
}

func (e *DuplicateError) Error() string {
	return "duplicate record: " + e.Err.Error()
}

func (e *DuplicateError) Unwrap() error { return e.Err }

// StoreUnavailableError wraps a connection-level failure (refused, DNS,
// reset) as opposed to a statement-level one.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return "store unavailable: " + e.Err.Error()
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// classifyStoreError maps a raw driver error onto the error taxonomy.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint"):
		return &DuplicateError{Err: err}
	case strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "no such host"):
		return &StoreUnavailableError{Err: err}
	}
	return &PersistenceError{Err: err}
}
