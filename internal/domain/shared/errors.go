package shared

import (
	"errors"
	"sort"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrLockBusy      = NewDomainError("LOCK_BUSY", "Resource is locked by another request")
)

// ConflictError reports a write rejected by a uniqueness constraint.
// Column names the offending column when the store can tell.
type ConflictError struct {
	Column string
	Err    error
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Column == "" {
		return "unique constraint violated"
	}
	return "unique constraint violated on " + e.Column
}

// Unwrap lets errors.Is match ErrAlreadyExists
func (e *ConflictError) Unwrap() []error {
	return []error{ErrAlreadyExists, e.Err}
}

// FieldErrors is a business-rule failure attributed to one or more payload fields.
// It travels as an ordinary error and is rendered as {"errors": {field: message}}.
type FieldErrors map[string]string

// NewFieldError returns a FieldErrors holding a single entry
func NewFieldError(field, message string) FieldErrors {
	return FieldErrors{field: message}
}

// Add records a message for field, keeping the first message reported for it
func (fe FieldErrors) Add(field, message string) {
	if _, ok := fe[field]; !ok {
		fe[field] = message
	}
}

// Err returns nil when nothing was recorded
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Error implements the error interface
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// AsFieldErrors extracts FieldErrors from an error chain
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
