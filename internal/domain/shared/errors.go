package shared

import (
	"errors"
	"sort"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return e.Message + " (" + strings.Join(parts, ", ") + ")"
}

// Is matches domain errors by code so wrapped sentinels compare equal.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
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
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrValidation          = NewDomainError("VALIDATION_ERROR", "Validation failed")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// NotFound returns a NOT_FOUND error naming the missing resource.
func NotFound(resource string) *DomainError {
	return NewDomainError(ErrNotFound.Code, resource+" not found")
}

// ValidationErrors accumulates field-level validation messages.
type ValidationErrors map[string][]string

// Add records a message for a field
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// HasErrors reports whether any field failed validation
func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// Err returns nil when there are no errors, otherwise a VALIDATION_ERROR DomainError.
func (v ValidationErrors) Err() error {
	if !v.HasErrors() {
		return nil
	}
	fields := make(map[string][]string, len(v))
	for k, msgs := range v {
		fields[k] = append([]string(nil), msgs...)
	}
	return &DomainError{
		Code:    ErrValidation.Code,
		Message: ErrValidation.Message,
		Fields:  fields,
	}
}

// NewValidationError creates a VALIDATION_ERROR for a single field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    ErrValidation.Code,
		Message: ErrValidation.Message,
		Fields:  map[string][]string{field: {message}},
	}
}
