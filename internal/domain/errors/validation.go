package errors

import (
	"net/http"
	"sort"
	"strings"
)

// ValidationError carries every violated field together with the rule it
// broke. Validation is never fail-fast; callers always see the full set of
// problems at once.
type ValidationError struct {
	fields map[string]string
}

// NewValidationError creates a validation error from a field→rule map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{fields: fields}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message()
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return "Input validation failed"
}

// Details lists the violated fields in stable order.
func (e *ValidationError) Details() string {
	names := make([]string, 0, len(e.fields))
	for name := range e.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.fields[name])
	}

	return strings.Join(parts, "; ")
}

// Fields returns the field→rule mapping for structured responses.
func (e *ValidationError) Fields() map[string]string {
	return e.fields
}
