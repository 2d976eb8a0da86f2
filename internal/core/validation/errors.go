package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error collects field-level validation failures.
// Fields maps the offending field name to a human-readable message.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation error (" + strings.Join(parts, "; ") + ")"
}

// NewError creates a validation error for a single field
func NewError(field, message string) error {
	return &Error{Fields: map[string]string{field: message}}
}

// Errors accumulates field messages while a validator runs.
// The first message recorded for a field wins.
type Errors map[string]string

// Add records a message for field unless one is already present
func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Err returns nil when nothing was recorded, otherwise an *Error
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	fields := make(map[string]string, len(e))
	for k, v := range e {
		fields[k] = v
	}
	return &Error{Fields: fields}
}

// IsValidationError checks if err is (or wraps) a validation error
func IsValidationError(err error) bool {
	var valErr *Error
	return errors.As(err, &valErr)
}

// FieldsOf returns the field messages carried by err, or nil
func FieldsOf(err error) map[string]string {
	var valErr *Error
	if errors.As(err, &valErr) {
		return valErr.Fields
	}
	return nil
}
