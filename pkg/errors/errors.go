// Package errors provides custom error types for the assist engine.
// These errors enable programmatic error checking across the analyzer,
// the remediation workflow, and the editor collaborators.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// It's an alias for the standard library errors.Is.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// It's an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the assist engine.
var (
	// ErrNotFound indicates that a requested object was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that an object already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnclassifiable indicates a name the rule set cannot process
	ErrUnclassifiable = errors.New("unclassifiable name")

	// ErrAttemptsExhausted indicates the remediation retry budget ran out
	ErrAttemptsExhausted = errors.New("attempts exhausted")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrReadOnly indicates an attempt to modify a read-only resource
	ErrReadOnly = errors.New("read only")
)

// NotFoundError represents an error when a map object is not found
// in the editor model.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ClassificationError represents a rule-engine failure for a particular
// name. It is non-fatal: the analyzer logs it and excludes the entity
// from the current pass only.
type ClassificationError struct {
	Name    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ClassificationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cannot classify %q: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("cannot classify %q", e.Name)
}

// Unwrap implements errors.Unwrap
func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ClassificationError) Is(target error) bool {
	return target == ErrUnclassifiable
}

// NewClassificationError creates a new ClassificationError
func NewClassificationError(name, message string) *ClassificationError {
	return &ClassificationError{Name: name, Message: message}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ActionError represents a failure submitting a mutation to the
// editor's action log.
type ActionError struct {
	Action string
	ID     string
	Err    error
}

// Error implements the error interface
func (e *ActionError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("action %s on %s: %v", e.Action, e.ID, e.Err)
	}
	return fmt.Sprintf("action %s: %v", e.Action, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ActionError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClassification checks if an error is a rule classification error
func IsClassification(err error) bool {
	return errors.Is(err, ErrUnclassifiable)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// WrapResource wraps an error with resource context
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s %s: %w", operation, resource, id, err)
}

// WrapIO wraps an error with I/O context
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", operation, path, err)
}
