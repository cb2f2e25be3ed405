// Package errs provides standardized error types for the meal-order application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Two families of errors live here:
//
//   - Value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError)
//     used by domain constructors to reject invalid inputs.
//   - Request errors (ValidationError, AuthorizationError, ObjectNotFoundError,
//     ConflictError, DependencyError, StorageError) which carry a stable
//     machine-readable code alongside a human-readable message. The HTTP adapter
//     maps each kind to a status class; the orchestrator never converts one kind
//     into another, it only adds context.
//
// Each error type follows a consistent pattern: a sentinel error variable, a
// struct type with fields for error details, constructor functions with and
// without cause, an Error() method, and an Unwrap() method so errors.Is works
// against the sentinel.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")

	ErrValidation            = errors.New("validation failed")
	ErrNotAuthorized         = errors.New("not authorized")
	ErrObjectNotFound        = errors.New("object not found")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrStorageUnavailable    = errors.New("storage unavailable")
)

// sanitize strips newlines from values interpolated into error messages so a
// single log line stays a single log line.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ValueIsRequiredError indicates a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error { return ErrValueIsRequired }

// ValueIsInvalidError indicates a value failed a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error { return ErrValueIsInvalid }

// ValueIsOutOfRangeError indicates a numeric value fell outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsOutOfRange, e.Value, sanitize(e.ParamName), e.Min, e.Max)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %s)", sanitize(e.Cause.Error()))
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error { return ErrValueIsOutOfRange }

// ValidationError reports malformed client input. Always recoverable by the
// caller correcting the input. Code is a stable machine-readable identifier
// such as "EMPTY_ORDER" or "QUANTITY_TOO_HIGH".
type ValidationError struct {
	Code    string
	Message string
	Cause   error
}

func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

func NewValidationErrorWithCause(code, message string, cause error) *ValidationError {
	return &ValidationError{Code: code, Message: message, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", e.Code, sanitize(e.Message), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", e.Code, sanitize(e.Message))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// AuthorizationError reports an identity or entity-state problem. Not
// retryable without a different actor or an entity-state change.
type AuthorizationError struct {
	Code    string
	Message string
}

func NewAuthorizationError(code, message string) *AuthorizationError {
	return &AuthorizationError{Code: code, Message: message}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, sanitize(e.Message))
}

func (e *AuthorizationError) Unwrap() error { return ErrNotAuthorized }

// ObjectNotFoundError indicates an entity could not be found. Code identifies
// what was missing ("STUDENT_NOT_FOUND", "ORDER_NOT_FOUND", ...), ParamName
// and ID identify the lookup that failed.
type ObjectNotFoundError struct {
	Code      string
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(code, paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{Code: code, ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(code, paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{Code: code, ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error { return ErrObjectNotFound }

// ConflictError reports a lost optimistic-concurrency race or a uniqueness
// violation. Retryable by re-reading the current state.
type ConflictError struct {
	Message string
	Cause   error
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func NewConflictErrorWithCause(message string, cause error) *ConflictError {
	return &ConflictError{Message: message, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, sanitize(e.Message), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrConflict, sanitize(e.Message))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// DependencyError reports an unavailable external collaborator (directory,
// menu catalog). Retryable with backoff, bounded attempts.
type DependencyError struct {
	Dependency string
	Cause      error
}

func NewDependencyError(dependency string, cause error) *DependencyError {
	return &DependencyError{Dependency: dependency, Cause: cause}
}

func (e *DependencyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrDependencyUnavailable, e.Dependency, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrDependencyUnavailable, e.Dependency)
}

func (e *DependencyError) Unwrap() error { return ErrDependencyUnavailable }

// StorageError reports a repository-level failure that is neither a not-found
// nor a conflict. Surfaced to the caller, never silently swallowed.
type StorageError struct {
	Op    string
	Cause error
}

func NewStorageError(op string, cause error) *StorageError {
	return &StorageError{Op: op, Cause: cause}
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrStorageUnavailable, e.Op, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrStorageUnavailable, e.Op)
}

func (e *StorageError) Unwrap() error { return ErrStorageUnavailable }

// Code extracts the stable machine-readable code from a request error.
// Falls back to a generic code per error kind so every error surfaced to a
// caller has one.
func Code(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Code
	}

	var authErr *AuthorizationError
	if errors.As(err, &authErr) {
		return authErr.Code
	}

	var notFoundErr *ObjectNotFoundError
	if errors.As(err, &notFoundErr) {
		if notFoundErr.Code != "" {
			return notFoundErr.Code
		}
		return "NOT_FOUND"
	}

	switch {
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrDependencyUnavailable):
		return "DEPENDENCY_UNAVAILABLE"
	case errors.Is(err, ErrStorageUnavailable):
		return "STORAGE_UNAVAILABLE"
	}
	return "INTERNAL_ERROR"
}
