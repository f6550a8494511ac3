package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidTransitionError is a ValidationError raised when the resolved
// status is not valid for the resolved kind
type InvalidTransitionError struct {
	Kind   Kind
	Status Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("status: %q is not valid for kind %q", e.Status, e.Kind)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// Unwrap exposes the transition failure as a *ValidationError to errors.As
func (e *InvalidTransitionError) Unwrap() error {
	return &ValidationError{
		Field:   "status",
		Message: fmt.Sprintf("%q is not valid for kind %q", e.Status, e.Kind),
	}
}

// NotFoundError reports an unknown item id
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsValidation reports whether err is a ValidationError (including InvalidTransition)
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
