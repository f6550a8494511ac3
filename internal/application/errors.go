package application

import (
	"errors"
	"fmt"

	"grove/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound          = domain.ErrNotFound
	ErrInvalidTransition = domain.ErrInvalidTransition
	ErrUnknownReference  = errors.New("unknown reference")
	ErrNoNextStatus      = errors.New("no next status")
)

// ValidationError represents a validation failure with details
type ValidationError = domain.ValidationError

// ReferenceError reports a #N reference that did not resolve for the caller
type ReferenceError struct {
	Ref string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("reference %s does not resolve; list or search again to refresh numbering", e.Ref)
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrUnknownReference
}

// AdvanceError reports an item already at the end of its pipeline
type AdvanceError struct {
	ID     string
	Kind   domain.Kind
	Status domain.Status
}

func (e *AdvanceError) Error() string {
	return fmt.Sprintf("cannot advance %s: %s %s has no next status", e.ID, e.Kind, e.Status)
}

func (e *AdvanceError) Is(target error) bool {
	return target == ErrNoNextStatus
}
