package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateEnrollment = errors.New("student already enrolled in this league")
	ErrInvalidRate         = errors.New("invalid exchange rate")
	ErrValidation          = errors.New("validation failed")
)

type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

type DuplicateEnrollmentError struct {
	StudentID string
	LeagueID  string
}

func (e *DuplicateEnrollmentError) Error() string {
	return fmt.Sprintf("student %s already enrolled in league %s", e.StudentID, e.LeagueID)
}

func (e *DuplicateEnrollmentError) Unwrap() error { return ErrDuplicateEnrollment }

// InvalidRateError is returned when a LOCAL amount carries a rate that cannot
// be divided by.
type InvalidRateError struct {
	Rate string
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid exchange rate %q: must be a positive number", e.Rate)
}

func (e *InvalidRateError) Unwrap() error { return ErrInvalidRate }

type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
