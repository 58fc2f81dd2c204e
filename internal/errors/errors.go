// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownPeriod indicates a class period outside the configured
	// time-slot table.
	ErrUnknownPeriod = errors.New("unknown class period")

	// ErrNoWeekday indicates a fragment carried no resolvable weekday.
	ErrNoWeekday = errors.New("no resolvable weekday")

	// ErrNoTime indicates a fragment carried neither an explicit time range
	// nor a resolvable period.
	ErrNoTime = errors.New("no resolvable class time")

	// ErrStoreUnavailable indicates the schedule store could not serve a
	// load or save.
	ErrStoreUnavailable = errors.New("schedule store unavailable")

	// ErrNotifyFailure indicates a notification could not be delivered.
	// Delivery is best-effort; callers never retry.
	ErrNotifyFailure = errors.New("notification delivery failed")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ParseError represents a schedule fragment that could not be turned into a
// course occurrence. It carries the offending fragment for warning messages.
type ParseError struct {
	Fragment string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse fragment %q: %v", e.Fragment, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new parse error.
func NewParseError(fragment string, err error) *ParseError {
	return &ParseError{Fragment: fragment, Err: err}
}
