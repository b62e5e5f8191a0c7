package library

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrTypeMismatch matches any *TypeMismatchError via errors.Is.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ValidationError reports a bad input value: an empty string, a
// non-positive number, a malformed email.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TypeMismatchError reports that a value of the wrong variant was passed
// where a specific one was required, e.g. a magazine handed to a loan.
type TypeMismatchError struct {
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func mismatch(want string, got any) error {
	name := "nil"
	if got != nil {
		name = fmt.Sprintf("%T", got)
	}
	return &TypeMismatchError{Want: want, Got: name}
}
