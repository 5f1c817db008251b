package contact

import (
	"errors"
	"fmt"
)

// Sentinels matched by ValidationError via errors.Is.
var (
	ErrInvalidPhone = errors.New("contact: invalid phone number")
	ErrInvalidEmail = errors.New("contact: invalid email")
)

// ValidationKind identifies which field failed validation.
type ValidationKind string

const (
	InvalidPhone ValidationKind = "invalid_phone"
	InvalidEmail ValidationKind = "invalid_email"
)

// ValidationError reports a phone or email that does not match its pattern.
type ValidationError struct {
	Kind  ValidationKind
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case InvalidPhone:
		return fmt.Sprintf("contact: invalid phone number %q (want DDD-DDD-DDDD)", e.Value)
	case InvalidEmail:
		return fmt.Sprintf("contact: invalid email %q", e.Value)
	default:
		return fmt.Sprintf("contact: invalid value %q", e.Value)
	}
}

// Is matches the sentinel for the failed field.
func (e *ValidationError) Is(target error) bool {
	switch e.Kind {
	case InvalidPhone:
		return target == ErrInvalidPhone
	case InvalidEmail:
		return target == ErrInvalidEmail
	}
	return false
}

// ParseError reports a birthday that is not a valid YYYY-MM-DD date.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("contact: invalid birthday %q (want YYYY-MM-DD): %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
