package service

import "errors"

var (
	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail reports a signup for an email that is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrAuthFailure hides whether the email or the password was wrong.
	ErrAuthFailure = errors.New("invalid email or password")
)

// Kind classifies a client-correctable input problem.
type Kind string

const (
	MissingField     Kind = "missing_field"
	InvalidType      Kind = "invalid_type"
	OutOfRange       Kind = "out_of_range"
	PasswordMismatch Kind = "password_mismatch"
	PasswordTooShort Kind = "password_too_short"
)

// ValidationError carries the user-facing message for a rejected input.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind) + " (" + e.Field + "): " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(kind Kind, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}
