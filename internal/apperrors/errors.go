// Package apperrors defines the error taxonomy shared by services and routes.
package apperrors

import (
	"errors"
	"strings"
)

const (
	MsgFillAllFields       = "Please fill in all fields"
	MsgInvalidEmail        = "Please enter a valid email address"
	MsgPasswordsMismatch   = "Passwords do not match"
	MsgPasswordTooLong     = "Password must be at most 72 bytes long"
	MsgUsernameTooLong     = "Username must be at most 64 characters long"
	MsgMissingCredentials  = "Please enter both username and password"
	MsgUserNotFound        = "No user found with that username"
	MsgInvalidPassword     = "Incorrect password"
	MsgUsernameTaken       = "Username already exists"
	MsgEmailTaken          = "Email already registered"
	MsgNotAuthenticated    = "Please log in to view this resource"
	MsgAuthenticationError = "Authentication failed"
)

var (
	// ErrAuthentication is the parent of every bad-credentials failure.
	ErrAuthentication = errors.New("authentication failed")

	ErrMissingCredentials = &AuthError{Message: MsgMissingCredentials}
	ErrUserNotFound       = &AuthError{Message: MsgUserNotFound}
	ErrInvalidPassword    = &AuthError{Message: MsgInvalidPassword}

	ErrDuplicateUser     = errors.New("duplicate user")
	ErrDuplicateUsername = &DuplicateError{Message: MsgUsernameTaken}
	ErrDuplicateEmail    = &DuplicateError{Message: MsgEmailTaken}

	ErrNotAuthenticated = errors.New("not authenticated")
)

// AuthError is a credential failure carrying a client-safe message.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return ErrAuthentication }

// DuplicateError reports a unique constraint hit on a user field.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string { return e.Message }

func (e *DuplicateError) Unwrap() error { return ErrDuplicateUser }

// ValidationError collects user-correctable input problems.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Add appends msg unless it is already present.
func (e *ValidationError) Add(msg string) {
	for _, m := range e.Messages {
		if m == msg {
			return
		}
	}
	e.Messages = append(e.Messages, msg)
}

// Empty reports whether no message was collected.
func (e *ValidationError) Empty() bool {
	return len(e.Messages) == 0
}

// NewValidationError builds a ValidationError from messages.
func NewValidationError(messages ...string) *ValidationError {
	v := &ValidationError{}
	for _, m := range messages {
		v.Add(m)
	}
	return v
}

// AsValidation returns the ValidationError in err's chain, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// PublicMessage returns the client-safe message carried by err, or fallback.
func PublicMessage(err error, fallback string) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	var dupErr *DuplicateError
	if errors.As(err, &dupErr) {
		return dupErr.Message
	}
	return fallback
}
