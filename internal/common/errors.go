// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// FallbackMessage is shown when a failed response carries no detail.
const FallbackMessage = "Something went wrong"

// Common application errors.
var (
	// Upload errors.
	ErrNoFile         = errors.New("no file selected")
	ErrUploadInFlight = errors.New("upload already in progress")
	ErrUnsupportedExt = errors.New("only PDF statements are supported")

	// Export errors.
	ErrUnknownFormat = errors.New("unknown export format")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports input or payload that does not have the expected shape.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// RequestError is a non-success HTTP response from the extraction service.
type RequestError struct {
	Detail     string
	StatusCode int
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return FallbackMessage
}

// NetworkError is a request that never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage reduces an error to the single line shown in the UI.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
