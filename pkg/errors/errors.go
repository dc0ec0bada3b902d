package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies application errors into the three families the engine
// distinguishes: input validation, domain rejections and infrastructure
// failures.
type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "validation"
	ErrorTypeAuthentication ErrorType = "authentication"
	ErrorTypeRejection      ErrorType = "rejection"
	ErrorTypeInternal       ErrorType = "internal"
	ErrorTypeUnavailable    ErrorType = "unavailable"
)

// Reason is the machine-readable rejection reason returned to clients. The
// strings are part of the wire contract and must not change.
type Reason string

const (
	ReasonNotFound        Reason = "Not found"
	ReasonOutOfRange      Reason = "Out of range"
	ReasonTeamNotFound    Reason = "Team not found"
	ReasonAlreadyAnswered Reason = "Already answered"
	ReasonIncorrect       Reason = "Incorrect"
)

// AppError is a structured application error carrying the HTTP mapping.
type AppError struct {
	Type       ErrorType `json:"type"`
	Reason     Reason    `json:"reason,omitempty"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Internal   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Internal.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// NewValidationError creates an error for a malformed request, rejected
// before the submission enters the state machine.
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewAuthenticationError creates an error for a missing or malformed caller
// credential.
func NewAuthenticationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthentication,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewRejection creates a domain rejection. Rejections are expected outcomes
// of the validation path, surfaced with the reason string as the client-facing
// error and never logged as failures.
func NewRejection(reason Reason, message string) *AppError {
	status := http.StatusNotFound
	switch reason {
	case ReasonIncorrect:
		status = http.StatusBadRequest
	case ReasonAlreadyAnswered:
		status = http.StatusConflict
	}
	return &AppError{
		Type:       ErrorTypeRejection,
		Reason:     reason,
		Message:    message,
		StatusCode: status,
	}
}

// NewInternalError creates a generic internal failure.
func NewInternalError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   internal,
	}
}

// NewStoreUnavailableError reports a store connectivity failure. Distinct
// from domain rejections so clients know the submission is safe to retry
// with backoff.
func NewStoreUnavailableError(internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Message:    "store unavailable",
		StatusCode: http.StatusServiceUnavailable,
		Internal:   internal,
	}
}
