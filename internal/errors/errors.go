package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Authentication errors. Every guard failure collapses to ErrUnauthorized
	// at the HTTP surface so callers cannot distinguish a bad signature from
	// a revoked session or an unknown account.
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "please authenticate")
	ErrInvalidToken       = NewDomainError("INVALID_TOKEN", "invalid token")
	ErrTokenExpired       = NewDomainError("TOKEN_EXPIRED", "token has expired")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "unable to login")

	// Validation errors
	ErrInvalidInput    = NewDomainError("INVALID_INPUT", "invalid input")
	ErrEmailExists     = NewDomainError("EMAIL_EXISTS", "email already exists")
	ErrDisallowedField = NewDomainError("DISALLOWED_FIELD", "invalid update field")

	// Missing or foreign-owned records report the same not-found error.
	ErrUserNotFound   = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrTaskNotFound   = NewDomainError("TASK_NOT_FOUND", "task not found")
	ErrAvatarNotFound = NewDomainError("AVATAR_NOT_FOUND", "avatar not found")

	// System errors
	ErrInternal = NewDomainError("INTERNAL_ERROR", "internal server error")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "EMAIL_EXISTS", "DISALLOWED_FIELD":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_TOKEN", "TOKEN_EXPIRED", "INVALID_CREDENTIALS":
		return http.StatusUnauthorized

	// 404 Not Found
	case "USER_NOT_FOUND", "TASK_NOT_FOUND", "AVATAR_NOT_FOUND":
		return http.StatusNotFound

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message without leaking wrapped
// internal detail for system errors.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
