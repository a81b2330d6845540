package svcerrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	categoryNotFound         = "not_found"
	categoryMethodNotAllowed = "method_not_allowed"
	categoryInternal         = "internal"
)

const (
	errorCodeInternalPanic     = "SYS_9000"
	errorCodeInternalUndefined = "SYS_9001"
)

// NewNotFoundError creates a new ServiceError with category not_found.
func NewNotFoundError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryNotFound,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: http.StatusNotFound,
	}
}

// NewMethodNotAllowedError creates a new ServiceError with category method_not_allowed.
func NewMethodNotAllowedError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryMethodNotAllowed,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: http.StatusMethodNotAllowed,
	}
}

// NewInternalError creates a new ServiceError with category internal.
// The cause is kept for logging and never shown to the client.
func NewInternalError(code string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryInternal,
		Code:           code,
		Message:        "internal server error",
		Cause:          cause,
		HttpStatusCode: http.StatusInternalServerError,
	}
}

// NewInternalErrorUndefined creates a new ServiceError with category internal and code SYS_9001.
func NewInternalErrorUndefined(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalUndefined, cause)
}

func NewInternalErrorPanic(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalPanic, cause)
}

// AsServiceError extracts a ServiceError from the error chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// ServiceError is an error a handler returns to choose the HTTP error response.
type ServiceError struct {
	Category       string // not_found, method_not_allowed or internal
	Code           string // service-owned stable code (e.g. DIAG_4040)
	Message        string // client-safe, human-readable
	Cause          error
	HttpStatusCode int
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error to support errors.Is and errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func (e *ServiceError) IsInternalError() bool {
	return e.Category == categoryInternal
}
