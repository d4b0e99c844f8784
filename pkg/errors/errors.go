package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConfiguration indicates a configuration problem such as a
	// missing API credential; never retried
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"

	// ErrorTypeNetwork indicates a transport-level failure; the caller may retry
	ErrorTypeNetwork ErrorType = "NETWORK"

	// ErrorTypeProvider indicates a non-success response from the external provider
	ErrorTypeProvider ErrorType = "PROVIDER"

	// ErrorTypeCancelled indicates a caller-initiated abort
	ErrorTypeCancelled ErrorType = "CANCELLED"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type       ErrorType
	Message    string
	StatusCode int // provider HTTP status, when Type is PROVIDER
	Err        error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Type, e.Message, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewMissingCredentialError creates a configuration error for an absent API credential
func NewMissingCredentialError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
	}
}

// NewNetworkError creates a new transport failure error
func NewNetworkError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeNetwork,
		Message: message,
		Err:     err,
	}
}

// NewProviderStatusError creates a provider error from a non-2xx HTTP status
func NewProviderStatusError(statusCode int) *AppError {
	return &AppError{
		Type:       ErrorTypeProvider,
		Message:    "places provider returned non-success status",
		StatusCode: statusCode,
	}
}

// NewProviderMessageError creates a provider error from a structured error payload
func NewProviderMessageError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeProvider,
		Message: message,
	}
}

// NewCancelledError creates a new cancellation error
func NewCancelledError(err error) *AppError {
	return &AppError{
		Type:    ErrorTypeCancelled,
		Message: "search cancelled by caller",
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}
