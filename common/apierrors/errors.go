package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError defines a standard application error.
type AppError struct {
	Code     string        // Application-specific error code
	Message  string        // User-friendly error message
	Category ErrorCategory // Business or application
	Err      error         // Original underlying error (optional)
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("AppError(Code=%s, Message=%s, Cause=%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("AppError(Code=%s, Message=%s)", e.Code, e.Message)
}

// Unwrap provides compatibility for errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to the HTTP status rendered by the error handler.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrCodeProductNotFound, ErrCodeCustomerNotFound, ErrCodeEmptyCatalog, ErrCodeRouteNotFound:
		return http.StatusNotFound
	case ErrCodeRequestValidation:
		return http.StatusBadRequest
	case ErrCodeInvalidProductData, ErrCodeMalformedData:
		return http.StatusUnprocessableEntity
	case ErrCodeServiceUnavailable, ErrCodeNetworkError:
		return http.StatusServiceUnavailable
	case ErrCodeRequestTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeUpstreamRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether a later manual retry may succeed.
// Configuration and data errors will not fix themselves.
func (e *AppError) Retryable() bool {
	switch e.Code {
	case ErrCodeServiceUnavailable, ErrCodeNetworkError, ErrCodeRequestTimeout, ErrCodeDatabaseAccess:
		return true
	}
	return false
}

// NewAppError creates a new AppError in the application category.
func NewAppError(code, message string, cause error) *AppError {
	return NewApplicationError(code, message, cause)
}

// NewApplicationError creates an infrastructure error.
func NewApplicationError(code, message string, cause error) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Category: CategoryApplication,
		Err:      cause,
	}
}

// NewBusinessError creates an error caused by catalog data or lookups.
func NewBusinessError(code, message string, cause error) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Category: CategoryBusiness,
		Err:      cause,
	}
}

// As extracts an *AppError from err.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
