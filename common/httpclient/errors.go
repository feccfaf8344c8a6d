package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gaolamthuy/storefront/common/apierrors"
)

const invalidJSONMessage = "Invalid JSON response"

// StatusError is an upstream failure that carries an HTTP status.
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is a server-side error.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// ToAppError classifies a GetJSON error. what names the resource for the
// user-facing message.
func ToAppError(err error, what string) *apierrors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := apierrors.As(err); ok {
		return appErr
	}

	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		switch {
		case statusErr.StatusCode == http.StatusRequestTimeout:
			return apierrors.NewApplicationError(apierrors.ErrCodeRequestTimeout,
				fmt.Sprintf("Timed out fetching %s", what), err)
		case statusErr.Message == invalidJSONMessage:
			return apierrors.NewApplicationError(apierrors.ErrCodeMalformedData,
				fmt.Sprintf("Received malformed %s", what), err)
		case statusErr.Retryable():
			return apierrors.NewApplicationError(apierrors.ErrCodeServiceUnavailable,
				fmt.Sprintf("The %s service is temporarily unavailable", what), err)
		default:
			return apierrors.NewApplicationError(apierrors.ErrCodeUpstreamRejected,
				fmt.Sprintf("The %s service rejected the request", what), err)
		}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apierrors.NewApplicationError(apierrors.ErrCodeRequestTimeout,
			fmt.Sprintf("Request for %s was cancelled", what), err)
	default:
		return apierrors.NewApplicationError(apierrors.ErrCodeNetworkError,
			fmt.Sprintf("Could not reach the %s service", what), err)
	}
}
