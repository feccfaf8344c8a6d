package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gotest.tools/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	cases := map[string]int{
		ErrCodeProductNotFound:    http.StatusNotFound,
		ErrCodeRequestValidation:  http.StatusBadRequest,
		ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
		ErrCodeRequestTimeout:     http.StatusGatewayTimeout,
		ErrCodeConfiguration:      http.StatusInternalServerError,
		ErrCodeUpstreamRejected:   http.StatusBadGateway,
	}
	for code, want := range cases {
		assert.Equal(t, want, NewAppError(code, "x", nil).StatusCode(), code)
	}
}

func TestRetryable(t *testing.T) {
	assert.Equal(t, true, NewAppError(ErrCodeServiceUnavailable, "down", nil).Retryable())
	assert.Equal(t, false, NewAppError(ErrCodeConfiguration, "missing url", nil).Retryable())
	assert.Equal(t, false, NewBusinessError(ErrCodeProductNotFound, "nope", nil).Retryable())
}

func TestAsUnwrapsWrappedAppError(t *testing.T) {
	cause := errors.New("boom")
	appErr := NewBusinessError(ErrCodeCustomerNotFound, "missing", cause)
	wrapped := fmt.Errorf("lookup: %w", appErr)

	got, ok := As(wrapped)
	assert.Equal(t, true, ok)
	assert.Equal(t, ErrCodeCustomerNotFound, got.Code)
	assert.Equal(t, CategoryBusiness, got.Category)
	assert.Equal(t, true, errors.Is(wrapped, cause))
}
