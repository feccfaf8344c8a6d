package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gotest.tools/assert"

	"github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/apiresponses"
	"github.com/gaolamthuy/storefront/common/metrics"
)

func newTestApp(reg *metrics.Registry) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	Register(app, Config{Metrics: reg})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(apiresponses.NewSuccessResponse("fine").WithRequestID(RequestID(c)))
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apierrors.NewBusinessError(apierrors.ErrCodeProductNotFound, "Không tìm thấy sản phẩm", nil)
	})
	app.Get("/down", func(c *fiber.Ctx) error {
		return apierrors.NewApplicationError(apierrors.ErrCodeServiceUnavailable, "Catalog unavailable", errors.New("503"))
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("nil map write")
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("something odd")
	})
	return app
}

func decodeError(t *testing.T, resp *http.Response) apiresponses.ErrorResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	assert.NilError(t, err)
	var out apiresponses.ErrorResponse
	assert.NilError(t, json.Unmarshal(body, &out))
	return out
}

func TestSuccessCarriesRequestID(t *testing.T) {
	app := newTestApp(nil)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusOK)

	header := resp.Header.Get(fiber.HeaderXRequestID)
	assert.Assert(t, len(header) == 36)

	var body apiresponses.SuccessResponse
	assert.NilError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, body.RequestID, header)
}

func TestAppErrorsRenderEnvelope(t *testing.T) {
	app := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusNotFound)
	out := decodeError(t, resp)
	assert.Equal(t, out.Status, "error")
	assert.Equal(t, out.Error.Code, apierrors.ErrCodeProductNotFound)
	assert.Equal(t, out.Error.Retryable, false)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusServiceUnavailable)
	assert.Equal(t, decodeError(t, resp).Error.Retryable, true)
}

func TestPanicBecomesSystemPanic(t *testing.T) {
	app := newTestApp(nil)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusInternalServerError)
	assert.Equal(t, decodeError(t, resp).Error.Code, apierrors.ErrCodeSystemPanic)
}

func TestUnknownRoutesAndPlainErrors(t *testing.T) {
	app := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusNotFound)
	assert.Equal(t, decodeError(t, resp).Error.Code, apierrors.ErrCodeRouteNotFound)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusInternalServerError)
	assert.Equal(t, decodeError(t, resp).Error.Code, apierrors.ErrCodeUnknown)
}

func TestRequestMetricsRecorded(t *testing.T) {
	reg := metrics.NewRegistry()
	app := newTestApp(reg)

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.NilError(t, err)
	assert.Equal(t, testutil.ToFloat64(reg.HTTPRequests.WithLabelValues("GET", "/missing", "4xx")), 1.0)
}
