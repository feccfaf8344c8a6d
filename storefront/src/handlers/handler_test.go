package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/middleware"
	"github.com/gaolamthuy/storefront/storefront/src/catalog"
	"github.com/gaolamthuy/storefront/storefront/src/models"
	"github.com/gaolamthuy/storefront/storefront/src/services"
)

type fakeCatalog struct {
	degraded *apierrors.AppError
	err      *apierrors.AppError

	gotKey        catalog.SecondaryKey
	gotCategories []string
	gotFilter     catalog.Filter
	gotVariant    models.VariantKey
}

func (f *fakeCatalog) ListProducts(_ context.Context, key catalog.SecondaryKey, filter catalog.Filter) (services.Result[[]models.Product], *apierrors.AppError) {
	f.gotKey, f.gotCategories, f.gotFilter = key, filter.Categories, filter
	if f.err != nil {
		return services.Result[[]models.Product]{}, f.err
	}
	data := []models.Product{{ID: "1", Name: "504"}}
	if f.degraded != nil {
		data = []models.Product{}
	}
	return services.Result[[]models.Product]{Data: data, Degraded: f.degraded}, nil
}

func (f *fakeCatalog) GroupedProducts(context.Context) (services.Result[[]models.CategoryGroup], *apierrors.AppError) {
	return services.Result[[]models.CategoryGroup]{Data: []models.CategoryGroup{{Category: "Gạo nở"}}}, nil
}

func (f *fakeCatalog) VisibleProducts(_ context.Context, categories []string) (services.Result[services.VisibleProducts], *apierrors.AppError) {
	f.gotCategories = categories
	return services.Result[services.VisibleProducts]{Data: services.VisibleProducts{IDs: []string{"1"}}}, nil
}

func (f *fakeCatalog) ProductDetail(_ context.Context, slug string, variant models.VariantKey) (models.ProductDetail, *apierrors.AppError) {
	f.gotVariant = variant
	if slug != "st25" {
		return models.ProductDetail{}, apierrors.NewBusinessError(apierrors.ErrCodeProductNotFound, "Product '"+slug+"' not found", nil)
	}
	return models.ProductDetail{Product: models.Product{ID: "3", Slug: "st25"}}, nil
}

func (f *fakeCatalog) Categories(context.Context) (services.Result[[]models.Category], *apierrors.AppError) {
	return services.Result[[]models.Category]{Data: []models.Category{{ID: "10", Name: "Gạo nở"}}}, nil
}

func (f *fakeCatalog) PriceList(context.Context) (services.PriceListFile, *apierrors.AppError) {
	return services.PriceListFile{Name: "bang_gia.xlsx", Content: []byte("PK")}, nil
}

type fakeCustomers struct{}

func (fakeCustomers) GetByCode(_ context.Context, code string) (models.Customer, *apierrors.AppError) {
	if code != "KH001" {
		return models.Customer{}, apierrors.NewBusinessError(apierrors.ErrCodeCustomerNotFound, "not found", nil)
	}
	return models.Customer{Code: code, Name: "Cô Lan"}, nil
}

func newTestApp(svc *fakeCatalog) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	middleware.Register(app, middleware.Config{})
	RegisterRoutes(app, NewStorefrontHandler(svc, fakeCustomers{}))
	return app
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Notice *struct {
		Code      string `json:"code"`
		Retryable bool   `json:"retryable"`
	} `json:"notice"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func do(t *testing.T, app *fiber.App, target string) (*http.Response, envelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	assert.NilError(t, err)
	body, err := io.ReadAll(resp.Body)
	assert.NilError(t, err)
	var env envelope
	if resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON {
		assert.NilError(t, json.Unmarshal(body, &env))
	}
	return resp, env
}

func TestListProductsParsesQuery(t *testing.T) {
	svc := &fakeCatalog{}
	resp, env := do(t, newTestApp(svc), "/products?sort=price&category=G%E1%BA%A1o+n%E1%BB%9F&category=N%E1%BA%BFp")

	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.Equal(t, env.Status, "success")
	assert.Assert(t, env.Notice == nil)
	assert.Equal(t, svc.gotKey, catalog.SortByPrice)
	assert.DeepEqual(t, svc.gotCategories, []string{"Gạo nở", "Nếp"})
}

func TestListProductsSearchAndAttributeFilters(t *testing.T) {
	svc := &fakeCatalog{}
	resp, _ := do(t, newTestApp(svc), "/products?q=g%E1%BA%A1o+th%C6%A1m&attr=grade:A&attr=origin:S%C3%B3c+Tr%C4%83ng&featured=4")

	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.Equal(t, svc.gotFilter.Text, "gạo thơm")
	assert.Equal(t, svc.gotFilter.Featured, 4)
	assert.DeepEqual(t, svc.gotFilter.Attributes, []models.Attribute{
		{Name: "grade", Value: "A"},
		{Name: "origin", Value: "Sóc Trăng"},
	})
}

func TestListProductsRejectsMalformedAttributeFilter(t *testing.T) {
	for _, q := range []string{"attr=grade", "attr=:A", "featured=500"} {
		resp, env := do(t, newTestApp(&fakeCatalog{}), "/products?"+q)
		assert.Equal(t, resp.StatusCode, http.StatusBadRequest, q)
		assert.Equal(t, env.Error.Code, apierrors.ErrCodeRequestValidation, q)
	}
}

func TestListProductsRejectsUnknownSort(t *testing.T) {
	resp, env := do(t, newTestApp(&fakeCatalog{}), "/products?sort=stock")
	assert.Equal(t, resp.StatusCode, http.StatusBadRequest)
	assert.Equal(t, env.Error.Code, apierrors.ErrCodeRequestValidation)
}

func TestListProductsDegradedNotice(t *testing.T) {
	svc := &fakeCatalog{degraded: apierrors.NewApplicationError(apierrors.ErrCodeServiceUnavailable, "down", nil)}
	resp, env := do(t, newTestApp(svc), "/products")

	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.Assert(t, env.Notice != nil)
	assert.Equal(t, env.Notice.Code, apierrors.ErrCodeServiceUnavailable)
	assert.Assert(t, env.Notice.Retryable)
	assert.Equal(t, string(env.Data), "[]")
}

func TestListProductsConfigurationError(t *testing.T) {
	svc := &fakeCatalog{err: apierrors.NewApplicationError(apierrors.ErrCodeConfiguration, "missing url", nil)}
	resp, env := do(t, newTestApp(svc), "/products")
	assert.Equal(t, resp.StatusCode, http.StatusInternalServerError)
	assert.Equal(t, env.Error.Code, apierrors.ErrCodeConfiguration)
}

func TestGroupedRouteNotShadowedBySlug(t *testing.T) {
	resp, env := do(t, newTestApp(&fakeCatalog{}), "/products/grouped")
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.Assert(t, is.Contains(string(env.Data), "Gạo nở"))
}

func TestProductBySlug(t *testing.T) {
	svc := &fakeCatalog{}
	app := newTestApp(svc)

	resp, _ := do(t, app, "/products/st25?variant=child")
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.Equal(t, svc.gotVariant, models.VariantChild)

	resp, env := do(t, app, "/products/unknown")
	assert.Equal(t, resp.StatusCode, http.StatusNotFound)
	assert.Equal(t, env.Error.Code, apierrors.ErrCodeProductNotFound)

	resp, env = do(t, app, "/products/st25?variant=grade")
	assert.Equal(t, resp.StatusCode, http.StatusBadRequest)
	assert.Equal(t, env.Error.Code, apierrors.ErrCodeRequestValidation)
}

func TestVisibleAndCategories(t *testing.T) {
	svc := &fakeCatalog{}
	app := newTestApp(svc)

	resp, _ := do(t, app, "/products/visible?category=T%E1%BA%A5m")
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.DeepEqual(t, svc.gotCategories, []string{"Tấm"})

	resp, env := do(t, app, "/categories")
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.Assert(t, is.Contains(string(env.Data), `"id":"10"`))
}

func TestPriceListDownload(t *testing.T) {
	resp, err := newTestApp(&fakeCatalog{}).Test(httptest.NewRequest(http.MethodGet, "/price-list.xlsx", nil))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.Equal(t, resp.Header.Get(fiber.HeaderContentType), xlsxContentType)
	assert.Assert(t, is.Contains(resp.Header.Get(fiber.HeaderContentDisposition), "bang_gia.xlsx"))
}

func TestCustomerLookup(t *testing.T) {
	app := newTestApp(&fakeCatalog{})

	resp, env := do(t, app, "/customers/KH001")
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.Assert(t, is.Contains(string(env.Data), "Cô Lan"))

	resp, env = do(t, app, "/customers/KH999")
	assert.Equal(t, resp.StatusCode, http.StatusNotFound)
	assert.Equal(t, env.Error.Code, apierrors.ErrCodeCustomerNotFound)
}

func TestHealth(t *testing.T) {
	resp, err := newTestApp(&fakeCatalog{}).Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NilError(t, err)
	assert.Equal(t, resp.StatusCode, http.StatusOK)
}
