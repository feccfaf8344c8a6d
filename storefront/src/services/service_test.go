package services

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/metrics"
	"github.com/gaolamthuy/storefront/storefront/src/catalog"
	"github.com/gaolamthuy/storefront/storefront/src/models"
)

type fakeCatalogRepo struct {
	payload models.CatalogPayload
	err     *apierrors.AppError
	calls   int
}

func (f *fakeCatalogRepo) Fetch(context.Context) (models.CatalogPayload, *apierrors.AppError) {
	f.calls++
	return f.payload, f.err
}

func (f *fakeCatalogRepo) Source() string { return "fake" }

type fakeImages struct{ pool catalog.SharedImagePool }

func (f fakeImages) Pool(context.Context) catalog.SharedImagePool { return f.pool }

const testPayload = `[
	{"products": [
		{"id": 1, "code": "504", "name": "504", "fullName": "504 (kg)", "basePrice": 16500, "unit": "kg", "categoryId": 10, "categoryName": "Gạo nở",
		 "attributes": [{"attributeName": "grade", "attributeValue": "A"}],
		 "units": [{"id": 7, "code": "504-50", "fullName": "504 (bao 50kg)", "unit": "bao 50kg", "basePrice": 815000, "allowsSale": false}]},
		{"id": 2, "code": "504L", "name": "504 lở", "basePrice": 15500, "categoryName": "Gạo nở", "masterProductId": 1,
		 "attributes": [{"attributeName": "grade", "attributeValue": "B"}]},
		{"id": 3, "code": "ST25", "name": "ST25", "basePrice": 32000, "categoryId": 20, "categoryName": "Gạo dẻo",
		 "glt": {"glt_slug": "st25"}},
		{"id": 4, "code": "NEP", "name": "Nếp cái", "basePrice": 28000, "categoryName": "Nếp"},
		{"id": 5, "code": "X", "name": "Đặc biệt", "basePrice": 50000, "categoryName": "Quà tặng"},
		{"kiotviet_id": "6", "full_name": "Tấm thơm", "base_price": 14000, "category_name": "Tấm",
		 "child_product": {"full_name": "Tấm thơm loại 1", "base_price": 15000, "unit": "kg"}},
		"broken",
		{"name": "no id"}
	]},
	{"product_categories": [
		{"categoryId": 10, "categoryName": "Gạo nở", "glt": {"glt_is_active": true, "rank": 1}},
		{"categoryId": 20, "categoryName": "Gạo dẻo", "glt": {"glt_is_active": true, "rank": 2}},
		{"categoryId": 30, "categoryName": "Ẩn", "glt": {"glt_is_active": false}}
	]}
]`

func newTestService(t *testing.T, repo *fakeCatalogRepo, pool catalog.SharedImagePool) (CatalogService, *metrics.Registry) {
	t.Helper()
	if repo.payload.Products == nil && repo.err == nil {
		assert.NilError(t, json.Unmarshal([]byte(testPayload), &repo.payload))
	}
	reg := metrics.NewRegistry()
	svc := NewCatalogService(repo, fakeImages{pool: pool}, Options{
		CategoryOrder: []string{"Gạo nở", "Gạo dẻo", "Tấm", "Nếp"},
		PriceLocale:   "vi",
		ShopBaseURL:   "https://shop.example",
		ContactURL:    "https://zalo.me/0901467300",
	}, reg)
	return svc, reg
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestListProductsSortsAndSkipsBadRecords(t *testing.T) {
	svc, reg := newTestService(t, &fakeCatalogRepo{}, catalog.SharedImagePool{})

	result, appErr := svc.ListProducts(context.Background(), catalog.SortByPrice, catalog.Filter{})
	assert.Assert(t, appErr == nil)
	assert.Assert(t, result.Degraded == nil)
	assert.DeepEqual(t, ids(result.Data), []string{"1", "3", "6", "4", "5"})

	assert.Equal(t, testutil.ToFloat64(reg.RecordsSkipped), 2.0)
	assert.Equal(t, testutil.ToFloat64(reg.CatalogSize), 5.0)
}

func TestListProductsFiltersCategories(t *testing.T) {
	svc, _ := newTestService(t, &fakeCatalogRepo{}, catalog.SharedImagePool{})

	result, appErr := svc.ListProducts(context.Background(), catalog.SortNone, catalog.Filter{Categories: []string{"Nếp", "20"}})
	assert.Assert(t, appErr == nil)
	assert.DeepEqual(t, ids(result.Data), []string{"3", "4"})
}

func TestListProductsSearchAttributesAndFeatured(t *testing.T) {
	svc, _ := newTestService(t, &fakeCatalogRepo{}, catalog.SharedImagePool{})
	ctx := context.Background()

	result, appErr := svc.ListProducts(ctx, catalog.SortNone, catalog.Filter{Text: "gao no"})
	assert.Assert(t, appErr == nil)
	assert.DeepEqual(t, ids(result.Data), []string{"1"})

	// grade B only exists on the variant, so the master matches through its family
	result, _ = svc.ListProducts(ctx, catalog.SortNone, catalog.Filter{
		Attributes: []models.Attribute{{Name: "Grade", Value: "b"}},
	})
	assert.DeepEqual(t, ids(result.Data), []string{"1"})

	result, _ = svc.ListProducts(ctx, catalog.SortNone, catalog.Filter{Featured: 2})
	assert.DeepEqual(t, ids(result.Data), []string{"1", "3"})

	result, _ = svc.ListProducts(ctx, catalog.SortNone, catalog.Filter{Text: "không có"})
	assert.Assert(t, result.Data != nil)
	assert.Assert(t, is.Len(result.Data, 0))
}

func TestListProductsDegradesOnTransientFailure(t *testing.T) {
	repo := &fakeCatalogRepo{err: apierrors.NewApplicationError(apierrors.ErrCodeServiceUnavailable, "down", nil)}
	svc, _ := newTestService(t, repo, catalog.SharedImagePool{})

	result, appErr := svc.ListProducts(context.Background(), catalog.SortNone, catalog.Filter{})
	assert.Assert(t, appErr == nil)
	assert.Assert(t, result.Degraded != nil)
	assert.Equal(t, result.Degraded.Code, apierrors.ErrCodeServiceUnavailable)
	assert.Assert(t, result.Data != nil)
	assert.Assert(t, is.Len(result.Data, 0))
}

func TestListProductsFailsOnConfigurationError(t *testing.T) {
	repo := &fakeCatalogRepo{err: apierrors.NewApplicationError(apierrors.ErrCodeConfiguration, "no url", nil)}
	svc, _ := newTestService(t, repo, catalog.SharedImagePool{})

	_, appErr := svc.ListProducts(context.Background(), catalog.SortNone, catalog.Filter{})
	assert.Assert(t, appErr != nil)
	assert.Equal(t, appErr.Code, apierrors.ErrCodeConfiguration)
}

func TestGroupedProducts(t *testing.T) {
	svc, _ := newTestService(t, &fakeCatalogRepo{}, catalog.SharedImagePool{})

	result, appErr := svc.GroupedProducts(context.Background())
	assert.Assert(t, appErr == nil)
	names := make([]string, 0)
	for _, g := range result.Data {
		names = append(names, g.Category)
	}
	assert.DeepEqual(t, names, []string{"Gạo nở", "Gạo dẻo", "Tấm", "Nếp", "Quà tặng"})
	assert.Assert(t, is.Len(catalog.Flatten(result.Data), 5))
}

func TestVisibleProducts(t *testing.T) {
	svc, _ := newTestService(t, &fakeCatalogRepo{}, catalog.SharedImagePool{})

	result, appErr := svc.VisibleProducts(context.Background(), []string{"Tấm"})
	assert.Assert(t, appErr == nil)
	assert.DeepEqual(t, result.Data.IDs, []string{"6"})
}

func TestCategoriesActiveOnly(t *testing.T) {
	svc, _ := newTestService(t, &fakeCatalogRepo{}, catalog.SharedImagePool{})

	result, appErr := svc.Categories(context.Background())
	assert.Assert(t, appErr == nil)
	assert.Assert(t, is.Len(result.Data, 2))
	assert.Equal(t, result.Data[1].URL, "https://shop.example/danh-muc/gao-deo")
}

func TestProductDetailDefaultsToChild(t *testing.T) {
	pool := catalog.NewSharedImagePool([]models.Image{{URL: "https://cdn/1kg.jpg", Role: "shared-main-1kg"}})
	svc, _ := newTestService(t, &fakeCatalogRepo{}, pool)

	detail, appErr := svc.ProductDetail(context.Background(), "6", "")
	assert.Assert(t, appErr == nil)
	assert.Equal(t, detail.View.Variant, models.VariantChild)
	assert.Equal(t, detail.View.FullName, "Tấm thơm loại 1")
	assert.Equal(t, detail.View.PriceText, "15.000 ₫")
	assert.Equal(t, detail.View.Image.URL, "https://cdn/1kg.jpg")

	detail, appErr = svc.ProductDetail(context.Background(), "6", models.VariantBase)
	assert.Assert(t, appErr == nil)
	assert.Equal(t, detail.View.Variant, models.VariantBase)
	assert.Equal(t, detail.View.Price, int64(14000))
}

func TestProductDetailFamilyAndAttributes(t *testing.T) {
	svc, _ := newTestService(t, &fakeCatalogRepo{}, catalog.SharedImagePool{})

	detail, appErr := svc.ProductDetail(context.Background(), "504", models.VariantChild)
	assert.Assert(t, appErr == nil)
	assert.Equal(t, detail.Product.ID, "1")
	assert.Equal(t, detail.View.Variant, models.VariantBase)
	assert.DeepEqual(t, detail.AttributeGroups, []models.AttributeGroup{{Name: "grade", Values: []string{"A", "B"}}})
	assert.Assert(t, is.Len(detail.Family, 2))
	assert.Assert(t, detail.Family[0].Current)
	assert.Assert(t, is.Len(detail.View.Units, 1))
	assert.Assert(t, detail.View.Units[0].NotSoldRetail)
}

func TestProductDetailNotFound(t *testing.T) {
	svc, _ := newTestService(t, &fakeCatalogRepo{}, catalog.SharedImagePool{})

	_, appErr := svc.ProductDetail(context.Background(), "missing", "")
	assert.Equal(t, appErr.Code, apierrors.ErrCodeProductNotFound)
}

func TestPriceListSpreadsheet(t *testing.T) {
	svc, _ := newTestService(t, &fakeCatalogRepo{}, catalog.SharedImagePool{})

	file, appErr := svc.PriceList(context.Background())
	assert.Assert(t, appErr == nil)
	assert.Assert(t, is.Contains(file.Name, ".xlsx"))

	book, err := excelize.OpenReader(bytes.NewReader(file.Content))
	assert.NilError(t, err)
	rows, err := book.GetRows(priceListSheet)
	assert.NilError(t, err)

	// header, 5 masters, one child product, one packaging unit
	assert.Assert(t, is.Len(rows, 8))
	assert.Equal(t, rows[0][0], "Danh mục")
	assert.Equal(t, rows[1][2], "504 (kg)")
	assert.Equal(t, rows[1][5], "16.500 ₫")
	assert.Equal(t, rows[2][6], "Không bán lẻ")
}

func TestPriceListEmptyCatalog(t *testing.T) {
	repo := &fakeCatalogRepo{payload: models.CatalogPayload{Products: []json.RawMessage{}}}
	svc, _ := newTestService(t, repo, catalog.SharedImagePool{})

	_, appErr := svc.PriceList(context.Background())
	assert.Equal(t, appErr.Code, apierrors.ErrCodeEmptyCatalog)
}

type fakeCustomerRepo struct {
	customer models.Customer
	err      *apierrors.AppError
}

func (f fakeCustomerRepo) GetByCode(context.Context, string) (models.Customer, *apierrors.AppError) {
	return f.customer, f.err
}

func TestCustomerService(t *testing.T) {
	svc := NewCustomerService(fakeCustomerRepo{customer: models.Customer{Code: "KH1", TotalPurchaseAmount: 9800000}}, "vi")
	c, appErr := svc.GetByCode(context.Background(), "KH1")
	assert.Assert(t, appErr == nil)
	assert.Equal(t, c.TotalPurchaseDisplay, "9.800.000 ₫")

	_, appErr = NewCustomerService(nil, "vi").GetByCode(context.Background(), "KH1")
	assert.Equal(t, appErr.Code, apierrors.ErrCodeConfiguration)
}
