package services

import (
	"context"
	"log/slog"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/globals"
	"github.com/gaolamthuy/storefront/common/metrics"
	"github.com/gaolamthuy/storefront/storefront/src/catalog"
	"github.com/gaolamthuy/storefront/storefront/src/models"
	"github.com/gaolamthuy/storefront/storefront/src/repositories"
)

// Result carries data plus, when the catalog source failed transiently, the
// error that left it empty. Handlers turn Degraded into a retry notice.
type Result[T any] struct {
	Data     T
	Degraded *apierrors.AppError
}

type VisibleProducts struct {
	IDs      []string         `json:"ids"`
	Products []models.Product `json:"products"`
}

// PriceListFile is a generated spreadsheet.
type PriceListFile struct {
	Name    string
	Content []byte
}

type CatalogService interface {
	ListProducts(ctx context.Context, key catalog.SecondaryKey, filter catalog.Filter) (Result[[]models.Product], *apierrors.AppError)
	GroupedProducts(ctx context.Context) (Result[[]models.CategoryGroup], *apierrors.AppError)
	VisibleProducts(ctx context.Context, categories []string) (Result[VisibleProducts], *apierrors.AppError)
	ProductDetail(ctx context.Context, slug string, variant models.VariantKey) (models.ProductDetail, *apierrors.AppError)
	Categories(ctx context.Context) (Result[[]models.Category], *apierrors.AppError)
	PriceList(ctx context.Context) (PriceListFile, *apierrors.AppError)
}

type CustomerService interface {
	GetByCode(ctx context.Context, code string) (models.Customer, *apierrors.AppError)
}

// Options are the presentation settings of the catalog service.
type Options struct {
	CategoryOrder []string
	PriceLocale   string
	ShopBaseURL   string
	ContactURL    string
}

type catalogService struct {
	repo    repositories.CatalogRepository
	images  repositories.SharedImageRepository
	opts    Options
	prices  *catalog.PriceFormatter
	links   catalog.LinkBuilder
	metrics *metrics.Registry
	logger  *slog.Logger
}

// NewCatalogService wires the catalog operations. reg may be nil.
func NewCatalogService(repo repositories.CatalogRepository, images repositories.SharedImageRepository, opts Options, reg *metrics.Registry) CatalogService {
	return &catalogService{
		repo:    repo,
		images:  images,
		opts:    opts,
		prices:  catalog.NewPriceFormatter(opts.PriceLocale),
		links:   catalog.NewLinkBuilder(opts.ShopBaseURL, opts.ContactURL),
		metrics: reg,
		logger:  globals.Logger(),
	}
}

type customerService struct {
	repo   repositories.CustomerRepository
	prices *catalog.PriceFormatter
	logger *slog.Logger
}

// NewCustomerService accepts a nil repo when no database is configured;
// lookups then fail with a configuration error.
func NewCustomerService(repo repositories.CustomerRepository, priceLocale string) CustomerService {
	return &customerService{
		repo:   repo,
		prices: catalog.NewPriceFormatter(priceLocale),
		logger: globals.Logger(),
	}
}
