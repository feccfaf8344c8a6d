package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/cache"
	db "github.com/gaolamthuy/storefront/common/db"
	"github.com/gaolamthuy/storefront/common/globals"
	"github.com/gaolamthuy/storefront/common/metrics"
	"github.com/gaolamthuy/storefront/storefront/src/catalog"
	"github.com/gaolamthuy/storefront/storefront/src/models"
)

const (
	SourceUpstream = "upstream"
	SourceFile     = "file"
)

// JSONFetcher is the part of the upstream client the repositories use.
type JSONFetcher interface {
	GetJSON(ctx context.Context, rawURL string, dest interface{}) error
}

// CatalogRepository yields the raw product endpoint payload.
type CatalogRepository interface {
	Fetch(ctx context.Context) (models.CatalogPayload, *apierrors.AppError)
	Source() string
}

// SharedImageRepository yields the shared fallback image pool. It never
// fails: an unreachable listing is an empty pool.
type SharedImageRepository interface {
	Pool(ctx context.Context) catalog.SharedImagePool
}

type CustomerRepository interface {
	GetByCode(ctx context.Context, code string) (models.Customer, *apierrors.AppError)
}

type upstreamCatalogRepository struct {
	client JSONFetcher
	url    string
	logger *slog.Logger
}

// NewUpstreamCatalogRepository reads the catalog from the API. An empty url
// is reported as a configuration error on every Fetch.
func NewUpstreamCatalogRepository(client JSONFetcher, url string) CatalogRepository {
	return &upstreamCatalogRepository{
		client: client,
		url:    url,
		logger: globals.Logger(),
	}
}

type fileCatalogRepository struct {
	database *db.FileDatabase
	logger   *slog.Logger
}

// NewFileCatalogRepository serves a payload snapshot stored on disk.
func NewFileCatalogRepository(path string) CatalogRepository {
	return &fileCatalogRepository{
		database: db.NewFileDatabase(path),
		logger:   globals.Logger(),
	}
}

// NewCatalogRepository prefers the API and falls back to the snapshot file.
func NewCatalogRepository(client JSONFetcher, apiURL, filePath string) CatalogRepository {
	if apiURL == "" && filePath != "" {
		return NewFileCatalogRepository(filePath)
	}
	return NewUpstreamCatalogRepository(client, apiURL)
}

const sharedImagesCacheKey = "products_shared_image"

type sharedImageRepository struct {
	client  JSONFetcher
	url     string
	store   cache.Store[[]models.Image]
	metrics *metrics.Registry
	logger  *slog.Logger
}

// NewSharedImageRepository caches the role-tagged listing in store. reg may be nil.
func NewSharedImageRepository(client JSONFetcher, url string, store cache.Store[[]models.Image], reg *metrics.Registry) SharedImageRepository {
	return &sharedImageRepository{
		client:  client,
		url:     url,
		store:   store,
		metrics: reg,
		logger:  globals.Logger(),
	}
}

type customerRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewCustomerRepository(database *sql.DB) CustomerRepository {
	return &customerRepository{
		db:     database,
		logger: globals.Logger(),
	}
}
