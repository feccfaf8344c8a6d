package attributes

import (
	"go.opentelemetry.io/otel/attribute"
)

var (
	AttrProductIDKey     = attribute.Key("app.product.id")
	AttrProductSlugKey   = attribute.Key("app.product.slug")
	AttrProductCountKey  = attribute.Key("app.products.count")
	AttrSkippedCountKey  = attribute.Key("app.products.skipped")
	AttrCategoryCountKey = attribute.Key("app.categories.count")
	AttrVariantKey       = attribute.Key("app.variant")
	AttrSortModeKey      = attribute.Key("app.sort.mode")
	AttrSearchQueryKey   = attribute.Key("app.search.query")
	AttrCatalogSourceKey = attribute.Key("app.catalog.source")
	AttrCacheHitKey      = attribute.Key("app.cache.hit")
	AttrUpstreamURLKey   = attribute.Key("app.upstream.url")
	AttrUpstreamAttempt  = attribute.Key("app.upstream.attempt")
	AttrCustomerCodeKey  = attribute.Key("app.customer.code")
	AttrDBFilePathKey    = attribute.Key("db.file.path")
	AttrSharedImageCount = attribute.Key("app.shared_images.count")
)
