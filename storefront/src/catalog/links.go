package catalog

import (
	"strings"

	"github.com/gaolamthuy/storefront/storefront/src/models"
)

// LinkBuilder derives outbound redirects. Explicit URLs from the record are
// passed through untouched.
type LinkBuilder struct {
	ShopBaseURL string
	ContactURL  string
}

func NewLinkBuilder(shopBaseURL, contactURL string) LinkBuilder {
	return LinkBuilder{
		ShopBaseURL: strings.TrimRight(shopBaseURL, "/"),
		ContactURL:  contactURL,
	}
}

// ProductURL prefers the record's own shop URL, else /san-pham/{slug}.
func (l LinkBuilder) ProductURL(p models.Product) string {
	if p.KiotvietShopURL != "" {
		return p.KiotvietShopURL
	}
	if l.ShopBaseURL == "" || p.Slug == "" {
		return ""
	}
	return l.ShopBaseURL + "/san-pham/" + p.Slug
}

func (l LinkBuilder) CategoryURL(categoryName string) string {
	slug := Slugify(categoryName)
	if l.ShopBaseURL == "" || slug == "" {
		return ""
	}
	return l.ShopBaseURL + "/danh-muc/" + slug
}

func (l LinkBuilder) For(p models.Product) models.Links {
	return models.Links{
		Order:    l.ProductURL(p),
		Category: l.CategoryURL(p.CategoryName),
		Shopee:   p.ShopeeURL,
		Contact:  l.ContactURL,
	}
}
