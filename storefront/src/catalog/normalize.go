package catalog

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gaolamthuy/storefront/storefront/src/models"
)

const (
	UnnamedProduct  = "Sản phẩm không tên"
	OtherCategory   = "Khác"
	collationLocale = "vi"
)

// Normalize maps one decoded record to a Product. all is the full decoded
// listing, used to aggregate a master's family attributes. ok is false when
// the record has no usable identifier.
func Normalize(raw models.RawProduct, all []models.RawProduct) (p models.Product, ok bool) {
	id := raw.Identifier()
	if id == "" {
		return models.Product{}, false
	}

	name := firstNonEmpty(raw.Name, raw.FullName, UnnamedProduct)
	p = models.Product{
		ID:              id,
		KiotvietID:      string(raw.KiotvietID),
		Code:            raw.Code,
		Name:            name,
		FullName:        firstNonEmpty(raw.FullName, name),
		Description:     firstNonEmpty(raw.Description, raw.GLT.Description),
		Price:           int64(raw.BasePrice),
		Unit:            raw.Unit,
		ConversionValue: raw.ConversionValue,
		AllowsSale:      raw.AllowsSale,
		IsActive:        raw.IsActive,
		RetailPromotion: raw.GLT.RetailPromotion,
		CategoryID:      string(raw.CategoryID),
		CategoryName:    firstNonEmpty(raw.CategoryName, OtherCategory),
		MasterProductID: raw.MasterID(),
		OrderTemplate:   raw.OrderTemplate,
		Images:          normalizeImages(raw.Images, raw.GLT),
		Attributes:      normalizeAttributes(id, raw.Attributes),
		Units:           normalizeUnits(raw.Units),
		ChildUnit:       normalizeChildUnit(raw.ChildUnit),
		ChildProducts:   normalizeChildProducts(raw.ChildProducts),
		KiotvietShopURL: raw.GLT.KiotvietShopURL,
		ShopeeURL:       raw.GLT.ShopeeURL,
		Schema:          raw.Schema.String(),
	}
	p.Slug = firstNonEmpty(raw.GLT.Slug, Slugify(raw.Code), id)

	if raw.Kind() == models.KindMaster {
		p.FamilyAttributes = familyAttributes(id, all)
		p.HasVariants = raw.HasVariants || hasVariantsIn(id, all) || len(p.ChildProducts) > 0
	} else {
		p.FamilyAttributes = slices.Clone(p.Attributes)
	}
	return p, true
}

// NormalizeRecords normalizes every identifiable record, masters and
// variants alike, in input order. skipped counts records without an id.
func NormalizeRecords(all []models.RawProduct) (products []models.Product, skipped int) {
	products = make([]models.Product, 0, len(all))
	for _, raw := range all {
		p, ok := Normalize(raw, all)
		if !ok {
			skipped++
			continue
		}
		products = append(products, p)
	}
	return products, skipped
}

// NormalizeAll returns the listing view: master products only, in input order.
func NormalizeAll(all []models.RawProduct) []models.Product {
	products, _ := NormalizeRecords(all)
	return MastersOf(products)
}

func MastersOf(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.IsMaster() {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeCategories keeps active categories ordered by rank, unranked last,
// then by name.
func NormalizeCategories(raw []models.RawCategory) []models.Category {
	out := make([]models.Category, 0, len(raw))
	for _, c := range raw {
		if !c.Active || c.Name == "" {
			continue
		}
		out = append(out, models.Category{
			ID:                string(c.ID),
			Name:              c.Name,
			Slug:              Slugify(c.Name),
			Rank:              c.Rank,
			HomepageItemCount: c.HomepageItemCount,
			BorderColor:       c.BorderColor,
		})
	}

	col := newCollator()
	slices.SortStableFunc(out, func(a, b models.Category) int {
		switch {
		case a.Rank != nil && b.Rank != nil && *a.Rank != *b.Rank:
			return cmp.Compare(*a.Rank, *b.Rank)
		case a.Rank != nil && b.Rank == nil:
			return -1
		case a.Rank == nil && b.Rank != nil:
			return 1
		}
		return col.CompareString(a.Name, b.Name)
	})
	return out
}

func normalizeImages(raw []models.RawImage, glt models.RawGLT) []models.Image {
	images := make([]models.Image, 0, len(raw)+3)
	seen := make(map[string]bool, len(raw)+3)
	add := func(url, role string) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		images = append(images, models.Image{URL: url, Role: role})
	}

	for _, img := range raw {
		add(img.URL, img.Role)
	}
	add(glt.GalleryZoomURL, models.RoleGalleryZoom)
	add(glt.GalleryThumbnailURL, models.RoleGalleryThumbnail)
	add(glt.CustomImageURL, models.RoleCustom)
	return images
}

func normalizeAttributes(productID string, raw []models.RawAttribute) []models.Attribute {
	attrs := make([]models.Attribute, 0, len(raw))
	for _, a := range raw {
		if a.AttributeName == "" {
			continue
		}
		attrs = append(attrs, models.Attribute{
			ProductID: firstNonEmpty(string(a.ProductID), productID),
			Name:      a.AttributeName,
			Value:     a.AttributeValue,
		})
	}
	return attrs
}

func normalizeUnits(raw []models.RawUnit) []models.Unit {
	units := make([]models.Unit, 0, len(raw))
	for _, u := range raw {
		allows := true
		if u.AllowsSale != nil {
			allows = *u.AllowsSale
		}
		units = append(units, models.Unit{
			ID:              string(u.ID),
			Code:            u.Code,
			Name:            firstNonEmpty(u.FullName, u.Name),
			Unit:            u.Unit,
			Price:           int64(u.BasePrice),
			ConversionValue: float64(u.ConversionValue),
			AllowsSale:      allows,
		})
	}
	return units
}

func normalizeChildUnit(raw *models.RawChildUnit) *models.ChildUnit {
	if raw == nil {
		return nil
	}
	return &models.ChildUnit{
		FullName:           raw.FullName,
		Unit:               raw.Unit,
		Price:              int64(raw.BasePrice),
		ConversionValue:    float64(raw.ConversionValue),
		PricePerMasterUnit: int64(raw.BasePricePerMasterUnit),
	}
}

func normalizeChildProducts(raw []models.RawChildProduct) []models.ChildProduct {
	children := make([]models.ChildProduct, 0, len(raw))
	for _, c := range raw {
		children = append(children, models.ChildProduct{
			ID:                 string(c.ID),
			FullName:           c.FullName,
			Unit:               c.Unit,
			Price:              int64(c.BasePrice),
			ConversionValue:    float64(c.ConversionValue),
			PricePerMasterUnit: int64(c.BasePricePerMasterUnit),
			OrderTemplate:      c.OrderTemplate,
			ChildUnit:          normalizeChildUnit(c.ChildUnit),
			Images:             normalizeImages(c.Images, models.RawGLT{}),
		})
	}
	return children
}

func hasVariantsIn(masterID string, all []models.RawProduct) bool {
	for _, r := range all {
		if r.MasterID() == masterID {
			return true
		}
	}
	return false
}

func newCollator() *collate.Collator {
	return collate.New(language.Make(collationLocale))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
