package models

// Image roles recognised by the resolver.
const (
	RoleMain             = "main"
	RoleGalleryZoom      = "gallery-zoom"
	RoleGalleryThumbnail = "gallery-thumbnail"
	RoleCustom           = "custom"
	SharedMainPrefix     = "shared-main-"
	SharedThumbPrefix    = "shared-thumbnail-"
)

type Image struct {
	URL  string `json:"url"`
	Role string `json:"role,omitempty"`
}

// Attribute is a (product, name, value) triple. Names repeat across values.
type Attribute struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Value     string `json:"value"`
}

type AttributeGroup struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Unit is one KiotViet packaging with its own price.
type Unit struct {
	ID              string  `json:"id"`
	Code            string  `json:"code,omitempty"`
	Name            string  `json:"name,omitempty"`
	Unit            string  `json:"unit"`
	Price           int64   `json:"price"`
	ConversionValue float64 `json:"conversionValue"`
	AllowsSale      bool    `json:"allowsSale"`
}

// ChildUnit is an alternate packaging of the same product.
// PricePerMasterUnit is displayed as supplied and is never recomputed.
type ChildUnit struct {
	FullName           string  `json:"fullName"`
	Unit               string  `json:"unit"`
	Price              int64   `json:"price"`
	ConversionValue    float64 `json:"conversionValue"`
	PricePerMasterUnit int64   `json:"pricePerMasterUnit"`
}

// ChildProduct is a related variant (a different grade) of a product.
type ChildProduct struct {
	ID                 string     `json:"id,omitempty"`
	FullName           string     `json:"fullName"`
	Unit               string     `json:"unit"`
	Price              int64      `json:"price"`
	ConversionValue    float64    `json:"conversionValue"`
	PricePerMasterUnit int64      `json:"pricePerMasterUnit"`
	OrderTemplate      string     `json:"orderTemplate,omitempty"`
	ChildUnit          *ChildUnit `json:"childUnit,omitempty"`
	Images             []Image    `json:"images"`
}

// Product is the canonical catalog entity. Slices are never nil after
// normalization.
type Product struct {
	ID               string         `json:"id"`
	KiotvietID       string         `json:"kiotvietId,omitempty"`
	Code             string         `json:"code"`
	Slug             string         `json:"slug"`
	Name             string         `json:"name"`
	FullName         string         `json:"fullName"`
	Description      string         `json:"description,omitempty"`
	Price            int64          `json:"price"`
	Unit             string         `json:"unit"`
	ConversionValue  float64        `json:"conversionValue"`
	AllowsSale       bool           `json:"allowsSale"`
	IsActive         bool           `json:"isActive"`
	HasVariants      bool           `json:"hasVariants"`
	RetailPromotion  bool           `json:"retailPromotion"`
	CategoryID       string         `json:"categoryId"`
	CategoryName     string         `json:"categoryName"`
	MasterProductID  string         `json:"masterProductId,omitempty"`
	OrderTemplate    string         `json:"orderTemplate,omitempty"`
	Images           []Image        `json:"images"`
	Attributes       []Attribute    `json:"attributes"`
	FamilyAttributes []Attribute    `json:"familyAttributes"`
	Units            []Unit         `json:"units"`
	ChildUnit        *ChildUnit     `json:"childUnit,omitempty"`
	ChildProducts    []ChildProduct `json:"childProducts"`
	KiotvietShopURL  string         `json:"kiotvietShopUrl,omitempty"`
	ShopeeURL        string         `json:"shopeeUrl,omitempty"`
	Schema           string         `json:"schema"`
}

func (p Product) IsMaster() bool {
	return p.MasterProductID == ""
}

func (p Product) HasChildProduct() bool {
	return len(p.ChildProducts) > 0
}
