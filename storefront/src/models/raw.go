package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Schema tells which upstream shape a raw record arrived in.
type Schema int

const (
	// SchemaKiotViet is the camelCase export of the POS system.
	SchemaKiotViet Schema = iota
	// SchemaLegacy is the older snake_case sheet export with flat glt_* fields.
	SchemaLegacy
)

func (s Schema) String() string {
	if s == SchemaLegacy {
		return "legacy"
	}
	return "kiotviet"
}

// Kind separates master records from variants that point at a master.
type Kind int

const (
	KindMaster Kind = iota
	KindVariant
)

// legacyMarkers are keys that only the snake_case export uses.
var legacyMarkers = []string{"base_price", "full_name", "kiotviet_id", "master_product_id"}

// RawImage is an image descriptor that arrives either as a bare URL or as {url, role}.
type RawImage struct {
	URL  string `json:"url"`
	Role string `json:"role,omitempty"`
}

func (i *RawImage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &i.URL)
	}
	var obj struct {
		URL   string `json:"url"`
		Src   string `json:"src"`
		Image string `json:"image"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	i.URL = firstNonEmpty(obj.URL, obj.Src, obj.Image)
	i.Role = obj.Role
	return nil
}

type RawAttribute struct {
	ProductID      FlexID `json:"productId"`
	AttributeName  string `json:"attributeName"`
	AttributeValue string `json:"attributeValue"`
}

// RawUnit is one KiotViet packaging entry of the units list.
type RawUnit struct {
	ID              FlexID    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	FullName        string    `json:"fullName"`
	Unit            string    `json:"unit"`
	BasePrice       Amount    `json:"basePrice"`
	ConversionValue FlexFloat `json:"conversionValue"`
	AllowsSale      *bool     `json:"allowsSale"`
}

type RawChildUnit struct {
	FullName               string    `json:"full_name"`
	Unit                   string    `json:"unit"`
	BasePrice              Amount    `json:"base_price"`
	ConversionValue        FlexFloat `json:"conversion_value"`
	BasePricePerMasterUnit Amount    `json:"base_price_per_masterunit"`
}

type RawChildProduct struct {
	ID                     FlexID        `json:"id"`
	FullName               string        `json:"full_name"`
	Unit                   string        `json:"unit"`
	BasePrice              Amount        `json:"base_price"`
	ConversionValue        FlexFloat     `json:"conversion_value"`
	BasePricePerMasterUnit Amount        `json:"base_price_per_masterunit"`
	OrderTemplate          string        `json:"order_template"`
	ChildUnit              *RawChildUnit `json:"child_unit"`
	Images                 []RawImage    `json:"images"`
}

// RawGLT holds the shop's custom fields. KiotViet nests them under "glt",
// the legacy export inlines them.
type RawGLT struct {
	Slug                string `json:"glt_slug"`
	KiotvietShopURL     string `json:"glt_kiotvietshop_url"`
	ShopeeURL           string `json:"glt_shopee_url"`
	GalleryThumbnailURL string `json:"glt_gallery_thumbnail_url"`
	GalleryZoomURL      string `json:"glt_gallery_zoom_url"`
	CustomImageURL      string `json:"glt_custom_image_url"`
	RetailPromotion     bool   `json:"glt_retail_promotion"`
	Description         string `json:"glt_description"`
}

// RawProduct is a decoded upstream record. Both schemas are folded into this
// one shape at decode time; Schema records which one it came from.
type RawProduct struct {
	Schema          Schema
	ID              FlexID
	KiotvietID      FlexID
	Code            string
	Name            string
	FullName        string
	Description     string
	BasePrice       Amount
	Unit            string
	ConversionValue float64
	CategoryID      FlexID
	CategoryName    string
	MasterProductID FlexID
	HasVariants     bool
	AllowsSale      bool
	IsActive        bool
	OrderTemplate   string
	Images          []RawImage
	Attributes      []RawAttribute
	Units           []RawUnit
	GLT             RawGLT
	ChildUnit       *RawChildUnit
	ChildProducts   []RawChildProduct
}

// MasterID returns the master product id, or "" when the record is a
// master itself. Upstream writes 0 for "no master".
func (r RawProduct) MasterID() string {
	if r.MasterProductID == "0" {
		return ""
	}
	return string(r.MasterProductID)
}

// Kind reports KindVariant when the record points at a master product.
func (r RawProduct) Kind() Kind {
	if r.MasterID() != "" {
		return KindVariant
	}
	return KindMaster
}

// Identifier returns id, falling back to kiotviet_id.
func (r RawProduct) Identifier() string {
	if r.ID != "" {
		return string(r.ID)
	}
	return string(r.KiotvietID)
}

type kiotVietWire struct {
	ID              FlexID         `json:"id"`
	Code            string         `json:"code"`
	Name            string         `json:"name"`
	FullName        string         `json:"fullName"`
	Description     string         `json:"description"`
	BasePrice       Amount         `json:"basePrice"`
	Unit            string         `json:"unit"`
	ConversionValue FlexFloat      `json:"conversionValue"`
	CategoryID      FlexID         `json:"categoryId"`
	CategoryName    string         `json:"categoryName"`
	MasterProductID FlexID         `json:"masterProductId"`
	HasVariants     bool           `json:"hasVariants"`
	AllowsSale      *bool          `json:"allowsSale"`
	IsActive        *bool          `json:"isActive"`
	OrderTemplate   string         `json:"orderTemplate"`
	Images          []RawImage     `json:"images"`
	Attributes      []RawAttribute `json:"attributes"`
	Units           []RawUnit      `json:"units"`
	GLT             *RawGLT        `json:"glt"`
}

type legacyWire struct {
	RawGLT
	ID              FlexID            `json:"id"`
	KiotvietID      FlexID            `json:"kiotviet_id"`
	Code            string            `json:"code"`
	Name            string            `json:"name"`
	FullName        string            `json:"full_name"`
	Description     string            `json:"description"`
	BasePrice       Amount            `json:"base_price"`
	Unit            string            `json:"unit"`
	ConversionValue FlexFloat         `json:"conversion_value"`
	CategoryID      FlexID            `json:"category_id"`
	CategoryName    string            `json:"category_name"`
	MasterProductID FlexID            `json:"master_product_id"`
	HasVariants     bool              `json:"has_variants"`
	AllowsSale      *bool             `json:"allows_sale"`
	IsActive        *bool             `json:"is_active"`
	OrderTemplate   string            `json:"order_template"`
	Images          []RawImage        `json:"images"`
	Attributes      []RawAttribute    `json:"attributes"`
	ChildUnit       *RawChildUnit     `json:"child_unit"`
	ChildProduct    json.RawMessage   `json:"child_product"`
	ChildProducts   []RawChildProduct `json:"child_products"`
}

// DecodeRawProduct detects the record's schema and folds it into a RawProduct.
func DecodeRawProduct(data json.RawMessage) (RawProduct, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return RawProduct{}, fmt.Errorf("product record: %w", err)
	}
	if fields == nil {
		return RawProduct{}, errors.New("product record: not an object")
	}

	if detectSchema(fields) == SchemaLegacy {
		return decodeLegacy(data)
	}
	return decodeKiotViet(data)
}

// DecodeRawProducts decodes every record independently. Records that fail
// are reported in errs and left out; one bad record never drops the listing.
func DecodeRawProducts(records []json.RawMessage) (products []RawProduct, errs []error) {
	products = make([]RawProduct, 0, len(records))
	for i, rec := range records {
		p, err := DecodeRawProduct(rec)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		products = append(products, p)
	}
	return products, errs
}

func detectSchema(fields map[string]json.RawMessage) Schema {
	for _, k := range legacyMarkers {
		if _, ok := fields[k]; ok {
			return SchemaLegacy
		}
	}
	return SchemaKiotViet
}

func decodeKiotViet(data json.RawMessage) (RawProduct, error) {
	var w kiotVietWire
	if err := json.Unmarshal(data, &w); err != nil {
		return RawProduct{}, fmt.Errorf("kiotviet record: %w", err)
	}
	r := RawProduct{
		Schema:          SchemaKiotViet,
		ID:              w.ID,
		Code:            w.Code,
		Name:            w.Name,
		FullName:        w.FullName,
		Description:     w.Description,
		BasePrice:       w.BasePrice,
		Unit:            w.Unit,
		ConversionValue: float64(w.ConversionValue),
		CategoryID:      w.CategoryID,
		CategoryName:    w.CategoryName,
		MasterProductID: w.MasterProductID,
		HasVariants:     w.HasVariants,
		AllowsSale:      boolOr(w.AllowsSale, true),
		IsActive:        boolOr(w.IsActive, true),
		OrderTemplate:   w.OrderTemplate,
		Images:          w.Images,
		Attributes:      w.Attributes,
		Units:           w.Units,
	}
	if w.GLT != nil {
		r.GLT = *w.GLT
	}
	return r, nil
}

func decodeLegacy(data json.RawMessage) (RawProduct, error) {
	var w legacyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return RawProduct{}, fmt.Errorf("legacy record: %w", err)
	}
	children, err := decodeChildProducts(w.ChildProduct)
	if err != nil {
		return RawProduct{}, fmt.Errorf("legacy record child_product: %w", err)
	}
	children = append(children, w.ChildProducts...)

	return RawProduct{
		Schema:          SchemaLegacy,
		ID:              w.ID,
		KiotvietID:      w.KiotvietID,
		Code:            w.Code,
		Name:            w.Name,
		FullName:        w.FullName,
		Description:     w.Description,
		BasePrice:       w.BasePrice,
		Unit:            w.Unit,
		ConversionValue: float64(w.ConversionValue),
		CategoryID:      w.CategoryID,
		CategoryName:    w.CategoryName,
		MasterProductID: w.MasterProductID,
		HasVariants:     w.HasVariants || len(children) > 0,
		AllowsSale:      boolOr(w.AllowsSale, true),
		IsActive:        boolOr(w.IsActive, true),
		OrderTemplate:   w.OrderTemplate,
		Images:          w.Images,
		Attributes:      w.Attributes,
		GLT:             w.RawGLT,
		ChildUnit:       w.ChildUnit,
		ChildProducts:   children,
	}, nil
}

// decodeChildProducts accepts child_product as null, a single object or an array.
func decodeChildProducts(data json.RawMessage) ([]RawChildProduct, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '[' {
		var many []RawChildProduct
		if err := json.Unmarshal(data, &many); err != nil {
			return nil, err
		}
		return many, nil
	}
	var one RawChildProduct
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []RawChildProduct{one}, nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
