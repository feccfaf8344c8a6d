package models

// VariantKey selects which sub-record of a product is shown.
type VariantKey string

const (
	VariantBase  VariantKey = "base"
	VariantChild VariantKey = "child"
)

func (k VariantKey) Valid() bool {
	return k == VariantBase || k == VariantChild
}

// DisplayView is what the product page renders for one selection.
type DisplayView struct {
	ProductID     string          `json:"productId"`
	Variant       VariantKey      `json:"variant"`
	FullName      string          `json:"fullName"`
	Price         int64           `json:"price"`
	PriceText     string          `json:"priceText"`
	Unit          string          `json:"unit"`
	OrderTemplate string          `json:"orderTemplate,omitempty"`
	AllowsSale    bool            `json:"allowsSale"`
	ChildUnit     *ChildUnitView  `json:"childUnit,omitempty"`
	Image         *Image          `json:"image,omitempty"`
	Images        []Image         `json:"images"`
	Units         []UnitPriceLine `json:"units"`
	BaseOption    VariantOption   `json:"baseOption"`
	ChildOption   *VariantOption  `json:"childOption,omitempty"`
	Links         Links           `json:"links"`
}

type ChildUnitView struct {
	FullName               string  `json:"fullName"`
	Unit                   string  `json:"unit"`
	Price                  int64   `json:"price"`
	PriceText              string  `json:"priceText"`
	ConversionValue        float64 `json:"conversionValue"`
	PricePerMasterUnit     int64   `json:"pricePerMasterUnit"`
	PricePerMasterUnitText string  `json:"pricePerMasterUnitText"`
	// Consistent reports whether the supplied per-master-unit price matches
	// price / conversion within one currency unit. The value is never corrected.
	Consistent bool `json:"consistent"`
}

// VariantOption is one selector card.
type VariantOption struct {
	Key       VariantKey `json:"key"`
	FullName  string     `json:"fullName"`
	Price     int64      `json:"price"`
	PriceText string     `json:"priceText"`
	Unit      string     `json:"unit"`
	Selected  bool       `json:"selected"`
}

// UnitPriceLine renders as "16.500 ₫/kg".
type UnitPriceLine struct {
	ID            string `json:"id"`
	Unit          string `json:"unit"`
	Price         int64  `json:"price"`
	Text          string `json:"text"`
	NotSoldRetail bool   `json:"notSoldRetail"`
}

// Links are outbound redirects. Values are passed through unmodified.
type Links struct {
	Order    string `json:"order"`
	Category string `json:"category,omitempty"`
	Shopee   string `json:"shopee,omitempty"`
	Contact  string `json:"contact"`
}

// ProductDetail is the payload of the product page endpoint.
type ProductDetail struct {
	Product         Product          `json:"product"`
	View            DisplayView      `json:"view"`
	AttributeGroups []AttributeGroup `json:"attributeGroups"`
	Family          []FamilyMember   `json:"family"`
}

// FamilyMember is a master or variant listed by the variant selector.
type FamilyMember struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	PriceText string `json:"priceText"`
	Current   bool   `json:"current"`
}
