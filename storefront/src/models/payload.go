package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CatalogPayload is the product endpoint body. Upstream sends a positional
// array [{products: [...]}, {product_categories: [...]}]; file snapshots may
// use the same keys in a single object.
type CatalogPayload struct {
	Products   []json.RawMessage `json:"products"`
	Categories []json.RawMessage `json:"product_categories"`
}

func (p *CatalogPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	type plain CatalogPayload

	if len(data) > 0 && data[0] == '{' {
		var obj plain
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("catalog payload: %w", err)
		}
		*p = CatalogPayload(obj)
		return nil
	}

	var parts []plain
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("catalog payload: %w", err)
	}
	*p = CatalogPayload{}
	if len(parts) > 0 {
		p.Products = parts[0].Products
	}
	if len(parts) > 1 {
		p.Categories = parts[1].Categories
	}
	return nil
}

// DecodeRawCategories decodes each category independently, skipping bad ones.
func DecodeRawCategories(records []json.RawMessage) ([]RawCategory, []error) {
	out := make([]RawCategory, 0, len(records))
	var errs []error
	for i, rec := range records {
		var c RawCategory
		if err := json.Unmarshal(rec, &c); err != nil {
			errs = append(errs, fmt.Errorf("category %d: %w", i, err))
			continue
		}
		out = append(out, c)
	}
	return out, errs
}

// SharedImage is one entry of the products_shared_image listing.
type SharedImage struct {
	Key          string `json:"Key"`
	URL          string `json:"url"`
	LastModified string `json:"LastModified,omitempty"`
	ETag         string `json:"ETag,omitempty"`
}

type SharedImagesPayload struct {
	Images []SharedImage `json:"products_shared_image"`
}
