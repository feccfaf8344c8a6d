package models

import (
	"encoding/json"
	"fmt"
)

// RawCategory folds both category shapes: KiotViet (categoryId, nested
// glt{}) and legacy (category_id, flat glt_* fields).
type RawCategory struct {
	ID                FlexID
	Name              string
	Rank              *int
	HomepageItemCount *int
	BorderColor       string
	Active            bool
}

type categoryGLT struct {
	IsActive          *bool  `json:"glt_is_active"`
	HomepageItemCount *int   `json:"homepage_item_count"`
	BorderColor       string `json:"glt_color_border"`
	Rank              *int   `json:"rank"`
}

func (c *RawCategory) UnmarshalJSON(data []byte) error {
	var w struct {
		categoryGLT
		CategoryID   FlexID       `json:"categoryId"`
		CategoryName string       `json:"categoryName"`
		LegacyID     FlexID       `json:"category_id"`
		LegacyName   string       `json:"category_name"`
		GLT          *categoryGLT `json:"glt"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("category record: %w", err)
	}

	flat := w.categoryGLT
	if w.GLT != nil {
		if w.GLT.IsActive != nil {
			flat.IsActive = w.GLT.IsActive
		}
		if w.GLT.HomepageItemCount != nil {
			flat.HomepageItemCount = w.GLT.HomepageItemCount
		}
		if w.GLT.BorderColor != "" {
			flat.BorderColor = w.GLT.BorderColor
		}
		if w.GLT.Rank != nil {
			flat.Rank = w.GLT.Rank
		}
	}

	*c = RawCategory{
		ID:                w.CategoryID,
		Name:              firstNonEmpty(w.CategoryName, w.LegacyName),
		Rank:              flat.Rank,
		HomepageItemCount: flat.HomepageItemCount,
		BorderColor:       flat.BorderColor,
		Active:            flat.IsActive != nil && *flat.IsActive,
	}
	if c.ID == "" {
		c.ID = w.LegacyID
	}
	return nil
}

// Category is an active catalog category as served to the page.
type Category struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Rank              *int   `json:"rank,omitempty"`
	HomepageItemCount *int   `json:"homepageItemCount,omitempty"`
	BorderColor       string `json:"borderColor,omitempty"`
	URL               string `json:"url,omitempty"`
}

// CategoryGroup is one bucket of GroupByCategory output.
type CategoryGroup struct {
	Category string    `json:"category"`
	Products []Product `json:"products"`
}
