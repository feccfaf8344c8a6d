package catalog

import "github.com/gaolamthuy/storefront/storefront/src/models"

// VisibleIDs returns the ids of products shown under the active category
// filter, in input order. An empty filter shows everything. A product matches
// on either its category name or its category id.
func VisibleIDs(products []models.Product, active []string) []string {
	ids := make([]string, 0, len(products))
	for _, p := range Visible(products, active) {
		ids = append(ids, p.ID)
	}
	return ids
}

func Visible(products []models.Product, active []string) []models.Product {
	if len(active) == 0 {
		return append([]models.Product{}, products...)
	}
	set := make(map[string]bool, len(active))
	for _, a := range active {
		set[a] = true
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if set[p.CategoryName] || (p.CategoryID != "" && set[p.CategoryID]) {
			out = append(out, p)
		}
	}
	return out
}
