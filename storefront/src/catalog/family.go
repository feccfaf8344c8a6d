package catalog

import "github.com/gaolamthuy/storefront/storefront/src/models"

// FamilyOf lists the master of p's family followed by its variants in input
// order. p may be the master or any variant.
func FamilyOf(p models.Product, all []models.Product) []models.Product {
	masterID := p.ID
	if !p.IsMaster() {
		masterID = p.MasterProductID
	}

	family := make([]models.Product, 0)
	var variants []models.Product
	for _, q := range all {
		switch {
		case q.ID == masterID && q.IsMaster():
			family = append(family, q)
		case q.MasterProductID == masterID:
			variants = append(variants, q)
		}
	}
	return append(family, variants...)
}

// FindBySlug returns the product whose slug or id matches key.
func FindBySlug(products []models.Product, key string) (models.Product, bool) {
	for _, p := range products {
		if p.Slug == key {
			return p, true
		}
	}
	for _, p := range products {
		if p.ID == key {
			return p, true
		}
	}
	return models.Product{}, false
}
