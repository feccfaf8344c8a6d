package catalog

import (
	"slices"

	"github.com/gaolamthuy/storefront/storefront/src/models"
)

// GroupByCategory buckets products by category name. Members are sorted by
// collated name; buckets follow order, then unlisted categories in the order
// they were first seen. Every input product appears in exactly one bucket.
func GroupByCategory(products []models.Product, order []string) []models.CategoryGroup {
	buckets := make([]models.CategoryGroup, 0)
	index := make(map[string]int)
	for _, p := range products {
		i, ok := index[p.CategoryName]
		if !ok {
			i = len(buckets)
			index[p.CategoryName] = i
			buckets = append(buckets, models.CategoryGroup{Category: p.CategoryName})
		}
		buckets[i].Products = append(buckets[i].Products, p)
	}

	col := newCollator()
	for i := range buckets {
		slices.SortStableFunc(buckets[i].Products, func(a, b models.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}

	out := make([]models.CategoryGroup, 0, len(buckets))
	placed := make(map[string]bool, len(buckets))
	for _, name := range order {
		if i, ok := index[name]; ok && !placed[name] {
			out = append(out, buckets[i])
			placed[name] = true
		}
	}
	for _, b := range buckets {
		if !placed[b.Category] {
			out = append(out, b)
		}
	}
	return out
}

// Flatten concatenates groups in emitted order.
func Flatten(groups []models.CategoryGroup) []models.Product {
	out := make([]models.Product, 0)
	for _, g := range groups {
		out = append(out, g.Products...)
	}
	return out
}
