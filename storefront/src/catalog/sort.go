package catalog

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/collate"

	"github.com/gaolamthuy/storefront/storefront/src/models"
)

// SecondaryKey orders products that share a category rank.
type SecondaryKey int

const (
	SortNone SecondaryKey = iota
	SortByPrice
	SortByName
)

func (k SecondaryKey) String() string {
	switch k {
	case SortByPrice:
		return "price"
	case SortByName:
		return "name"
	default:
		return "category"
	}
}

// ParseSecondaryKey accepts "", "category", "price" and "name".
func ParseSecondaryKey(s string) (SecondaryKey, error) {
	switch s {
	case "", "category":
		return SortNone, nil
	case "price":
		return SortByPrice, nil
	case "name":
		return SortByName, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

// SortByCategory returns a new slice ordered by category priority. Categories
// listed in order come first by index; unlisted ones follow, compared by
// collated name. Ties fall to key, then to input order.
func SortByCategory(products []models.Product, order []string, key SecondaryKey) []models.Product {
	out := slices.Clone(products)
	rank := rankOf(order)
	col := newCollator()

	slices.SortStableFunc(out, func(a, b models.Product) int {
		if c := compareCategory(col, rank, a.CategoryName, b.CategoryName); c != 0 {
			return c
		}
		return compareSecondary(col, key, a, b)
	})
	return out
}

func rankOf(order []string) map[string]int {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, dup := rank[name]; !dup {
			rank[name] = i
		}
	}
	return rank
}

func compareCategory(col *collate.Collator, rank map[string]int, a, b string) int {
	ai, aListed := rank[a]
	bi, bListed := rank[b]
	switch {
	case aListed && bListed:
		return cmp.Compare(ai, bi)
	case aListed:
		return -1
	case bListed:
		return 1
	case a == b:
		return 0
	}
	return col.CompareString(a, b)
}

func compareSecondary(col *collate.Collator, key SecondaryKey, a, b models.Product) int {
	switch key {
	case SortByPrice:
		return cmp.Compare(a.Price, b.Price)
	case SortByName:
		return col.CompareString(a.Name, b.Name)
	}
	return 0
}
