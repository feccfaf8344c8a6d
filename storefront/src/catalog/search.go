package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gaolamthuy/storefront/storefront/src/models"
)

// Filter narrows a product listing. The zero value keeps everything.
type Filter struct {
	Categories []string
	Attributes []models.Attribute

	// Text is matched term by term, ignoring case and diacritics.
	Text string

	// Featured > 0 keeps at most that many featured products.
	Featured int
}

// Apply runs the category, text and attribute filters in that order. The
// featured cut is left to the caller since it depends on the final order.
func (f Filter) Apply(products []models.Product) []models.Product {
	out := Visible(products, f.Categories)
	out = Search(out, f.Text)
	for _, a := range f.Attributes {
		out = FilterByAttribute(out, a.Name, a.Value)
	}
	return out
}

// Search keeps products where every whitespace-separated term of q appears in
// the code, name, full name, description, category or an attribute value.
// A blank query keeps everything.
func Search(products []models.Product, q string) []models.Product {
	terms := strings.Fields(fold(q))
	if len(terms) == 0 {
		return slices.Clone(products)
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		haystack := searchText(p)
		if allTerms(haystack, terms) {
			out = append(out, p)
		}
	}
	return out
}

func searchText(p models.Product) string {
	parts := []string{p.Code, p.Name, p.FullName, p.Description, p.CategoryName}
	for _, a := range p.FamilyAttributes {
		parts = append(parts, a.Value)
	}
	for _, a := range p.Attributes {
		parts = append(parts, a.Value)
	}
	return fold(strings.Join(parts, "\n"))
}

func allTerms(haystack string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}

// FilterByAttribute keeps products whose own or family attributes include
// name=value. Both sides are compared folded.
func FilterByAttribute(products []models.Product, name, value string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if HasAttributeValue(p, name, value) {
			out = append(out, p)
		}
	}
	return out
}

func HasAttributeValue(p models.Product, name, value string) bool {
	name, value = fold(strings.TrimSpace(name)), fold(strings.TrimSpace(value))
	match := func(a models.Attribute) bool {
		return fold(a.Name) == name && fold(a.Value) == value
	}
	return slices.ContainsFunc(p.FamilyAttributes, match) || slices.ContainsFunc(p.Attributes, match)
}

// ParseAttributeFilter reads "name:value". Only the first colon separates.
func ParseAttributeFilter(s string) (models.Attribute, error) {
	name, value, ok := strings.Cut(s, ":")
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)
	if !ok || name == "" || value == "" {
		return models.Attribute{}, fmt.Errorf("attribute filter %q must look like name:value", s)
	}
	return models.Attribute{Name: name, Value: value}, nil
}

// Featured keeps sellable, active products, retail promotions first, and
// cuts the result to n. Order is otherwise kept.
func Featured(products []models.Product, n int) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.AllowsSale && p.IsActive {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Product) int {
		switch {
		case a.RetailPromotion == b.RetailPromotion:
			return 0
		case a.RetailPromotion:
			return -1
		}
		return 1
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
