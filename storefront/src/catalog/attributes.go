package catalog

import (
	"github.com/gaolamthuy/storefront/storefront/src/models"
)

// familyAttributes collects the attributes of the master and every record
// pointing at it. Each record id is visited once, so a master listed twice
// or referencing itself does not repeat its attributes.
func familyAttributes(masterID string, all []models.RawProduct) []models.Attribute {
	attrs := make([]models.Attribute, 0)
	visited := make(map[string]bool)

	for _, r := range all {
		id := r.Identifier()
		if id == "" || visited[id] {
			continue
		}
		if id != masterID && r.MasterID() != masterID {
			continue
		}
		visited[id] = true
		attrs = append(attrs, normalizeAttributes(id, r.Attributes)...)
	}
	return attrs
}

// GroupAttributes groups values by attribute name. Names keep first-seen
// order; values are deduplicated keeping first-seen order.
func GroupAttributes(attrs []models.Attribute) []models.AttributeGroup {
	groups := make([]models.AttributeGroup, 0)
	index := make(map[string]int)
	seen := make(map[string]map[string]bool)

	for _, a := range attrs {
		i, ok := index[a.Name]
		if !ok {
			i = len(groups)
			index[a.Name] = i
			groups = append(groups, models.AttributeGroup{Name: a.Name, Values: []string{}})
			seen[a.Name] = make(map[string]bool)
		}
		if seen[a.Name][a.Value] {
			continue
		}
		seen[a.Name][a.Value] = true
		groups[i].Values = append(groups[i].Values, a.Value)
	}
	return groups
}
