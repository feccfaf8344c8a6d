package catalog

import (
	"slices"

	"github.com/gaolamthuy/storefront/storefront/src/models"
)

// DefaultVariant is child whenever the product has a child product.
func DefaultVariant(p models.Product) models.VariantKey {
	if p.HasChildProduct() {
		return models.VariantChild
	}
	return models.VariantBase
}

// ChooseVariant picks the variant to show for p. An empty or unknown
// request falls back to the default, and child collapses to base when p has
// no child product. The result depends only on p, so a different product
// always re-derives its own default.
func ChooseVariant(p models.Product, requested models.VariantKey) models.VariantKey {
	if requested == models.VariantChild && !p.HasChildProduct() {
		return models.VariantBase
	}
	if requested.Valid() {
		return requested
	}
	return DefaultVariant(p)
}

// Resolver builds display views. It holds only read-only collaborators.
type Resolver struct {
	prices *PriceFormatter
	pool   SharedImagePool
	links  LinkBuilder
}

func NewResolver(prices *PriceFormatter, pool SharedImagePool, links LinkBuilder) *Resolver {
	return &Resolver{prices: prices, pool: pool, links: links}
}

// Resolve presents p under key. p is not modified; slices in the view are copies.
func (r *Resolver) Resolve(p models.Product, key models.VariantKey) models.DisplayView {
	view := models.DisplayView{
		ProductID:     p.ID,
		Variant:       models.VariantBase,
		FullName:      p.FullName,
		Price:         p.Price,
		Unit:          p.Unit,
		OrderTemplate: p.OrderTemplate,
		AllowsSale:    p.AllowsSale,
		ChildUnit:     r.childUnitView(p.ChildUnit),
		Images:        slices.Clone(p.Images),
		Units:         r.unitLines(p.Units),
		Links:         r.links.For(p),
	}

	if key == models.VariantChild && p.HasChildProduct() {
		child := p.ChildProducts[0]
		view.Variant = models.VariantChild
		view.FullName = firstNonEmpty(child.FullName, p.FullName)
		view.Price = child.Price
		view.Unit = child.Unit
		view.OrderTemplate = firstNonEmpty(child.OrderTemplate, p.OrderTemplate)
		view.ChildUnit = r.childUnitView(child.ChildUnit)
		view.Images = slices.Clone(child.Images)
	}
	if view.Images == nil {
		view.Images = []models.Image{}
	}

	view.PriceText = r.prices.Currency(view.Price)
	view.Image = ResolveImage(view.Images, view.Unit, r.pool)

	view.BaseOption = models.VariantOption{
		Key:       models.VariantBase,
		FullName:  p.FullName,
		Price:     p.Price,
		PriceText: r.prices.Currency(p.Price),
		Unit:      p.Unit,
		Selected:  view.Variant == models.VariantBase,
	}
	if p.HasChildProduct() {
		child := p.ChildProducts[0]
		view.ChildOption = &models.VariantOption{
			Key:       models.VariantChild,
			FullName:  firstNonEmpty(child.FullName, p.FullName),
			Price:     child.Price,
			PriceText: r.prices.Currency(child.Price),
			Unit:      child.Unit,
			Selected:  view.Variant == models.VariantChild,
		}
	}
	return view
}

func (r *Resolver) childUnitView(cu *models.ChildUnit) *models.ChildUnitView {
	if cu == nil {
		return nil
	}
	return &models.ChildUnitView{
		FullName:               cu.FullName,
		Unit:                   cu.Unit,
		Price:                  cu.Price,
		PriceText:              r.prices.Currency(cu.Price),
		ConversionValue:        cu.ConversionValue,
		PricePerMasterUnit:     cu.PricePerMasterUnit,
		PricePerMasterUnitText: r.prices.Currency(cu.PricePerMasterUnit),
		Consistent:             consistentPerMasterUnit(cu.Price, cu.ConversionValue, cu.PricePerMasterUnit),
	}
}

func (r *Resolver) unitLines(units []models.Unit) []models.UnitPriceLine {
	lines := make([]models.UnitPriceLine, 0, len(units))
	for _, u := range units {
		lines = append(lines, models.UnitPriceLine{
			ID:            u.ID,
			Unit:          u.Unit,
			Price:         u.Price,
			Text:          r.prices.PerUnit(u.Price, u.Unit),
			NotSoldRetail: !u.AllowsSale,
		})
	}
	return lines
}

// Family lists the variant selector entries, marking current.
func (r *Resolver) Family(current models.Product, all []models.Product) []models.FamilyMember {
	family := FamilyOf(current, all)
	out := make([]models.FamilyMember, 0, len(family))
	for _, f := range family {
		out = append(out, models.FamilyMember{
			ID:        f.ID,
			Slug:      f.Slug,
			Name:      f.FullName,
			Price:     f.Price,
			PriceText: r.prices.Currency(f.Price),
			Current:   f.ID == current.ID,
		})
	}
	return out
}
