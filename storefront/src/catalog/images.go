package catalog

import (
	"path"
	"regexp"
	"strings"

	"github.com/gaolamthuy/storefront/storefront/src/models"
)

// fallbackPriority is the order shared main images are tried when the
// selected unit has no image of its own.
var fallbackPriority = []string{"1kg", "5kg", "10kg", "50kg", "compare", "dinh-luong"}

var weightPattern = regexp.MustCompile(`(\d+)\s*kg`)

// SharedImagePool is a role-tagged set of images used to fill gaps in a
// product's own gallery. The zero value is an empty pool.
type SharedImagePool struct {
	images []models.Image
}

func NewSharedImagePool(images []models.Image) SharedImagePool {
	return SharedImagePool{images: images}
}

// SharedImageRoles tags a storage listing: keys under /main/ become
// shared-main-<name>, keys under /thumbnail/ become shared-thumbnail-<name>.
// Other keys are dropped.
func SharedImageRoles(listing []models.SharedImage) []models.Image {
	out := make([]models.Image, 0, len(listing))
	for _, img := range listing {
		if img.URL == "" {
			continue
		}
		name := strings.TrimSuffix(path.Base(img.Key), path.Ext(img.Key))
		if name == "" || name == "." || name == "/" {
			name = "unknown"
		}
		switch {
		case strings.Contains(img.Key, "/main/"):
			out = append(out, models.Image{URL: img.URL, Role: models.SharedMainPrefix + name})
		case strings.Contains(img.Key, "/thumbnail/"):
			out = append(out, models.Image{URL: img.URL, Role: models.SharedThumbPrefix + name})
		}
	}
	return out
}

func (p SharedImagePool) Len() int { return len(p.images) }

func (p SharedImagePool) Images() []models.Image {
	return append([]models.Image(nil), p.images...)
}

func (p SharedImagePool) Lookup(role string) (models.Image, bool) {
	for _, img := range p.images {
		if img.Role == role {
			return img, true
		}
	}
	return models.Image{}, false
}

// Fallback picks a shared main image: the one named after unitKey, then the
// fixed priority list, then any shared main image.
func (p SharedImagePool) Fallback(unitKey string) (models.Image, bool) {
	if unitKey != "" {
		if img, ok := p.Lookup(models.SharedMainPrefix + unitKey); ok {
			return img, true
		}
	}
	for _, name := range fallbackPriority {
		if img, ok := p.Lookup(models.SharedMainPrefix + name); ok {
			return img, true
		}
	}
	for _, img := range p.images {
		if strings.HasPrefix(img.Role, models.SharedMainPrefix) {
			return img, true
		}
	}
	return models.Image{}, false
}

// UnitKey derives the shared image name for a unit label:
// "bao 50kg" is "50kg", a bare "kg" is "1kg".
func UnitKey(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if m := weightPattern.FindStringSubmatch(u); m != nil {
		return m[1] + "kg"
	}
	if u == "kg" {
		return "1kg"
	}
	return Slugify(u)
}

// ResolveImage applies the display precedence: a main image of the variant,
// its first image, a shared fallback, or nil.
func ResolveImage(images []models.Image, unit string, pool SharedImagePool) *models.Image {
	for _, img := range images {
		if img.Role == models.RoleMain && img.URL != "" {
			return &img
		}
	}
	for _, img := range images {
		if img.URL != "" {
			return &img
		}
	}
	if img, ok := pool.Fallback(UnitKey(unit)); ok {
		return &img
	}
	return nil
}
