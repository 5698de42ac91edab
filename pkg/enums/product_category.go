package enums

import (
	"fmt"
	"strings"
)

// ProductCategory is the storefront category a product or bundle belongs to.
type ProductCategory string

const (
	ProductCategoryCapilar  ProductCategory = "capilar"
	ProductCategoryCorporal ProductCategory = "corporal"
	ProductCategoryFacial   ProductCategory = "facial"
	ProductCategoryPersonal ProductCategory = "personal"
	ProductCategoryCombos   ProductCategory = "combos"
)

var validProductCategories = []ProductCategory{
	ProductCategoryCapilar,
	ProductCategoryCorporal,
	ProductCategoryFacial,
	ProductCategoryPersonal,
	ProductCategoryCombos,
}

// ProductCategories returns every known category in display order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsBundleCategory reports whether the category holds bundles.
func (c ProductCategory) IsBundleCategory() bool {
	return c == ProductCategoryCombos
}

// ParseProductCategory converts raw input into a ProductCategory. Matching
// ignores case and surrounding spaces.
func ParseProductCategory(value string) (ProductCategory, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
