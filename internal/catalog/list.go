package catalog

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/lushka-backend/pkg/enums"
	"github.com/angelmondragon/lushka-backend/pkg/pagination"
)

// PriceRange is a named inclusive price band used by the catalog filters.
type PriceRange struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
}

var priceRanges = []PriceRange{
	{ID: "economico", Label: "Económico ($8k - $15k)", Min: 8000, Max: 15000},
	{ID: "estandar", Label: "Estándar ($18k - $25k)", Min: 18000, Max: 25000},
	{ID: "premium", Label: "Premium ($30k - $42k)", Min: 30000, Max: 42000},
}

// PriceRanges returns the storefront's named price bands.
func PriceRanges() []PriceRange {
	out := make([]PriceRange, len(priceRanges))
	copy(out, priceRanges)
	return out
}

// LookupPriceRange finds a named band.
func LookupPriceRange(id string) (PriceRange, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, r := range priceRanges {
		if r.ID == id {
			return r, true
		}
	}
	return PriceRange{}, false
}

// ListFilter narrows a product listing. Zero values do not filter.
type ListFilter struct {
	Categories   []enums.ProductCategory
	PriceRanges  []string
	MinPrice     *int64
	MaxPrice     *int64
	Tags         []string
	FeaturedOnly bool
	InStockOnly  bool
	Query        string
}

// ListResult is one page of products.
type ListResult struct {
	Products []Product           `json:"products"`
	Page     pagination.PageInfo `json:"page"`
}

// ListProducts filters products in catalog order and returns the requested page.
// Price filters compare the list price.
func (c *Catalog) ListProducts(filter ListFilter, page pagination.Params) (*ListResult, error) {
	ranges := make([]PriceRange, 0, len(filter.PriceRanges))
	for _, id := range filter.PriceRanges {
		r, ok := LookupPriceRange(id)
		if !ok {
			return nil, fmt.Errorf("unknown price range %q", id)
		}
		ranges = append(ranges, r)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, fmt.Errorf("min price exceeds max price")
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	var matched []Product
	for _, p := range c.products {
		if !matchesFilter(p, filter, ranges, query) {
			continue
		}
		matched = append(matched, p)
	}

	items, info := pagination.Slice(matched, page)
	return &ListResult{Products: items, Page: info}, nil
}

func matchesFilter(p Product, f ListFilter, ranges []PriceRange, query string) bool {
	if len(f.Categories) > 0 && !containsCategory(f.Categories, p.Category) {
		return false
	}
	if len(ranges) > 0 {
		inRange := false
		for _, r := range ranges {
			if p.Price >= r.Min && p.Price <= r.Max {
				inRange = true
				break
			}
		}
		if !inRange {
			return false
		}
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if len(f.Tags) > 0 && !TagsMatch(p.Tags, f.Tags) {
		return false
	}
	if f.FeaturedOnly && !p.Featured {
		return false
	}
	if f.InStockOnly && !p.InStock() {
		return false
	}
	if query != "" && !matchesQuery(p, query) {
		return false
	}
	return true
}

func matchesQuery(p Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) || strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func containsCategory(set []enums.ProductCategory, c enums.ProductCategory) bool {
	for _, candidate := range set {
		if candidate == c {
			return true
		}
	}
	return false
}
