package catalog

import (
	"strings"
	"time"

	"github.com/angelmondragon/lushka-backend/pkg/enums"
	"github.com/angelmondragon/lushka-backend/pkg/money"
)

// Discount reduces a list price by Percentage until ValidUntil. A nil
// ValidUntil never expires.
type Discount struct {
	Percentage float64    `json:"percentage"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

// Active reports whether the discount applies at now.
func (d *Discount) Active(now time.Time) bool {
	if d == nil || d.Percentage <= 0 {
		return false
	}
	return d.ValidUntil == nil || d.ValidUntil.After(now)
}

// Product is an immutable catalog entry. Prices are whole COP.
type Product struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Price       int64                 `json:"price"`
	Images      []string              `json:"images"`
	Category    enums.ProductCategory `json:"category"`
	Subcategory string                `json:"subcategory,omitempty"`
	Tags        []string              `json:"tags"`
	Stock       int                   `json:"stock"`
	Featured    bool                  `json:"featured"`
	SKU         string                `json:"sku"`
	Discount    *Discount             `json:"discount,omitempty"`
}

// EffectivePrice is the list price reduced by an active discount.
func (p Product) EffectivePrice(now time.Time) int64 {
	if !p.Discount.Active(now) {
		return p.Price
	}
	return money.ApplyDiscount(p.Price, p.Discount.Percentage)
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// BundleItem is one constituent of a bundle.
type BundleItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Bundle is a fixed-composition offer sold as a single entry.
type Bundle struct {
	Product
	OriginalPrice int64        `json:"original_price"`
	Items         []BundleItem `json:"items"`
}

// Savings is the amount saved against the original price at now.
func (b Bundle) Savings(now time.Time) int64 {
	return money.Savings(b.OriginalPrice, b.EffectivePrice(now))
}

// Category summarizes one storefront category.
type Category struct {
	ID           enums.ProductCategory `json:"id"`
	Name         string                `json:"name"`
	ProductCount int                   `json:"product_count"`
	BundleCount  int                   `json:"bundle_count"`
}

// TagsMatch reports whether any of want matches any of have, comparing
// case-insensitively and accepting a substring in either direction.
func TagsMatch(have, want []string) bool {
	for _, w := range want {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		for _, h := range have {
			h = strings.ToLower(strings.TrimSpace(h))
			if h == "" {
				continue
			}
			if strings.Contains(h, w) || strings.Contains(w, h) {
				return true
			}
		}
	}
	return false
}
