package cart

import (
	"time"

	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
)

// Line is one cart entry. Exactly one of Product or Bundle is set, matching Type.
type Line struct {
	ID        string           `json:"id"`
	Type      enums.LineType   `json:"type"`
	Product   *catalog.Product `json:"product,omitempty"`
	Bundle    *catalog.Bundle  `json:"bundle,omitempty"`
	Quantity  int              `json:"quantity"`
	UnitPrice int64            `json:"unit_price"`
	Total     int64            `json:"total_price"`
	AddedAt   time.Time        `json:"added_at"`
}

// ItemID returns the id of the referenced catalog entry.
func (l Line) ItemID() string {
	switch {
	case l.Type == enums.LineTypeProduct && l.Product != nil:
		return l.Product.ID
	case l.Type == enums.LineTypeBundle && l.Bundle != nil:
		return l.Bundle.ID
	}
	return ""
}

// Stock returns the referenced entry's stock.
func (l Line) Stock() int {
	switch {
	case l.Type == enums.LineTypeProduct && l.Product != nil:
		return l.Product.Stock
	case l.Type == enums.LineTypeBundle && l.Bundle != nil:
		return l.Bundle.Stock
	}
	return 0
}

// Name returns the referenced entry's display name.
func (l Line) Name() string {
	switch {
	case l.Product != nil:
		return l.Product.Name
	case l.Bundle != nil:
		return l.Bundle.Name
	}
	return ""
}

// Cart holds ordered lines and their aggregate. Total is always Subtotal − Discount.
type Cart struct {
	ID        string    `json:"id"`
	Lines     []Line    `json:"items"`
	Subtotal  int64     `json:"subtotal"`
	Discount  int64     `json:"discount"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is a read-only view of a cart.
type Summary struct {
	Subtotal  int64  `json:"subtotal"`
	Discount  int64  `json:"discount"`
	Total     int64  `json:"total"`
	ItemCount int    `json:"item_count"`
	Lines     []Line `json:"items"`
}

// Ref identifies what AddItem should add.
type Ref struct {
	Product *catalog.Product
	Bundle  *catalog.Bundle
}

// ProductRef builds a Ref for a product.
func ProductRef(p catalog.Product) Ref {
	return Ref{Product: &p}
}

// BundleRef builds a Ref for a bundle.
func BundleRef(b catalog.Bundle) Ref {
	return Ref{Bundle: &b}
}

func (r Ref) lineType() enums.LineType {
	if r.Bundle != nil {
		return enums.LineTypeBundle
	}
	return enums.LineTypeProduct
}

func (r Ref) itemID() string {
	if r.Bundle != nil {
		return r.Bundle.ID
	}
	if r.Product != nil {
		return r.Product.ID
	}
	return ""
}

func (r Ref) stock() int {
	if r.Bundle != nil {
		return r.Bundle.Stock
	}
	if r.Product != nil {
		return r.Product.Stock
	}
	return 0
}

func (r Ref) unitPrice(now time.Time) int64 {
	if r.Bundle != nil {
		return r.Bundle.EffectivePrice(now)
	}
	if r.Product != nil {
		return r.Product.EffectivePrice(now)
	}
	return 0
}

func summarize(c Cart) Summary {
	s := Summary{
		Subtotal: c.Subtotal,
		Discount: c.Discount,
		Total:    c.Total,
		Lines:    copyLines(c.Lines),
	}
	for _, l := range c.Lines {
		s.ItemCount += l.Quantity
	}
	return s
}

func copyLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
