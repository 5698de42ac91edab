package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
	"github.com/angelmondragon/lushka-backend/pkg/money"
)

var (
	// ErrSnapshotNotFound is returned by a SnapshotStore when no snapshot exists.
	ErrSnapshotNotFound = errors.New("cart snapshot not found")
	// ErrSnapshotStale marks a snapshot older than the freshness window.
	ErrSnapshotStale = errors.New("cart snapshot is stale")
	// ErrSnapshotInvalid marks a snapshot that cannot be decoded.
	ErrSnapshotInvalid = errors.New("cart snapshot is invalid")
)

// legacyBundleType is the discriminator older snapshots used for bundles.
const legacyBundleType = "combo"

// Resolver looks up catalog entries referenced by snapshot lines.
type Resolver interface {
	Product(id string) (catalog.Product, bool)
	Bundle(id string) (catalog.Bundle, bool)
}

type snapshotLine struct {
	ID         string           `json:"id"`
	Type       enums.LineType   `json:"type"`
	Product    *catalog.Product `json:"product,omitempty"`
	Bundle     *catalog.Bundle  `json:"bundle,omitempty"`
	Quantity   int              `json:"quantity"`
	UnitPrice  int64            `json:"unitPrice"`
	TotalPrice int64            `json:"totalPrice"`
	AddedAt    time.Time        `json:"addedAt"`
}

type snapshotDoc struct {
	ID        string         `json:"id,omitempty"`
	Items     []snapshotLine `json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
	SavedAt   time.Time      `json:"savedAt"`
}

// encodeSnapshot serializes the cart's lines with the save time.
func encodeSnapshot(c Cart, savedAt time.Time) ([]byte, error) {
	doc := snapshotDoc{
		ID:        c.ID,
		Items:     make([]snapshotLine, 0, len(c.Lines)),
		CreatedAt: c.CreatedAt.UTC(),
		SavedAt:   savedAt.UTC(),
	}
	for _, l := range c.Lines {
		doc.Items = append(doc.Items, snapshotLine{
			ID:         l.ID,
			Type:       l.Type,
			Product:    l.Product,
			Bundle:     l.Bundle,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.Total,
			AddedAt:    l.AddedAt.UTC(),
		})
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}
	return data, nil
}

type rawRef struct {
	ID string `json:"id"`
}

type rawLine struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Product   *rawRef    `json:"product"`
	Bundle    *rawRef    `json:"bundle"`
	Combo     *rawRef    `json:"combo"`
	Quantity  int        `json:"quantity"`
	UnitPrice int64      `json:"unitPrice"`
	AddedAt   *time.Time `json:"addedAt"`
}

type rawSnapshot struct {
	ID        string     `json:"id"`
	Items     *[]rawLine `json:"items"`
	CreatedAt *time.Time `json:"createdAt"`
	SavedAt   *time.Time `json:"savedAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// decodeSnapshot rebuilds a cart from stored bytes. Both the current
// {items, savedAt} shape and the older full-cart shape keyed by updatedAt are
// accepted. Lines that cannot be resolved are dropped; the returned dropped
// count reports how many.
func decodeSnapshot(data []byte, now time.Time, window time.Duration, resolver Resolver) (Cart, int, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return Cart{}, 0, fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}
	if raw.Items == nil {
		return Cart{}, 0, fmt.Errorf("%w: missing items", ErrSnapshotInvalid)
	}

	savedAt := raw.SavedAt
	if savedAt == nil {
		savedAt = raw.UpdatedAt
	}
	if savedAt == nil || savedAt.IsZero() {
		return Cart{}, 0, fmt.Errorf("%w: missing save time", ErrSnapshotInvalid)
	}
	if window > 0 && now.Sub(*savedAt) > window {
		return Cart{}, 0, ErrSnapshotStale
	}

	c := Cart{
		ID:        raw.ID,
		CreatedAt: *savedAt,
		UpdatedAt: *savedAt,
	}
	if raw.CreatedAt != nil && !raw.CreatedAt.IsZero() {
		c.CreatedAt = *raw.CreatedAt
	}

	seen := map[string]bool{}
	dropped := 0
	for _, rl := range *raw.Items {
		line, ok := hydrateLine(rl, *savedAt, resolver)
		if !ok {
			dropped++
			continue
		}
		key := string(line.Type) + ":" + line.ItemID()
		if seen[key] {
			dropped++
			continue
		}
		seen[key] = true
		c.Lines = append(c.Lines, line)
	}
	recompute(&c)
	return c, dropped, nil
}

func hydrateLine(rl rawLine, savedAt time.Time, resolver Resolver) (Line, bool) {
	if rl.ID == "" || rl.Quantity <= 0 {
		return Line{}, false
	}

	line := Line{ID: rl.ID, AddedAt: savedAt}
	if rl.AddedAt != nil && !rl.AddedAt.IsZero() {
		line.AddedAt = *rl.AddedAt
	}

	switch rl.Type {
	case string(enums.LineTypeProduct):
		if rl.Product == nil {
			return Line{}, false
		}
		p, ok := resolver.Product(rl.Product.ID)
		if !ok {
			return Line{}, false
		}
		line.Type = enums.LineTypeProduct
		line.Product = &p
	case string(enums.LineTypeBundle), legacyBundleType:
		ref := rl.Bundle
		if ref == nil {
			ref = rl.Combo
		}
		if ref == nil {
			return Line{}, false
		}
		b, ok := resolver.Bundle(ref.ID)
		if !ok {
			return Line{}, false
		}
		line.Type = enums.LineTypeBundle
		line.Bundle = &b
	default:
		return Line{}, false
	}

	line.Quantity = clampToStock(rl.Quantity, line.Stock())
	if line.Quantity <= 0 {
		return Line{}, false
	}
	line.UnitPrice = rl.UnitPrice
	if line.UnitPrice <= 0 {
		if line.Product != nil {
			line.UnitPrice = line.Product.EffectivePrice(savedAt)
		} else {
			line.UnitPrice = line.Bundle.EffectivePrice(savedAt)
		}
	}
	line.Total = money.LineTotal(line.UnitPrice, line.Quantity)
	return line, true
}

func clampToStock(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}

// recompute refreshes line totals and the cart aggregate.
func recompute(c *Cart) {
	totals := make([]int64, 0, len(c.Lines))
	for i := range c.Lines {
		c.Lines[i].Total = money.LineTotal(c.Lines[i].UnitPrice, c.Lines[i].Quantity)
		totals = append(totals, c.Lines[i].Total)
	}
	c.Subtotal = money.Sum(totals...)
	c.Discount = 0
	c.Total = c.Subtotal - c.Discount
}
