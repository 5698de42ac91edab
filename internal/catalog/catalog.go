package catalog

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/lushka-backend/pkg/enums"
)

// Catalog is the fixed, read-only product and bundle list built at startup.
// It is safe for concurrent use.
type Catalog struct {
	products      []Product
	bundles       []Bundle
	productByID   map[string]int
	bundleByID    map[string]int
	categoryNames map[enums.ProductCategory]string
}

var categoryNames = map[enums.ProductCategory]string{
	enums.ProductCategoryCapilar:  "Capilar",
	enums.ProductCategoryCorporal: "Corporal",
	enums.ProductCategoryFacial:   "Facial",
	enums.ProductCategoryPersonal: "Personal",
	enums.ProductCategoryCombos:   "Combos",
}

// New validates and indexes the supplied entries.
func New(products []Product, bundles []Bundle) (*Catalog, error) {
	c := &Catalog{
		products:      make([]Product, 0, len(products)),
		bundles:       make([]Bundle, 0, len(bundles)),
		productByID:   make(map[string]int, len(products)),
		bundleByID:    make(map[string]int, len(bundles)),
		categoryNames: categoryNames,
	}

	for _, p := range products {
		if err := validateEntry(p); err != nil {
			return nil, fmt.Errorf("product %q: %w", p.ID, err)
		}
		if _, dup := c.productByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		c.productByID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	for _, b := range bundles {
		if err := validateEntry(b.Product); err != nil {
			return nil, fmt.Errorf("bundle %q: %w", b.ID, err)
		}
		if _, dup := c.bundleByID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate bundle id %q", b.ID)
		}
		for _, item := range b.Items {
			if _, ok := c.productByID[item.ProductID]; !ok {
				return nil, fmt.Errorf("bundle %q references unknown product %q", b.ID, item.ProductID)
			}
			if item.Quantity <= 0 {
				return nil, fmt.Errorf("bundle %q has non-positive quantity for %q", b.ID, item.ProductID)
			}
		}
		c.bundleByID[b.ID] = len(c.bundles)
		c.bundles = append(c.bundles, b)
	}

	return c, nil
}

// Default returns the storefront catalog.
func Default() *Catalog {
	c, err := New(DefaultProducts(), DefaultBundles())
	if err != nil {
		panic(fmt.Sprintf("invalid default catalog: %v", err))
	}
	return c
}

func validateEntry(p Product) error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("id is required")
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("name is required")
	case p.Price < 0:
		return fmt.Errorf("price cannot be negative")
	case p.Stock < 0:
		return fmt.Errorf("stock cannot be negative")
	case !p.Category.IsValid():
		return fmt.Errorf("invalid category %q", p.Category)
	}
	return nil
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Bundles returns every bundle in catalog order.
func (c *Catalog) Bundles() []Bundle {
	out := make([]Bundle, len(c.bundles))
	copy(out, c.bundles)
	return out
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) (Product, bool) {
	idx, ok := c.productByID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Bundle looks up a bundle by id.
func (c *Catalog) Bundle(id string) (Bundle, bool) {
	idx, ok := c.bundleByID[id]
	if !ok {
		return Bundle{}, false
	}
	return c.bundles[idx], true
}

// Resolve finds the entry behind id, preferring products over bundles when an
// explicit type is not given.
func (c *Catalog) Resolve(id string, lineType enums.LineType) (enums.LineType, bool) {
	switch lineType {
	case enums.LineTypeProduct:
		_, ok := c.Product(id)
		return enums.LineTypeProduct, ok
	case enums.LineTypeBundle:
		_, ok := c.Bundle(id)
		return enums.LineTypeBundle, ok
	}
	if _, ok := c.Product(id); ok {
		return enums.LineTypeProduct, true
	}
	if _, ok := c.Bundle(id); ok {
		return enums.LineTypeBundle, true
	}
	return "", false
}

// FeaturedProducts returns featured products in catalog order.
func (c *Catalog) FeaturedProducts() []Product {
	var out []Product
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// FeaturedBundles returns featured bundles in catalog order.
func (c *Catalog) FeaturedBundles() []Bundle {
	var out []Bundle
	for _, b := range c.bundles {
		if b.Featured {
			out = append(out, b)
		}
	}
	return out
}

// BundleCategories returns the distinct categories of a bundle's constituents.
func (c *Catalog) BundleCategories(b Bundle) []enums.ProductCategory {
	seen := map[enums.ProductCategory]bool{}
	var out []enums.ProductCategory
	for _, item := range b.Items {
		p, ok := c.Product(item.ProductID)
		if !ok || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Categories lists every category with its entry counts.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(enums.ProductCategories()))
	for _, id := range enums.ProductCategories() {
		cat := Category{ID: id, Name: c.categoryNames[id]}
		for _, p := range c.products {
			if p.Category == id {
				cat.ProductCount++
			}
		}
		for _, b := range c.bundles {
			if b.Category == id {
				cat.BundleCount++
			}
		}
		out = append(out, cat)
	}
	return out
}
