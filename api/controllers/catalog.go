package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/lushka-backend/api/responses"
	"github.com/angelmondragon/lushka-backend/api/validators"
	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lushka-backend/pkg/errors"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
	"github.com/angelmondragon/lushka-backend/pkg/pagination"
)

const maxSearchLength = 80

type categoriesResponse struct {
	Categories  []catalog.Category   `json:"categories"`
	PriceRanges []catalog.PriceRange `json:"price_ranges"`
}

type productResponse struct {
	catalog.Product
	EffectivePrice int64 `json:"effective_price"`
}

type bundleResponse struct {
	catalog.Bundle
	EffectivePrice int64                   `json:"effective_price"`
	Savings        int64                   `json:"savings"`
	Categories     []enums.ProductCategory `json:"categories"`
}

func newProductResponse(p catalog.Product, now time.Time) productResponse {
	return productResponse{Product: p, EffectivePrice: p.EffectivePrice(now)}
}

func newBundleResponse(c *catalog.Catalog, b catalog.Bundle, now time.Time) bundleResponse {
	return bundleResponse{
		Bundle:         b,
		EffectivePrice: b.EffectivePrice(now),
		Savings:        b.Savings(now),
		Categories:     c.BundleCategories(b),
	}
}

// CatalogCategories lists categories with counts and the named price bands.
func CatalogCategories(c *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, categoriesResponse{
			Categories:  c.Categories(),
			PriceRanges: catalog.PriceRanges(),
		})
	}
}

// CatalogProducts lists products filtered by the query string.
func CatalogProducts(c *catalog.Catalog, logg *logger.Logger, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := c.ListProducts(filter, pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error()))
			return
		}

		at := now()
		items := make([]productResponse, 0, len(result.Products))
		for _, p := range result.Products {
			items = append(items, newProductResponse(p, at))
		}
		responses.WriteSuccessMeta(w, items, result.Page)
	}
}

func parseListFilter(r *http.Request) (catalog.ListFilter, error) {
	var filter catalog.ListFilter

	for _, raw := range validators.ParseQueryList(r, "category") {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").
				WithDetails(map[string]any{"field": "category", "value": raw})
		}
		filter.Categories = append(filter.Categories, category)
	}
	filter.PriceRanges = validators.ParseQueryList(r, "price_range")
	filter.Tags = validators.ParseQueryList(r, "tag")

	var err error
	if filter.MinPrice, err = validators.ParseQueryAmount(r, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = validators.ParseQueryAmount(r, "max_price"); err != nil {
		return filter, err
	}
	if filter.FeaturedOnly, err = validators.ParseQueryBool(r, "featured"); err != nil {
		return filter, err
	}
	if filter.InStockOnly, err = validators.ParseQueryBool(r, "in_stock"); err != nil {
		return filter, err
	}
	filter.Query = validators.SanitizeLine(r.URL.Query().Get("q"), maxSearchLength)
	return filter, nil
}

// CatalogProduct returns one product by id.
func CatalogProduct(c *catalog.Catalog, logg *logger.Logger, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		p, ok := c.Product(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, newProductResponse(p, now()))
	}
}

// CatalogBundles lists bundles, optionally only featured ones.
func CatalogBundles(c *catalog.Catalog, logg *logger.Logger, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, err := validators.ParseQueryBool(r, "featured")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bundles := c.Bundles()
		if featured {
			bundles = c.FeaturedBundles()
		}

		at := now()
		items := make([]bundleResponse, 0, len(bundles))
		for _, b := range bundles {
			items = append(items, newBundleResponse(c, b, at))
		}
		responses.WriteSuccess(w, items)
	}
}

// CatalogBundle returns one bundle by id.
func CatalogBundle(c *catalog.Catalog, logg *logger.Logger, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		b, ok := c.Bundle(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "bundle not found"))
			return
		}
		responses.WriteSuccess(w, newBundleResponse(c, b, now()))
	}
}
