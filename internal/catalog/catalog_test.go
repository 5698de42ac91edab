package catalog

import (
	"testing"
	"time"

	"github.com/angelmondragon/lushka-backend/pkg/enums"
	"github.com/angelmondragon/lushka-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsConsistent(t *testing.T) {
	c := Default()

	require.Len(t, c.Products(), 27)
	require.Len(t, c.Bundles(), 6)

	p, ok := c.Product("aceite-capilar")
	require.True(t, ok)
	assert.Equal(t, int64(10000), p.Price)
	assert.Equal(t, enums.ProductCategoryCapilar, p.Category)
	assert.Equal(t, 50, p.Stock)
	assert.Equal(t, "CAP001", p.SKU)

	for _, b := range c.Bundles() {
		assert.Equal(t, enums.ProductCategoryCombos, b.Category, b.ID)
		assert.Greater(t, b.OriginalPrice, b.Price, b.ID)
		assert.NotEmpty(t, b.Items, b.ID)
	}
	for _, p := range c.Products() {
		assert.False(t, p.Category.IsBundleCategory(), p.ID)
	}
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	base := Product{ID: "a", Name: "A", Price: 1000, Category: enums.ProductCategoryFacial, Stock: 1}

	_, err := New([]Product{base, base}, nil)
	assert.Error(t, err, "duplicate ids")

	bad := base
	bad.Category = "hogar"
	_, err = New([]Product{bad}, nil)
	assert.Error(t, err, "invalid category")

	bad = base
	bad.Price = -1
	_, err = New([]Product{bad}, nil)
	assert.Error(t, err, "negative price")

	bundle := Bundle{Product: Product{ID: "b", Name: "B", Price: 1000, Category: enums.ProductCategoryCombos}, Items: []BundleItem{{ProductID: "missing", Quantity: 1}}}
	_, err = New([]Product{base}, []Bundle{bundle})
	assert.Error(t, err, "unknown constituent")
}

func TestResolve(t *testing.T) {
	c := Default()

	lt, ok := c.Resolve("shampoo", "")
	require.True(t, ok)
	assert.Equal(t, enums.LineTypeProduct, lt)

	lt, ok = c.Resolve("casa-verde", "")
	require.True(t, ok)
	assert.Equal(t, enums.LineTypeBundle, lt)

	_, ok = c.Resolve("shampoo", enums.LineTypeBundle)
	assert.False(t, ok)

	_, ok = c.Resolve("nope", "")
	assert.False(t, ok)
}

func TestEffectivePriceHonoursDiscountExpiry(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	p := Product{Price: 15000}
	assert.Equal(t, int64(15000), p.EffectivePrice(now))

	p.Discount = &Discount{Percentage: 10}
	assert.Equal(t, int64(13500), p.EffectivePrice(now))

	p.Discount = &Discount{Percentage: 10, ValidUntil: &future}
	assert.Equal(t, int64(13500), p.EffectivePrice(now))

	p.Discount = &Discount{Percentage: 10, ValidUntil: &past}
	assert.Equal(t, int64(15000), p.EffectivePrice(now))
}

func TestBundleSavings(t *testing.T) {
	c := Default()
	b, ok := c.Bundle("casa-amarilla")
	require.True(t, ok)
	assert.Equal(t, int64(10000), b.Savings(time.Now()))
	assert.Equal(t, []enums.ProductCategory{enums.ProductCategoryCapilar}, c.BundleCategories(b))
}

func TestTagsMatchIsBidirectional(t *testing.T) {
	assert.True(t, TagsMatch([]string{"hidratación"}, []string{"HIDRATA"}))
	assert.True(t, TagsMatch([]string{"sin sal"}, []string{"shampoo sin sal"}))
	assert.False(t, TagsMatch([]string{"brillo"}, []string{"limpieza"}))
	assert.False(t, TagsMatch([]string{""}, []string{"x"}))
	assert.False(t, TagsMatch([]string{"x"}, []string{" "}))
}

func TestListProductsFilters(t *testing.T) {
	c := Default()

	res, err := c.ListProducts(ListFilter{Categories: []enums.ProductCategory{enums.ProductCategoryFacial}}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page.Total)

	res, err = c.ListProducts(ListFilter{PriceRanges: []string{"premium"}}, pagination.Params{})
	require.NoError(t, err)
	for _, p := range res.Products {
		assert.GreaterOrEqual(t, p.Price, int64(30000))
		assert.LessOrEqual(t, p.Price, int64(42000))
	}
	ids := productIDs(res.Products)
	assert.ElementsMatch(t, []string{"despigmentante", "reto"}, ids)

	res, err = c.ListProducts(ListFilter{Tags: []string{"sin sal"}, FeaturedOnly: false}, pagination.Params{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"crema-peinar", "shampoo"}, productIDs(res.Products))

	res, err = c.ListProducts(ListFilter{Query: "PESTAÑAS"}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{"pestanas"}, productIDs(res.Products))

	res, err = c.ListProducts(ListFilter{FeaturedOnly: true, Categories: []enums.ProductCategory{enums.ProductCategoryCapilar}}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{"aguacate", "helado"}, productIDs(res.Products))

	min, max := int64(9000), int64(10000)
	res, err = c.ListProducts(ListFilter{MinPrice: &min, MaxPrice: &max}, pagination.Params{})
	require.NoError(t, err)
	for _, p := range res.Products {
		assert.Equal(t, int64(10000), p.Price)
	}
}

func TestListProductsRejectsBadFilters(t *testing.T) {
	c := Default()
	_, err := c.ListProducts(ListFilter{PriceRanges: []string{"lujo"}}, pagination.Params{})
	assert.Error(t, err)

	min, max := int64(20000), int64(10000)
	_, err = c.ListProducts(ListFilter{MinPrice: &min, MaxPrice: &max}, pagination.Params{})
	assert.Error(t, err)
}

func TestListProductsPaginates(t *testing.T) {
	c := Default()
	res, err := c.ListProducts(ListFilter{}, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, res.Products, 10)
	assert.Equal(t, 27, res.Page.Total)
	assert.Equal(t, 3, res.Page.TotalPages)
	assert.True(t, res.Page.HasNext)
}

func TestCategories(t *testing.T) {
	cats := Default().Categories()
	require.Len(t, cats, 5)
	byID := map[enums.ProductCategory]Category{}
	for _, c := range cats {
		byID[c.ID] = c
	}
	assert.Equal(t, 7, byID[enums.ProductCategoryCapilar].ProductCount)
	assert.Equal(t, 17, byID[enums.ProductCategoryCorporal].ProductCount)
	assert.Equal(t, 6, byID[enums.ProductCategoryCombos].BundleCount)
	assert.Equal(t, "Personal", byID[enums.ProductCategoryPersonal].Name)
}

func productIDs(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
