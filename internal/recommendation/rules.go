package recommendation

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
	"github.com/angelmondragon/lushka-backend/pkg/money"
	"github.com/google/uuid"
)

const (
	maxProducts = 4
	maxBundles  = 2

	baseConfidence      = 0.75
	ingredientIncrement = 0.10
	budgetIncrement     = 0.10
	concernIncrement    = 0.05
	maxConfidence       = 0.90

	closingSentence = "Estos productos cumplen con tus criterios principales."
)

// Rules computes recommendations from quiz answers against a catalog.
type Rules struct {
	catalog *catalog.Catalog
	now     func() time.Time
	newID   func() string
}

// NewRules builds the rule-based engine.
func NewRules(c *catalog.Catalog) *Rules {
	return &Rules{catalog: c, now: time.Now, newID: uuid.NewString}
}

// Recommend runs the filter cascade and builds the explained result.
func (r *Rules) Recommend(answers []Answer) Recommendation {
	crit := criteriaFrom(answers)
	return Recommendation{
		ID:         r.newID(),
		Products:   r.products(crit),
		Bundles:    r.bundles(crit),
		Reasoning:  reasoning(crit),
		Confidence: confidence(crit),
		Source:     enums.RecommendationSourceRules,
		Answers:    copyAnswers(answers),
		CreatedAt:  r.now(),
	}
}

type stages struct {
	category bool
	budget   bool
	concern  bool
	skin     bool
}

// products narrows the catalog. When the strict pass is empty it relaxes
// skin, then concern, then category while keeping budget, then budget.
func (r *Rules) products(crit criteria) []catalog.Product {
	attempts := []stages{
		{category: true, budget: true, concern: true, skin: true},
		{category: true, budget: true, concern: true},
		{category: true, budget: true},
		{budget: true},
		{category: true},
	}
	for _, s := range attempts {
		if out := r.narrow(crit, s); len(out) > 0 {
			return rank(out)
		}
	}
	return rank(r.nonBundleProducts())
}

func (r *Rules) narrow(crit criteria, s stages) []catalog.Product {
	pool := r.nonBundleProducts()
	if s.category {
		pool = r.categoryPool(crit)
	}
	if s.budget {
		pool = withinBudget(pool, crit.Budget, r.now())
	}
	if s.concern {
		pool = matchingTags(pool, concernKeywords[crit.Concern])
	}
	if s.skin {
		pool = matchingTags(pool, skinKeywords[crit.SkinType])
	}
	return pool
}

// categoryPool maps the product type to categories, falling back to the
// default category and then to every non-bundle product.
func (r *Rules) categoryPool(crit criteria) []catalog.Product {
	if pool := r.inCategories(requestedProductCategories(crit)); len(pool) > 0 {
		return pool
	}
	if pool := r.inCategories([]enums.ProductCategory{defaultCategory}); len(pool) > 0 {
		return pool
	}
	return r.nonBundleProducts()
}

func (r *Rules) inCategories(categories []enums.ProductCategory) []catalog.Product {
	if len(categories) == 0 {
		return nil
	}
	var out []catalog.Product
	for _, p := range r.catalog.Products() {
		if !p.Category.IsBundleCategory() && slices.Contains(categories, p.Category) {
			out = append(out, p)
		}
	}
	return out
}

func (r *Rules) nonBundleProducts() []catalog.Product {
	var out []catalog.Product
	for _, p := range r.catalog.Products() {
		if !p.Category.IsBundleCategory() {
			out = append(out, p)
		}
	}
	return out
}

func requestedProductCategories(crit criteria) []enums.ProductCategory {
	var out []enums.ProductCategory
	for _, c := range categoriesByType[crit.ProductType] {
		if !c.IsBundleCategory() {
			out = append(out, c)
		}
	}
	return out
}

func bundlesRequested(crit criteria) bool {
	return slices.ContainsFunc(categoriesByType[crit.ProductType], enums.ProductCategory.IsBundleCategory)
}

// withinBudget keeps the bucket's lower bound and widens the upper bound one
// bucket at a time until something fits. An unknown bucket skips the stage.
func withinBudget(pool []catalog.Product, budget string, now time.Time) []catalog.Product {
	idx := budgetIndex(budget)
	if idx < 0 {
		return pool
	}
	lower := budgetBuckets[idx].Min
	for i := idx; i < len(budgetBuckets); i++ {
		upper := budgetBuckets[i].Max
		var out []catalog.Product
		for _, p := range pool {
			price := p.EffectivePrice(now)
			if price >= lower && price <= upper {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func matchingTags(pool []catalog.Product, keywords []string) []catalog.Product {
	if len(keywords) == 0 {
		return pool
	}
	var out []catalog.Product
	for _, p := range pool {
		if catalog.TagsMatch(p.Tags, keywords) {
			out = append(out, p)
		}
	}
	return out
}

func rank(pool []catalog.Product) []catalog.Product {
	out := slices.Clone(pool)
	slices.SortStableFunc(out, func(a, b catalog.Product) int {
		return trueFirst(a.Featured, b.Featured)
	})
	if len(out) > maxProducts {
		out = out[:maxProducts]
	}
	return out
}

func trueFirst(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	}
	return 1
}

// bundles returns every bundle when bundles were requested, otherwise those
// built from the requested categories or tagged for the concern. Concern
// matches rank first, then featured.
func (r *Rules) bundles(crit criteria) []catalog.Bundle {
	keywords := concernKeywords[crit.Concern]
	requested := bundlesRequested(crit)
	categories := requestedProductCategories(crit)

	type candidate struct {
		bundle  catalog.Bundle
		concern bool
	}
	var candidates []candidate
	for _, b := range r.catalog.Bundles() {
		concern := len(keywords) > 0 && catalog.TagsMatch(b.Tags, keywords)
		inCategory := false
		for _, c := range r.catalog.BundleCategories(b) {
			if slices.Contains(categories, c) {
				inCategory = true
				break
			}
		}
		if requested || inCategory || concern {
			candidates = append(candidates, candidate{bundle: b, concern: concern})
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if c := trueFirst(a.concern, b.concern); c != 0 {
			return c
		}
		return trueFirst(a.bundle.Featured, b.bundle.Featured)
	})

	out := make([]catalog.Bundle, 0, maxBundles)
	for _, c := range candidates {
		if len(out) == maxBundles {
			break
		}
		out = append(out, c.bundle)
	}
	return out
}

var productTypePhrases = map[string]string{
	"haircare": "cuidado del cabello",
	"bodycare": "cuidado corporal",
	"skincare": "cuidado facial",
	"combos":   "combos y kits",
}

var budgetPhrases = map[string]string{
	"budget-low":     "rango económico",
	"budget-medium":  "rango medio",
	"budget-high":    "rango alto",
	"budget-premium": "rango premium",
}

var concernPhrases = map[string]string{
	"hydration": "hidratación",
	"repair":    "reparación",
	"shine":     "brillo",
	"cleansing": "limpieza",
}

var skinPhrases = map[string]string{
	"dry":       "piel o cabello seco",
	"oily":      "piel o cabello graso",
	"sensitive": "piel sensible",
	"normal":    "piel o cabello normal",
}

var ingredientPhrases = map[string]string{
	"natural":        "ingredientes naturales",
	"dermatological": "fórmulas dermatológicas",
	"vegan":          "ingredientes veganos",
}

func reasoning(crit criteria) string {
	var clauses []string
	if phrase, ok := productTypePhrases[crit.ProductType]; ok {
		clauses = append(clauses, "Basado en tu interés en "+phrase)
	}
	if phrase, ok := budgetPhrases[crit.Budget]; ok {
		clauses = append(clauses, fmt.Sprintf("con presupuesto en el %s (%s)", phrase, bucketLabel(budgetBuckets[budgetIndex(crit.Budget)])))
	}
	if phrase, ok := concernPhrases[crit.Concern]; ok {
		clauses = append(clauses, "para tratar "+phrase)
	}
	if phrase, ok := skinPhrases[crit.SkinType]; ok {
		clauses = append(clauses, "adecuados para "+phrase)
	}
	if phrase, ok := ingredientPhrases[crit.Ingredient]; ok {
		clauses = append(clauses, "con preferencia por "+phrase)
	}
	if len(clauses) == 0 {
		return closingSentence
	}
	return strings.Join(clauses, ", ") + ". " + closingSentence
}

func bucketLabel(b budgetBucket) string {
	if b.Max == math.MaxInt64 {
		return "desde " + money.Format(b.Min)
	}
	return money.Format(b.Min) + " - " + money.Format(b.Max)
}

func confidence(crit criteria) float64 {
	score := baseConfidence
	if crit.has(QuestionIngredient) && crit.Ingredient != noPreference {
		score += ingredientIncrement
	}
	if crit.has(QuestionBudget) {
		score += budgetIncrement
	}
	if crit.has(QuestionConcern) {
		score += concernIncrement
	}
	return clampConfidence(score)
}

// clampConfidence bounds a score to [0.75, 0.90], rounded to two decimals.
func clampConfidence(score float64) float64 {
	score = math.Max(baseConfidence, math.Min(score, maxConfidence))
	return math.Round(score*100) / 100
}
