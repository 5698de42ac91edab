package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
)

// Generator produces model text for a prompt. *gemini.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Fallback reasons reported when the advisor result cannot be used.
const (
	ReasonGenerate   = "generate_error"
	ReasonNoJSON     = "no_json"
	ReasonInvalidDoc = "invalid_json"
	ReasonUnknownIDs = "unknown_ids"
)

// AdvisorError carries the fallback reason for a rejected advisor result.
type AdvisorError struct {
	Reason string
	Err    error
}

func (e *AdvisorError) Error() string {
	if e.Err == nil {
		return "advisor: " + e.Reason
	}
	return fmt.Sprintf("advisor: %s: %v", e.Reason, e.Err)
}

func (e *AdvisorError) Unwrap() error { return e.Err }

func advisorErr(reason string, err error) error {
	return &AdvisorError{Reason: reason, Err: err}
}

// FallbackReason extracts the reason from an advisor error.
func FallbackReason(err error) string {
	var ae *AdvisorError
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return ReasonGenerate
}

// Advisor asks a generative model to pick catalog entries for the answers.
type Advisor struct {
	gen     Generator
	catalog *catalog.Catalog
}

// NewAdvisor builds an advisor over gen.
func NewAdvisor(gen Generator, c *catalog.Catalog) *Advisor {
	return &Advisor{gen: gen, catalog: c}
}

type advisorDoc struct {
	ProductIDs []string `json:"product_ids"`
	BundleIDs  []string `json:"bundle_ids"`
	Reasoning  string   `json:"reasoning"`
	Confidence float64  `json:"confidence"`
}

// Refine replaces the rule result's items and explanation with the model's.
// The rule result supplies id, answers and timestamps, and the reasoning when
// the model left it empty.
func (a *Advisor) Refine(ctx context.Context, answers []Answer, base Recommendation) (Recommendation, error) {
	text, err := a.gen.Generate(ctx, a.prompt(answers))
	if err != nil {
		return Recommendation{}, advisorErr(ReasonGenerate, err)
	}

	doc, err := extractDoc(text)
	if err != nil {
		return Recommendation{}, err
	}

	products := make([]catalog.Product, 0, maxProducts)
	for _, id := range doc.ProductIDs {
		if p, ok := a.catalog.Product(strings.TrimSpace(id)); ok && len(products) < maxProducts && !containsProduct(products, p.ID) {
			products = append(products, p)
		}
	}
	bundles := make([]catalog.Bundle, 0, maxBundles)
	for _, id := range doc.BundleIDs {
		if b, ok := a.catalog.Bundle(strings.TrimSpace(id)); ok && len(bundles) < maxBundles && !containsBundle(bundles, b.ID) {
			bundles = append(bundles, b)
		}
	}
	if len(products) == 0 && len(bundles) == 0 {
		return Recommendation{}, advisorErr(ReasonUnknownIDs, nil)
	}

	out := base
	out.Products = products
	out.Bundles = bundles
	out.Source = enums.RecommendationSourceAdvisor
	out.Confidence = clampConfidence(doc.Confidence)
	if r := strings.TrimSpace(doc.Reasoning); r != "" {
		out.Reasoning = r
	}
	return out, nil
}

// extractDoc decodes the first JSON object embedded in text.
func extractDoc(text string) (advisorDoc, error) {
	start := strings.Index(text, "{")
	if start < 0 {
		return advisorDoc{}, advisorErr(ReasonNoJSON, nil)
	}
	var doc advisorDoc
	if err := json.NewDecoder(strings.NewReader(text[start:])).Decode(&doc); err != nil {
		return advisorDoc{}, advisorErr(ReasonInvalidDoc, err)
	}
	return doc, nil
}

func containsProduct(list []catalog.Product, id string) bool {
	for _, p := range list {
		if p.ID == id {
			return true
		}
	}
	return false
}

func containsBundle(list []catalog.Bundle, id string) bool {
	for _, b := range list {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (a *Advisor) prompt(answers []Answer) string {
	var b strings.Builder
	b.WriteString("Eres una asesora de belleza de Lushka. Con base en las respuestas de la clienta, ")
	b.WriteString("elige productos del catálogo que resuelvan sus necesidades.\n\nRespuestas:\n")
	for _, ans := range answers {
		q, _, ok := questionByID(ans.QuestionID)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", q.PromptLabel, q.optionText(ans.Value))
	}

	b.WriteString("\nProductos disponibles (id | nombre | categoría | precio | etiquetas):\n")
	for _, p := range a.catalog.Products() {
		if !p.InStock() {
			continue
		}
		fmt.Fprintf(&b, "- %s | %s | %s | %d | %s\n", p.ID, p.Name, p.Category, p.Price, strings.Join(p.Tags, ", "))
	}
	b.WriteString("\nCombos disponibles (id | nombre | precio | etiquetas):\n")
	for _, bundle := range a.catalog.Bundles() {
		if !bundle.InStock() {
			continue
		}
		fmt.Fprintf(&b, "- %s | %s | %d | %s\n", bundle.ID, bundle.Name, bundle.Price, strings.Join(bundle.Tags, ", "))
	}

	fmt.Fprintf(&b, "\nElige hasta %d productos y hasta %d combos usando solo los ids listados. ", maxProducts, maxBundles)
	b.WriteString("Responde ÚNICAMENTE con un objeto JSON con esta forma:\n")
	b.WriteString(`{"product_ids": ["id"], "bundle_ids": ["id"], "reasoning": "por qué encajan con la clienta", "confidence": 0.85}`)
	return b.String()
}
