package recommendation

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func TestAdvisorUsesModelSelection(t *testing.T) {
	gen := &stubGenerator{text: "Claro, aquí va:\n```json\n" +
		`{"product_ids": ["aguacate", "ghost", "nutella", "aguacate"], "bundle_ids": ["casa-verde"], "reasoning": "Hidratación profunda para tu cabello.", "confidence": 0.99}` +
		"\n```\nEspero que te guste {}"}
	c := catalog.Default()
	answers := answersFor(t, "opt1", "opt1", "opt1", "opt1", "opt1")
	base := newTestRules(c).Recommend(answers)

	rec, err := NewAdvisor(gen, c).Refine(context.Background(), answers, base)
	require.NoError(t, err)

	assert.Equal(t, []string{"aguacate", "nutella"}, productIDs(rec.Products))
	assert.Equal(t, []string{"casa-verde"}, bundleIDs(rec.Bundles))
	assert.Equal(t, "Hidratación profunda para tu cabello.", rec.Reasoning)
	assert.InDelta(t, 0.90, rec.Confidence, 0.0001)
	assert.Equal(t, enums.RecommendationSourceAdvisor, rec.Source)
	assert.Equal(t, base.ID, rec.ID)

	assert.Contains(t, gen.prompt, "Tipo de producto: Cuidado del cabello")
	assert.Contains(t, gen.prompt, "aceite-capilar")
	assert.Contains(t, gen.prompt, "shine-box")
}

func TestAdvisorFailures(t *testing.T) {
	c := catalog.Default()
	answers := answersFor(t, "opt1", "opt1", "opt1", "opt1", "opt1")
	base := newTestRules(c).Recommend(answers)

	cases := []struct {
		name   string
		gen    *stubGenerator
		reason string
	}{
		{name: "network", gen: &stubGenerator{err: errors.New("deadline exceeded")}, reason: ReasonGenerate},
		{name: "prose only", gen: &stubGenerator{text: "No tengo recomendaciones"}, reason: ReasonNoJSON},
		{name: "broken json", gen: &stubGenerator{text: `{"product_ids": [`}, reason: ReasonInvalidDoc},
		{name: "unknown ids", gen: &stubGenerator{text: `{"product_ids": ["ghost"], "bundle_ids": []}`}, reason: ReasonUnknownIDs},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAdvisor(tc.gen, c).Refine(context.Background(), answers, base)
			require.Error(t, err)
			assert.Equal(t, tc.reason, FallbackReason(err))
		})
	}
}

func TestAdvisorKeepsRuleReasoningWhenEmpty(t *testing.T) {
	c := catalog.Default()
	answers := answersFor(t, "opt1", "opt1", "opt1", "opt1", "opt1")
	base := newTestRules(c).Recommend(answers)
	gen := &stubGenerator{text: `{"product_ids": ["shampoo"], "confidence": 0.2}`}

	rec, err := NewAdvisor(gen, c).Refine(context.Background(), answers, base)
	require.NoError(t, err)
	assert.Equal(t, base.Reasoning, rec.Reasoning)
	assert.InDelta(t, 0.75, rec.Confidence, 0.0001)
}

func TestEngineFallsBackToRules(t *testing.T) {
	c := catalog.Default()
	answers := answersFor(t, "opt1", "opt1", "opt1", "opt1", "opt1")
	gen := &stubGenerator{err: errors.New("unavailable")}

	engine := NewEngine(newTestRules(c), NewAdvisor(gen, c), nil, nil)
	rec := engine.Recommend(context.Background(), answers)

	assert.Equal(t, enums.RecommendationSourceRules, rec.Source)
	assert.Equal(t, []string{"aguacate", "nutella"}, productIDs(rec.Products))

	engine = NewEngine(newTestRules(c), nil, nil, nil)
	assert.Equal(t, enums.RecommendationSourceRules, engine.Recommend(context.Background(), answers).Source)
}
