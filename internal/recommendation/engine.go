package recommendation

import (
	"context"
	"time"

	"github.com/angelmondragon/lushka-backend/pkg/logger"
	"github.com/angelmondragon/lushka-backend/pkg/metrics"
)

// Recommender turns a completed answer set into a recommendation.
type Recommender interface {
	Recommend(ctx context.Context, answers []Answer) Recommendation
}

// Engine runs the rules and, when an advisor is configured, prefers the
// advisor's result. Advisor failures always fall back to the rules.
type Engine struct {
	rules   *Rules
	advisor *Advisor
	logg    *logger.Logger
	metrics *metrics.Storefront
}

// NewEngine wires the rule engine with an optional advisor.
func NewEngine(rules *Rules, advisor *Advisor, logg *logger.Logger, m *metrics.Storefront) *Engine {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Engine{rules: rules, advisor: advisor, logg: logg, metrics: m}
}

func (e *Engine) Recommend(ctx context.Context, answers []Answer) Recommendation {
	start := time.Now()
	defer func() { e.metrics.ObserveQuizProcessing(time.Since(start)) }()

	base := e.rules.Recommend(answers)
	if e.advisor == nil {
		e.metrics.IncRecommendation(base.Source.String())
		return base
	}

	rec, err := e.advisor.Refine(ctx, answers, base)
	if err != nil {
		reason := FallbackReason(err)
		e.metrics.IncAdvisorFallback(reason)
		e.metrics.IncRecommendation(base.Source.String())
		warnCtx := e.logg.WithFields(ctx, map[string]any{
			"reason": reason,
			"error":  err.Error(),
		})
		e.logg.Warn(warnCtx, "recommendation.advisor.fallback")
		return base
	}

	e.metrics.IncRecommendation(rec.Source.String())
	return rec
}
