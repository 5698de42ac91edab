package recommendation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/lushka-backend/internal/cart"
	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/pkg/db"
	"github.com/angelmondragon/lushka-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/lushka-backend/pkg/errors"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
	"github.com/angelmondragon/lushka-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CartAdder adds recommended entries to a session's cart.
type CartAdder interface {
	AddRefs(ctx context.Context, sessionID string, refs []cart.Ref) cart.Summary
}

// ServiceParams groups dependencies for the quiz service.
type ServiceParams struct {
	Catalog     *catalog.Catalog
	Recommender Recommender
	History     History
	Cart        CartAdder
	Delay       time.Duration
	// IdleTTL drops a quiz untouched for that long; MaxSessions bounds how
	// many are held. Zero disables either limit.
	IdleTTL     time.Duration
	MaxSessions int
	Logger      *logger.Logger
	Clock       func() time.Time
}

// Service exposes per-session quiz flows and recommendation history.
type Service interface {
	Questions() []Question
	View(ctx context.Context, sessionID string) View
	// Answer reports whether this answer was the one that started processing.
	Answer(ctx context.Context, sessionID, optionID string) (View, bool)
	Back(ctx context.Context, sessionID string) View
	Reset(ctx context.Context, sessionID string) View
	AddToCart(ctx context.Context, sessionID string) (cart.Summary, error)
	Get(ctx context.Context, sessionID, id string) (Recommendation, error)
	List(ctx context.Context, sessionID string, limit int) ([]Recommendation, error)
	Quiz(sessionID string) *Quiz
}

type service struct {
	catalog     *catalog.Catalog
	recommender Recommender
	history     History
	cart        CartAdder
	delay       time.Duration
	logg        *logger.Logger
	clock       func() time.Time

	mu      sync.Mutex
	quizzes *expirable.LRU[string, *Quiz]
}

// NewService builds the quiz registry.
func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	if params.Recommender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recommender is required")
	}
	if params.History == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "history is required")
	}
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is required")
	}
	if params.Delay < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "processing delay cannot be negative")
	}
	if params.IdleTTL < 0 || params.MaxSessions < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quiz registry limits cannot be negative")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		catalog:     params.Catalog,
		recommender: params.Recommender,
		history:     params.History,
		cart:        params.Cart,
		delay:       params.Delay,
		logg:        logg,
		clock:       params.Clock,
		quizzes:     expirable.NewLRU[string, *Quiz](params.MaxSessions, nil, params.IdleTTL),
	}, nil
}

func (s *service) Questions() []Question {
	return Questions()
}

// Quiz returns the session's quiz, creating it on first use. Each access
// renews the quiz's idle deadline.
func (s *service) Quiz(sessionID string) *Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q, ok := s.quizzes.Get(sessionID); ok {
		s.quizzes.Add(sessionID, q)
		return q
	}
	q := NewQuiz(QuizOptions{
		Recommender: s.recommender,
		Delay:       s.delay,
		Clock:       s.clock,
		OnCompleted: func(ctx context.Context, rec Recommendation) {
			s.record(ctx, sessionID, rec)
		},
	})
	s.quizzes.Add(sessionID, q)
	return q
}

func (s *service) record(ctx context.Context, sessionID string, rec Recommendation) {
	ctx = s.logg.WithSessionID(ctx, sessionID)
	row, err := toModel(sessionID, rec)
	if err != nil {
		s.logg.Error(ctx, "recommendation.record.invalid", err)
		return
	}
	if err := s.history.Create(ctx, row); err != nil {
		s.logg.Error(ctx, "recommendation.record.failed", err)
		return
	}
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"recommendation_id": rec.ID,
		"source":            rec.Source.String(),
		"products":          len(rec.Products),
		"bundles":           len(rec.Bundles),
	})
	s.logg.Info(logCtx, "recommendation.recorded")
}

func (s *service) View(_ context.Context, sessionID string) View {
	return s.Quiz(sessionID).View()
}

func (s *service) Answer(ctx context.Context, sessionID, optionID string) (View, bool) {
	return s.Quiz(sessionID).answer(s.logg.WithSessionID(ctx, sessionID), strings.TrimSpace(optionID))
}

func (s *service) Back(_ context.Context, sessionID string) View {
	return s.Quiz(sessionID).GoBack()
}

func (s *service) Reset(_ context.Context, sessionID string) View {
	return s.Quiz(sessionID).Reset()
}

// AddToCart adds one unit of each recommended product and bundle.
func (s *service) AddToCart(ctx context.Context, sessionID string) (cart.Summary, error) {
	rec, ok := s.Quiz(sessionID).Recommendation()
	if !ok {
		return cart.Summary{}, pkgerrors.New(pkgerrors.CodeStateConflict, "quiz has no recommendation yet")
	}
	refs := make([]cart.Ref, 0, len(rec.Products)+len(rec.Bundles))
	for _, p := range rec.Products {
		refs = append(refs, cart.ProductRef(p))
	}
	for _, b := range rec.Bundles {
		refs = append(refs, cart.BundleRef(b))
	}
	return s.cart.AddRefs(ctx, sessionID, refs), nil
}

// Get loads one of the session's recommendations.
func (s *service) Get(ctx context.Context, sessionID, id string) (Recommendation, error) {
	recID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return Recommendation{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid recommendation id")
	}
	if rec, ok := s.Quiz(sessionID).Recommendation(); ok && rec.ID == recID.String() {
		return rec, nil
	}

	row, err := s.history.FindByID(ctx, recID)
	if err != nil {
		if db.IsNotFound(err) {
			return Recommendation{}, pkgerrors.New(pkgerrors.CodeNotFound, "recommendation not found")
		}
		return Recommendation{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recommendation")
	}
	if row.SessionID != sessionID {
		return Recommendation{}, pkgerrors.New(pkgerrors.CodeNotFound, "recommendation not found")
	}
	return s.fromModel(row), nil
}

// List returns the session's recommendations, newest first.
func (s *service) List(ctx context.Context, sessionID string, limit int) ([]Recommendation, error) {
	rows, err := s.history.ListBySession(ctx, sessionID, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recommendations")
	}
	out := make([]Recommendation, 0, len(rows))
	for i := range rows {
		out = append(out, s.fromModel(&rows[i]))
	}
	return out, nil
}

func toModel(sessionID string, rec Recommendation) (*models.Recommendation, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, err
	}
	row := &models.Recommendation{
		ID:         id,
		SessionID:  sessionID,
		ProductIDs: make([]string, 0, len(rec.Products)),
		BundleIDs:  make([]string, 0, len(rec.Bundles)),
		Reasoning:  rec.Reasoning,
		Confidence: rec.Confidence,
		Source:     rec.Source,
		Answers:    make([]models.RecommendationAnswer, 0, len(rec.Answers)),
		CreatedAt:  rec.CreatedAt,
	}
	for _, p := range rec.Products {
		row.ProductIDs = append(row.ProductIDs, p.ID)
	}
	for _, b := range rec.Bundles {
		row.BundleIDs = append(row.BundleIDs, b.ID)
	}
	for _, a := range rec.Answers {
		row.Answers = append(row.Answers, models.RecommendationAnswer{
			QuestionID: a.QuestionID,
			OptionID:   a.OptionID,
			Value:      a.Value,
			AnsweredAt: a.AnsweredAt,
		})
	}
	return row, nil
}

// fromModel rebuilds a recommendation, skipping ids no longer in the catalog.
func (s *service) fromModel(row *models.Recommendation) Recommendation {
	rec := Recommendation{
		ID:         row.ID.String(),
		Products:   make([]catalog.Product, 0, len(row.ProductIDs)),
		Bundles:    make([]catalog.Bundle, 0, len(row.BundleIDs)),
		Reasoning:  row.Reasoning,
		Confidence: row.Confidence,
		Source:     row.Source,
		Answers:    make([]Answer, 0, len(row.Answers)),
		CreatedAt:  row.CreatedAt,
	}
	for _, id := range row.ProductIDs {
		if p, ok := s.catalog.Product(id); ok {
			rec.Products = append(rec.Products, p)
		}
	}
	for _, id := range row.BundleIDs {
		if b, ok := s.catalog.Bundle(id); ok {
			rec.Bundles = append(rec.Bundles, b)
		}
	}
	for _, a := range row.Answers {
		rec.Answers = append(rec.Answers, Answer{
			QuestionID: a.QuestionID,
			OptionID:   a.OptionID,
			Value:      a.Value,
			AnsweredAt: a.AnsweredAt,
		})
	}
	return rec
}
