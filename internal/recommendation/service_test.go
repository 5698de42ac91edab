package recommendation

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/lushka-backend/internal/cart"
	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/pkg/db/models"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lushka-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingCart struct {
	sessionID string
	refs      []cart.Ref
}

func (r *recordingCart) AddRefs(_ context.Context, sessionID string, refs []cart.Ref) cart.Summary {
	r.sessionID = sessionID
	r.refs = append(r.refs, refs...)
	return cart.Summary{ItemCount: len(r.refs)}
}

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(&models.Recommendation{}))
	return conn
}

func newTestService(t *testing.T, history History, adder CartAdder) Service {
	t.Helper()
	rules := NewRules(catalog.Default())
	rules.now = func() time.Time { return testNow }
	svc, err := NewService(ServiceParams{
		Catalog:     catalog.Default(),
		Recommender: NewEngine(rules, nil, nil, nil),
		History:     history,
		Cart:        adder,
		Clock:       func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return svc
}

func completeQuiz(t *testing.T, svc Service, sessionID string) Recommendation {
	t.Helper()
	for _, opt := range []string{"opt1", "opt1", "opt1", "opt1", "opt1"} {
		svc.Answer(context.Background(), sessionID, opt)
	}
	v := waitForStatus(t, svc.Quiz(sessionID), enums.QuizStatusCompleted)
	require.NotNil(t, v.Recommendation)
	return *v.Recommendation
}

func waitForHistory(t *testing.T, history History, id string) *models.Recommendation {
	t.Helper()
	recID := uuid.MustParse(id)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if row, err := history.FindByID(context.Background(), recID); err == nil {
			return row
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("recommendation %s never recorded", id)
	return nil
}

func TestNewServiceValidatesParams(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestServiceRecordsAndReloadsRecommendation(t *testing.T) {
	repo := NewRepository(newSQLiteDB(t))
	svc := newTestService(t, repo, &recordingCart{})

	rec := completeQuiz(t, svc, "sess-1")
	row := waitForHistory(t, repo, rec.ID)
	assert.Equal(t, "sess-1", row.SessionID)
	assert.Equal(t, productIDs(rec.Products), row.ProductIDs)
	assert.Len(t, row.Answers, 5)

	svc.Reset(context.Background(), "sess-1")
	got, err := svc.Get(context.Background(), "sess-1", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, productIDs(rec.Products), productIDs(got.Products))
	assert.Equal(t, bundleIDs(rec.Bundles), bundleIDs(got.Bundles))
	assert.Equal(t, rec.Reasoning, got.Reasoning)

	_, err = svc.Get(context.Background(), "sess-2", rec.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	_, err = svc.Get(context.Background(), "sess-1", uuid.NewString())
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	_, err = svc.Get(context.Background(), "sess-1", "not-a-uuid")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	list, err := svc.List(context.Background(), "sess-1", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rec.ID, list[0].ID)
}

func TestServiceAddToCart(t *testing.T) {
	adder := &recordingCart{}
	svc := newTestService(t, NewMemoryHistory(), adder)

	_, err := svc.AddToCart(context.Background(), "sess-1")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))

	rec := completeQuiz(t, svc, "sess-1")
	summary, err := svc.AddToCart(context.Background(), "sess-1")
	require.NoError(t, err)

	assert.Equal(t, "sess-1", adder.sessionID)
	assert.Equal(t, len(rec.Products)+len(rec.Bundles), summary.ItemCount)
	require.NotEmpty(t, adder.refs)
	assert.Equal(t, rec.Products[0].ID, adder.refs[0].Product.ID)
}

func TestServiceSessionsAreIndependent(t *testing.T) {
	svc := newTestService(t, NewMemoryHistory(), &recordingCart{})

	svc.Answer(context.Background(), "sess-1", "opt1")
	assert.Len(t, svc.View(context.Background(), "sess-1").Answers, 1)
	assert.Empty(t, svc.View(context.Background(), "sess-2").Answers)

	v := svc.Back(context.Background(), "sess-1")
	assert.Empty(t, v.Answers)
	assert.Len(t, svc.Questions(), 5)
}

func TestServiceAnswerReportsWhichCallStartsProcessing(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Catalog:     catalog.Default(),
		Recommender: NewEngine(NewRules(catalog.Default()), nil, nil, nil),
		History:     NewMemoryHistory(),
		Cart:        &recordingCart{},
		Delay:       time.Minute,
	})
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < QuestionCount()-1; i++ {
		_, started := svc.Answer(ctx, "sess-1", "opt1")
		assert.False(t, started)
	}
	v, started := svc.Answer(ctx, "sess-1", "opt1")
	assert.True(t, started)
	assert.Equal(t, enums.QuizStatusLoading, v.Status)

	v, started = svc.Answer(ctx, "sess-1", "opt1")
	assert.False(t, started, "answers during processing are ignored")
	assert.Equal(t, enums.QuizStatusLoading, v.Status)
}

func TestServiceBoundsQuizRegistry(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Catalog:     catalog.Default(),
		Recommender: NewEngine(NewRules(catalog.Default()), nil, nil, nil),
		History:     NewMemoryHistory(),
		Cart:        &recordingCart{},
		MaxSessions: 1,
	})
	require.NoError(t, err)
	ctx := context.Background()

	svc.Answer(ctx, "sess-1", "opt1")
	first := svc.Quiz("sess-1")
	assert.Same(t, first, svc.Quiz("sess-1"))

	svc.View(ctx, "sess-2")
	assert.NotSame(t, first, svc.Quiz("sess-1"))
	assert.Empty(t, svc.View(ctx, "sess-1").Answers)

	_, err = NewService(ServiceParams{
		Catalog:     catalog.Default(),
		Recommender: NewEngine(NewRules(catalog.Default()), nil, nil, nil),
		History:     NewMemoryHistory(),
		Cart:        &recordingCart{},
		IdleTTL:     -time.Second,
	})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}
