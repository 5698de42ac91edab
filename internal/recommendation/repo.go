package recommendation

import (
	"context"
	"sort"
	"sync"

	"github.com/angelmondragon/lushka-backend/internal/repo"
	"github.com/angelmondragon/lushka-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// History persists settled recommendations.
type History interface {
	Create(ctx context.Context, rec *models.Recommendation) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error)
	ListBySession(ctx context.Context, sessionID string, limit int) ([]models.Recommendation, error)
}

// Repository stores recommendations in the recommendations table.
type Repository struct {
	repo.Base
}

// NewRepository constructs a recommendation repository bound to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts the record.
func (r *Repository) Create(ctx context.Context, rec *models.Recommendation) error {
	return r.DB(ctx).Create(rec).Error
}

// FindByID loads a record, returning gorm.ErrRecordNotFound when absent.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := r.DB(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListBySession returns a session's recommendations, newest first.
func (r *Repository) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := r.DB(ctx).
		Where("session_id = ?", sessionID).
		Scopes(repo.Newest("created_at", limit)).
		Find(&recs).Error
	return recs, err
}

// MemoryHistory keeps recommendations in process memory when no database is
// configured.
type MemoryHistory struct {
	mu   sync.RWMutex
	recs map[uuid.UUID]models.Recommendation
}

// NewMemoryHistory builds an empty in-process history.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{recs: map[uuid.UUID]models.Recommendation{}}
}

func (m *MemoryHistory) Create(_ context.Context, rec *models.Recommendation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.ID] = *rec
	return nil
}

func (m *MemoryHistory) FindByID(_ context.Context, id uuid.UUID) (*models.Recommendation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.recs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rec, nil
}

func (m *MemoryHistory) ListBySession(_ context.Context, sessionID string, limit int) ([]models.Recommendation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Recommendation
	for _, rec := range m.recs {
		if rec.SessionID == sessionID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
