package cart

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lushka-backend/pkg/errors"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
	"github.com/angelmondragon/lushka-backend/pkg/metrics"
)

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Catalog         *catalog.Catalog
	Snapshots       SnapshotStore
	FreshnessWindow time.Duration
	// MaxSessions bounds the stores held in memory; zero means unbounded.
	MaxSessions     int
	Logger          *logger.Logger
	Metrics         *metrics.Storefront
	Clock           func() time.Time
	NewID           func() string
}

// Service exposes cart operations scoped to a shopper session.
type Service interface {
	Summary(ctx context.Context, sessionID string) Summary
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (Summary, error)
	AddRefs(ctx context.Context, sessionID string, refs []Ref) Summary
	UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) Summary
	RemoveItem(ctx context.Context, sessionID, lineID string) Summary
	Clear(ctx context.Context, sessionID string) Summary
	Lookup(ctx context.Context, sessionID, itemID string) (LookupDTO, error)
	Store(ctx context.Context, sessionID string) *Store
}

// AddItemInput names a catalog entry to add. Type is optional; when empty the
// id is resolved against products first, then bundles.
type AddItemInput struct {
	ItemID   string
	Type     enums.LineType
	Quantity int
}

// LookupDTO reports how much of an item a session holds.
type LookupDTO struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	InCart   bool   `json:"in_cart"`
}

type service struct {
	catalog   *catalog.Catalog
	snapshots SnapshotStore
	window    time.Duration
	logg      *logger.Logger
	metrics   *metrics.Storefront
	clock     func() time.Time
	newID     func() string

	mu     sync.Mutex
	stores *expirable.LRU[string, *Store]
}

// NewService builds the session-scoped cart registry.
func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	if params.Snapshots == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "snapshot store is required")
	}
	if params.FreshnessWindow <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "freshness window must be positive")
	}
	if params.MaxSessions < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max sessions cannot be negative")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		catalog:   params.Catalog,
		snapshots: params.Snapshots,
		window:    params.FreshnessWindow,
		logg:      logg,
		metrics:   params.Metrics,
		clock:     params.Clock,
		newID:     params.NewID,
		stores:    expirable.NewLRU[string, *Store](params.MaxSessions, nil, params.FreshnessWindow),
	}, nil
}

// Store returns the session's cart store, refreshed from its snapshot.
// Stores are cached for at most one freshness window; an evicted store is
// rebuilt from the snapshot on the next request.
func (s *service) Store(ctx context.Context, sessionID string) *Store {
	s.mu.Lock()
	st, ok := s.stores.Get(sessionID)
	if !ok {
		st = NewStore(ctx, StoreOptions{
			SessionID:       sessionID,
			Snapshots:       s.snapshots,
			Resolver:        s.catalog,
			FreshnessWindow: s.window,
			Logger:          s.logg,
			Metrics:         s.metrics,
			Clock:           s.clock,
			NewID:           s.newID,
		})
		s.stores.Add(sessionID, st)
	}
	s.mu.Unlock()

	if ok {
		st.Refresh(ctx)
	}
	return st
}

func (s *service) Summary(ctx context.Context, sessionID string) Summary {
	return s.Store(ctx, sessionID).Summary()
}

// AddItem resolves the item against the catalog and adds it. Unknown ids are
// NOT_FOUND; everything past resolution follows the store's no-op rules.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (Summary, error) {
	itemID := strings.TrimSpace(input.ItemID)
	if itemID == "" {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if input.Type != "" && !input.Type.IsValid() {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid item type")
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	ref, err := s.resolve(itemID, input.Type)
	if err != nil {
		return Summary{}, err
	}
	return s.Store(ctx, sessionID).AddItem(ctx, ref, quantity), nil
}

// AddRefs adds one unit of each ref in order.
func (s *service) AddRefs(ctx context.Context, sessionID string, refs []Ref) Summary {
	st := s.Store(ctx, sessionID)
	summary := st.Summary()
	for _, ref := range refs {
		summary = st.AddItem(ctx, ref, 1)
	}
	return summary
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) Summary {
	return s.Store(ctx, sessionID).UpdateQuantity(ctx, lineID, quantity)
}

func (s *service) RemoveItem(ctx context.Context, sessionID, lineID string) Summary {
	return s.Store(ctx, sessionID).RemoveItem(ctx, lineID)
}

func (s *service) Clear(ctx context.Context, sessionID string) Summary {
	return s.Store(ctx, sessionID).Clear(ctx)
}

func (s *service) Lookup(ctx context.Context, sessionID, itemID string) (LookupDTO, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return LookupDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if _, ok := s.catalog.Resolve(itemID, ""); !ok {
		return LookupDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	qty := s.Store(ctx, sessionID).Quantity(itemID)
	return LookupDTO{ItemID: itemID, Quantity: qty, InCart: qty > 0}, nil
}

func (s *service) resolve(itemID string, lineType enums.LineType) (Ref, error) {
	resolved, ok := s.catalog.Resolve(itemID, lineType)
	if !ok {
		return Ref{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not found").
			WithDetails(map[string]any{"item_id": itemID})
	}
	if resolved == enums.LineTypeBundle {
		b, _ := s.catalog.Bundle(itemID)
		return BundleRef(b), nil
	}
	p, _ := s.catalog.Product(itemID)
	return ProductRef(p), nil
}
