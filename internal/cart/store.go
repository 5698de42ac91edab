package cart

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/angelmondragon/lushka-backend/pkg/logger"
	"github.com/angelmondragon/lushka-backend/pkg/metrics"
	"github.com/google/uuid"
)

// Listener receives the cart summary after every completed mutation.
type Listener func(Summary)

// StoreOptions wires a Store's collaborators.
type StoreOptions struct {
	SessionID       string
	Snapshots       SnapshotStore
	Resolver        Resolver
	FreshnessWindow time.Duration
	Logger          *logger.Logger
	Metrics         *metrics.Storefront
	Clock           func() time.Time
	NewID           func() string
}

// Store is one session's cart. Mutations are serialized; invalid input is a
// silent no-op and storage failures are logged, never returned.
type Store struct {
	mu        sync.Mutex
	cart      Cart
	sessionID string
	snapshots SnapshotStore
	resolver  Resolver
	window    time.Duration
	logg      *logger.Logger
	metrics   *metrics.Storefront
	now       func() time.Time
	newID     func() string

	subMu     sync.Mutex
	listeners map[int]Listener
	nextSubID int
}

// NewStore builds a store and hydrates it from the session's snapshot when a
// fresh, valid one exists.
func NewStore(ctx context.Context, opts StoreOptions) *Store {
	s := &Store{
		sessionID: opts.SessionID,
		snapshots: opts.Snapshots,
		resolver:  opts.Resolver,
		window:    opts.FreshnessWindow,
		logg:      opts.Logger,
		metrics:   opts.Metrics,
		now:       opts.Clock,
		newID:     opts.NewID,
		listeners: map[int]Listener{},
	}
	if s.logg == nil {
		s.logg = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	s.cart = s.emptyCart()
	if loaded, ok := s.load(ctx); ok {
		s.cart = loaded
	}
	return s
}

func (s *Store) emptyCart() Cart {
	now := s.now()
	return Cart{ID: "cart_" + s.newID(), CreatedAt: now, UpdatedAt: now}
}

func (s *Store) load(ctx context.Context) (Cart, bool) {
	if s.snapshots == nil || s.resolver == nil {
		return Cart{}, false
	}
	ctx = s.logg.WithSessionID(ctx, s.sessionID)

	data, err := s.snapshots.Load(ctx, s.sessionID)
	if err != nil {
		if !errors.Is(err, ErrSnapshotNotFound) {
			s.metrics.IncSnapshotFailure("load")
			s.logg.Error(ctx, "cart.snapshot.load_failed", err)
		}
		return Cart{}, false
	}

	c, dropped, err := decodeSnapshot(data, s.now(), s.window, s.resolver)
	if err != nil {
		if errors.Is(err, ErrSnapshotStale) {
			s.logg.Info(ctx, "cart.snapshot.stale")
		} else {
			s.metrics.IncSnapshotFailure("decode")
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.snapshot.invalid")
		}
		return Cart{}, false
	}
	if dropped > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "dropped_lines", dropped), "cart.snapshot.lines_dropped")
	}
	if c.ID == "" {
		c.ID = "cart_" + s.newID()
	}
	return c, true
}

// Refresh reconciles the in-memory cart with the persisted snapshot. A valid
// snapshot saved no earlier than the cart's last update replaces it, so writes
// made through another process are picked up. A cart idle past the freshness
// window resets to empty.
func (s *Store) Refresh(ctx context.Context) Summary {
	s.mu.Lock()
	changed := false
	if loaded, ok := s.load(ctx); ok && !loaded.UpdatedAt.Before(s.cart.UpdatedAt) {
		changed = !sameLines(s.cart.Lines, loaded.Lines)
		s.cart = loaded
	}
	if s.window > 0 && s.now().Sub(s.cart.UpdatedAt) > s.window {
		changed = changed || len(s.cart.Lines) > 0
		s.cart = s.emptyCart()
	}
	summary := summarize(s.cart)
	s.mu.Unlock()

	if changed {
		s.notify(summary)
	}
	return summary
}

func sameLines(a, b []Line) bool {
	return slices.EqualFunc(a, b, func(x, y Line) bool {
		return x.ID == y.ID && x.Quantity == y.Quantity && x.UnitPrice == y.UnitPrice
	})
}

// AddItem merges quantity into the line for the same entry, or appends a new
// line. The resulting quantity never exceeds stock; a line that would hold
// zero units is not created.
func (s *Store) AddItem(ctx context.Context, ref Ref, quantity int) Summary {
	if quantity <= 0 || ref.itemID() == "" {
		return s.Summary()
	}

	return s.mutate(ctx, "add", func(c *Cart, now time.Time) bool {
		lineType := ref.lineType()
		for i := range c.Lines {
			l := &c.Lines[i]
			if l.Type != lineType || l.ItemID() != ref.itemID() {
				continue
			}
			next := clampToStock(l.Quantity+quantity, ref.stock())
			if next == l.Quantity {
				return false
			}
			l.Quantity = next
			return true
		}

		qty := clampToStock(quantity, ref.stock())
		if qty <= 0 {
			return false
		}
		c.Lines = append(c.Lines, Line{
			ID:        "item_" + s.newID(),
			Type:      lineType,
			Product:   ref.Product,
			Bundle:    ref.Bundle,
			Quantity:  qty,
			UnitPrice: ref.unitPrice(now),
			AddedAt:   now,
		})
		return true
	})
}

// UpdateQuantity sets a line's quantity, clamped to [1, stock]. A quantity of
// zero or less removes the line. Unknown line ids are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) Summary {
	if quantity <= 0 {
		return s.RemoveItem(ctx, lineID)
	}

	return s.mutate(ctx, "update", func(c *Cart, _ time.Time) bool {
		for i := range c.Lines {
			l := &c.Lines[i]
			if l.ID != lineID {
				continue
			}
			next := clampToStock(quantity, l.Stock())
			if next < 1 {
				next = 1
			}
			if next == l.Quantity {
				return false
			}
			l.Quantity = next
			return true
		}
		return false
	})
}

// RemoveItem deletes a line when present.
func (s *Store) RemoveItem(ctx context.Context, lineID string) Summary {
	return s.mutate(ctx, "remove", func(c *Cart, _ time.Time) bool {
		for i := range c.Lines {
			if c.Lines[i].ID == lineID {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
				return true
			}
		}
		return false
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) Summary {
	return s.mutate(ctx, "clear", func(c *Cart, _ time.Time) bool {
		c.Lines = nil
		return true
	})
}

// mutate applies fn under the lock. When fn reports a change the aggregate is
// recomputed, the snapshot written and listeners notified.
func (s *Store) mutate(ctx context.Context, op string, fn func(c *Cart, now time.Time) bool) Summary {
	s.mu.Lock()
	now := s.now()
	working := s.cart
	working.Lines = copyLines(s.cart.Lines)
	if !fn(&working, now) {
		summary := summarize(s.cart)
		s.mu.Unlock()
		return summary
	}
	recompute(&working)
	working.UpdatedAt = now
	s.cart = working
	s.persist(ctx, working, now)
	summary := summarize(working)
	s.mu.Unlock()

	s.metrics.IncCartMutation(op)
	s.notify(summary)
	return summary
}

func (s *Store) persist(ctx context.Context, c Cart, now time.Time) {
	if s.snapshots == nil {
		return
	}
	ctx = s.logg.WithSessionID(ctx, s.sessionID)
	data, err := encodeSnapshot(c, now)
	if err != nil {
		s.metrics.IncSnapshotFailure("encode")
		s.logg.Error(ctx, "cart.snapshot.encode_failed", err)
		return
	}
	if err := s.snapshots.Save(ctx, s.sessionID, data); err != nil {
		s.metrics.IncSnapshotFailure("save")
		s.logg.Error(ctx, "cart.snapshot.save_failed", err)
	}
}

// Summary returns a read-only view of the cart.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summarize(s.cart)
}

// Cart returns a copy of the cart.
func (s *Store) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart
	c.Lines = copyLines(s.cart.Lines)
	return c
}

// Quantity returns the quantity held for an item id across product and
// bundle lines.
func (s *Store) Quantity(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.cart.Lines {
		if l.ItemID() == itemID {
			return l.Quantity
		}
	}
	return 0
}

// InCart reports whether any line references itemID.
func (s *Store) InCart(itemID string) bool {
	return s.Quantity(itemID) > 0
}

// Subscribe registers fn for mutation notifications and returns a func that
// removes it.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.listeners, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(summary Summary) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(summary)
	}
}
