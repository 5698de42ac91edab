package cart

import (
	"context"
	"strings"
	"sync"
	"time"
)

// SnapshotStore persists serialized carts per session.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, data []byte) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps snapshots in process memory. Entries expire after ttl
// when ttl is positive.
type MemoryStore struct {
	mu      sync.Mutex
	prefix  string
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore builds an in-process snapshot store.
func NewMemoryStore(prefix string, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		prefix:  prefix,
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]memoryEntry{},
	}
}

func (m *MemoryStore) key(sessionID string) string {
	return strings.Trim(m.prefix+":"+sessionID, ":")
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[m.key(sessionID)]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.entries, m.key(sessionID))
		return nil, ErrSnapshotNotFound
	}
	out := make([]byte, len(entry.data))
	copy(out, entry.data)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{data: make([]byte, len(data))}
	copy(entry.data, data)
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[m.key(sessionID)] = entry
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, m.key(sessionID))
	return nil
}
