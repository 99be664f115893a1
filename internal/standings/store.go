package standings

import (
	"context"
	"sync"

	"clubsite/backend/internal/models"
)

// Store keeps the latest standings snapshot under a well-known key.
// Get returns (nil, nil) when nothing has been stored yet.
type Store interface {
	Upsert(ctx context.Context, key string, snap *models.StandingsSnapshot) error
	Get(ctx context.Context, key string) (*models.StandingsSnapshot, error)
}

// MemoryStore is an in-process Store used by tests and the one-shot CLI
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]*models.StandingsSnapshot
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]*models.StandingsSnapshot)}
}

func (m *MemoryStore) Upsert(_ context.Context, key string, snap *models.StandingsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snaps[key] = snap.Clone()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (*models.StandingsSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.snaps[key].Clone(), nil
}
