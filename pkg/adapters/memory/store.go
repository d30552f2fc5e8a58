package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/rpda/pkg/domain"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Snapshot),
	}
}

// copySnapshot isolates stored snapshots from callers, similar to serialization.
func copySnapshot(s *domain.Snapshot) *domain.Snapshot {
	c := *s
	c.Stack = slices.Clone(s.Stack)
	if c.Stack == nil {
		c.Stack = []domain.Symbol{}
	}
	return &c
}

// Save persists the snapshot in memory.
func (s *Store) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	copied := copySnapshot(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves the snapshot from memory.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	// Copy on read so the caller can't mutate the stored snapshot by pointer
	return copySnapshot(snap), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns stored sessions in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	slices.Sort(sessions)
	return sessions, nil
}
