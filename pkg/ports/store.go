package ports

import (
	"context"

	"github.com/aretw0/rpda/pkg/domain"
)

// SnapshotStore defines the interface for persisting interactive sessions.
// This allows a stepping session to be stopped and resumed, or shared by replicas.
type SnapshotStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of the stored sessions.
	List(ctx context.Context) ([]string, error)
}
