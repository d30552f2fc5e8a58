package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes access to one stepping session across replicas.
// Steps on the same session must not interleave: each one is a read, a step
// and a write of the session snapshot.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	// The lock expires after ttl if never released.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
