package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/rpda/pkg/domain"
	"github.com/aretw0/rpda/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockStore struct{}

func (m *MockStore) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	return nil
}
func (m *MockStore) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	return nil, domain.ErrSessionNotFound
}
func (m *MockStore) Delete(ctx context.Context, sessionID string) error { return nil }
func (m *MockStore) List(ctx context.Context) ([]string, error)         { return nil, nil }

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(&MockStore{})
	ctx := context.Background()

	for i := 0; i < 10000; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.Save(ctx, sid, domain.NewSnapshot("q0"))
		_ = mgr.Delete(ctx, sid)
	}

	mgr.tableMu.Lock()
	defer mgr.tableMu.Unlock()
	assert.Empty(t, mgr.locks, "lock entries should be released")
}

type recordingLocker struct {
	keys     []string
	ttls     []time.Duration
	released int
	err      error
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.keys = append(l.keys, key)
	l.ttls = append(l.ttls, ttl)
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

func TestManager_DistributedLock(t *testing.T) {
	locker := &recordingLocker{}
	mgr := NewManager(&MockStore{}, WithLocker(locker), WithLockTTL(time.Second))

	require.NoError(t, mgr.Save(context.Background(), "s1", domain.NewSnapshot("q0")))
	assert.Equal(t, []string{"s1"}, locker.keys)
	assert.Equal(t, []time.Duration{time.Second}, locker.ttls)
	assert.Equal(t, 1, locker.released)
}

func TestManager_DistributedLockFailure(t *testing.T) {
	boom := errors.New("boom")
	mgr := NewManager(&MockStore{}, WithLocker(&recordingLocker{err: boom}))

	called := false
	err := mgr.WithLock(context.Background(), "s1", func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}
