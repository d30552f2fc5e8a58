package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/rpda/internal/logging"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/aretw0/rpda/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a session.
const DefaultLockTTL = 30 * time.Second

// sessionLock serializes the steps of one session inside this process.
// waiters counts the goroutines holding or queued on mu; the entry is
// dropped from the table when it reaches zero.
type sessionLock struct {
	mu      sync.Mutex
	waiters int
}

// Manager serializes reads and writes of stepping sessions.
// Every operation on a session runs under that session's lock, and under
// the distributed lock as well when a locker is configured.
type Manager struct {
	store ports.SnapshotStore

	tableMu sync.Mutex
	locks   map[string]*sessionLock

	locker  ports.DistributedLocker
	lockTTL time.Duration
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker adds a cross-replica lock around every session operation.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLifecycleHooks forwards hooks to the automaton of every step.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over store.
func NewManager(store ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*sessionLock),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// lockLocal blocks until the in-process lock of sessionID is held and
// returns the function that releases it.
func (m *Manager) lockLocal(sessionID string) func() {
	m.tableMu.Lock()
	l, ok := m.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		m.locks[sessionID] = l
	}
	l.waiters++
	m.tableMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		m.tableMu.Lock()
		defer m.tableMu.Unlock()
		l.waiters--
		if l.waiters == 0 {
			delete(m.locks, sessionID)
		}
	}
}

// Load returns the snapshot of an existing session.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID)
		return err
	})
	return snap, err
}

// LoadOrStart loads a session, or creates one at initial with an empty
// stack. A new session is saved before LoadOrStart returns.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID string, initial string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID)
		switch {
		case err == nil:
			return nil
		case !errors.Is(err, domain.ErrSessionNotFound):
			return fmt.Errorf("failed to load session: %w", err)
		}

		snap = domain.NewSnapshot(initial)
		if err := m.store.Save(ctx, sessionID, snap); err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		m.logger.Debug("session started", "session_id", sessionID, "state", initial)
		return nil
	})
	return snap, err
}

// Save overwrites the snapshot of sessionID.
func (m *Manager) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, snap)
	})
}

// Delete drops the session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List returns the stored session ids. It takes no lock.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// WithLock runs fn while sessionID is locked in this process and, if a
// locker is configured, across replicas. A failed distributed unlock is
// logged; the lock then lapses after the TTL.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	unlockLocal := m.lockLocal(sessionID)
	defer unlockLocal()

	if m.locker == nil {
		return fn(ctx)
	}

	unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
	if err != nil {
		return fmt.Errorf("failed to lock session %s: %w", sessionID, err)
	}
	defer func() {
		if err := unlock(ctx); err != nil {
			m.logger.Warn("failed to release session lock",
				"session_id", sessionID,
				"ttl", m.lockTTL,
				"err", err)
		}
	}()
	return fn(ctx)
}
