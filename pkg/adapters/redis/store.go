package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/rpda/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces session keys.
const DefaultPrefix = "rpda:session:"

// farFuture is the index score of sessions that never expire (2100-01-01).
const farFuture = 4102444800

// Store implements ports.SnapshotStore using Redis.
// Each snapshot is a JSON string key; a ZSET scored by expiry indexes them.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL expires a session this long after its last step. Zero keeps
// sessions until they are deleted.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix replaces DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New connects to address and creates a store.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Client exposes the underlying client so a Locker can share it.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the snapshot and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sessionID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sessionID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the snapshot.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if snap.Stack == nil {
		snap.Stack = []domain.Symbol{}
	}
	return &snap, nil
}

// Delete drops the snapshot and its index entry.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(sessionID))
	pipe.ZRem(ctx, s.indexKey(), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// List returns live sessions, pruning expired entries from the index first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired sessions: %w", err)
	}

	sessions, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
