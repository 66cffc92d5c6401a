package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopsense/shopsense/internal/db"
	"github.com/shopsense/shopsense/internal/domain"
	domidx "github.com/shopsense/shopsense/internal/domain/index"
)

const redisSnapshotKey = "shopsense:index:snapshot"

// kv is the consumer interface for the Redis snapshot store (ISP).
type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RedisStore persists snapshots as one JSON value in Redis. The whole
// snapshot is written with a single SET, which makes publish atomic.
type RedisStore struct {
	store kv
}

// NewRedisStore creates a Redis-backed snapshot store.
func NewRedisStore(store kv) *RedisStore {
	return &RedisStore{store: store}
}

// Load reads the persisted snapshot. Returns domain.ErrIndexNotFound when
// the key is absent.
func (s *RedisStore) Load(ctx context.Context) (domidx.Snapshot, error) {
	data, err := s.store.Get(ctx, redisSnapshotKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domidx.Snapshot{}, domain.ErrIndexNotFound
		}
		return domidx.Snapshot{}, fmt.Errorf("read snapshot key: %w", err)
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		return domidx.Snapshot{}, fmt.Errorf("snapshot key %s: %w", redisSnapshotKey, err)
	}
	return snap, nil
}

// Save replaces the snapshot key with the new serialized snapshot.
func (s *RedisStore) Save(ctx context.Context, snap domidx.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, redisSnapshotKey, data); err != nil {
		return fmt.Errorf("write snapshot key: %w", err)
	}
	return nil
}
