package cart

import (
	"context"

	"github.com/taglinkbr/taglink-backend/pkg/redis"
)

// SnapshotStore is the persistence boundary for cart snapshots. Implementations
// are substitutable in tests.
type SnapshotStore interface {
	// Load returns the raw snapshot, or nil when none is stored.
	Load(ctx context.Context, userID string) ([]byte, error)
	Save(ctx context.Context, userID string, snapshot []byte) error
	Delete(ctx context.Context, userID string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore persists cart snapshots under a fixed per-user key in Redis.
func NewRedisStore(client *redis.Client) SnapshotStore {
	return &redisStore{client: client}
}

func (s *redisStore) Load(ctx context.Context, userID string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.client.CartKey(userID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(value), nil
}

func (s *redisStore) Save(ctx context.Context, userID string, snapshot []byte) error {
	return s.client.Set(ctx, s.client.CartKey(userID), snapshot, 0)
}

func (s *redisStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.client.CartKey(userID))
}
