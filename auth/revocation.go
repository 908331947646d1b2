package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers logged-out session ids until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, id string, ttl time.Duration) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

// RedisRevocationStore shares revocations across server instances.
type RedisRevocationStore struct {
	client redis.Cmdable
	prefix string
}

func NewRedisRevocationStore(client redis.Cmdable) *RedisRevocationStore {
	return &RedisRevocationStore{client: client, prefix: "sunrise:session:revoked:"}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+id, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session %s: %w", id, err)
	}
	return nil
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to look up session %s: %w", id, err)
	}
	return n > 0, nil
}

// MemoryRevocationStore is used when no redis is configured. Revocations are lost on restart.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, id string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, expires := range s.revoked {
		if !now.Before(expires) {
			delete(s.revoked, key)
		}
	}
	s.revoked[id] = now.Add(ttl)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.revoked[id]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expires) {
		delete(s.revoked, id)
		return false, nil
	}
	return true, nil
}
