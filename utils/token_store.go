package utils

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore remembers revoked bearer tokens until they would have expired.
type TokenStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type MemoryTokenStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryTokenStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for t, expiry := range s.revoked {
		if now.After(expiry) {
			delete(s.revoked, t)
		}
	}
	s.revoked[token] = now.Add(ttl)
	return nil
}

func (s *MemoryTokenStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiry, ok := s.revoked[token]
	return ok && time.Now().Before(expiry), nil
}

const revokedKeyPrefix = "revoked-token:"

type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore connects to the redis instance at url (redis://...).
func NewRedisTokenStore(ctx context.Context, url string) (*RedisTokenStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisTokenStore{client: client}, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err()
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}
