package trivia

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKey = "triviadb:api_token"

// Opentdb invalidates session tokens after 6 hours of inactivity.
const defaultTokenTTL = 6 * time.Hour

// RedisTokenStore caches the API token in Redis for the session lifetime.
type RedisTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ TokenStore = (*RedisTokenStore)(nil)

func NewRedisTokenStore(client *redis.Client, ttl time.Duration) *RedisTokenStore {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &RedisTokenStore{client: client, ttl: ttl}
}

func (s *RedisTokenStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (s *RedisTokenStore) Set(ctx context.Context, token string) error {
	return s.client.Set(ctx, tokenKey, token, s.ttl).Err()
}

// NopTokenStore is the degraded mode used when no session store is
// configured: never hits, never stores.
type NopTokenStore struct{}

var _ TokenStore = NopTokenStore{}

func (NopTokenStore) Get(context.Context) (string, error) { return "", nil }

func (NopTokenStore) Set(context.Context, string) error { return nil }
