package trivia

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRequester struct {
	token string
	err   error
	calls int
}

func (s *stubRequester) RequestToken(ctx context.Context) (string, error) {
	s.calls++
	return s.token, s.err
}

func redisStore(t *testing.T) (*miniredis.Miniredis, *RedisTokenStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisTokenStore(client, time.Hour)
}

func TestTokenReturnsCachedValue(t *testing.T) {
	mr, store := redisStore(t)
	cached := strings.Repeat("a", 64)
	require.NoError(t, mr.Set(tokenKey, cached))

	requester := &stubRequester{token: strings.Repeat("b", 64)}
	provider := NewTokenProvider(requester, store, zerolog.Nop())

	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, token)
	assert.Equal(t, 0, requester.calls)
}

func TestTokenRejectsMalformedCachedValue(t *testing.T) {
	mr, store := redisStore(t)
	require.NoError(t, mr.Set(tokenKey, "too-short"))

	fresh := strings.Repeat("c", 64)
	requester := &stubRequester{token: fresh}
	provider := NewTokenProvider(requester, store, zerolog.Nop())

	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, token)
	assert.Equal(t, 1, requester.calls)

	stored, err := mr.Get(tokenKey)
	require.NoError(t, err)
	assert.Equal(t, fresh, stored)
}

func TestTokenStoresFreshValueWithTTL(t *testing.T) {
	mr, store := redisStore(t)
	requester := &stubRequester{token: strings.Repeat("d", 64)}
	provider := NewTokenProvider(requester, store, zerolog.Nop())

	_, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL(tokenKey))
}

func TestTokenWithoutStoreRequestsEveryCall(t *testing.T) {
	requester := &stubRequester{token: strings.Repeat("e", 64)}
	provider := NewTokenProvider(requester, nil, zerolog.Nop())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		token, err := provider.Token(ctx)
		require.NoError(t, err)
		assert.Len(t, token, 64)
	}
	assert.Equal(t, 3, requester.calls)
}

func TestTokenStoreFailureDegradesToFetch(t *testing.T) {
	mr, store := redisStore(t)
	mr.Close() // every store call now fails

	fresh := strings.Repeat("f", 64)
	requester := &stubRequester{token: fresh}
	provider := NewTokenProvider(requester, store, zerolog.Nop())

	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, token)
	assert.Equal(t, 1, requester.calls)
}

func TestTokenRequestFailurePropagates(t *testing.T) {
	boom := errors.New("token endpoint down")
	provider := NewTokenProvider(&stubRequester{err: boom}, nil, zerolog.Nop())

	_, err := provider.Token(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRedisTokenStoreMissReturnsEmpty(t *testing.T) {
	_, store := redisStore(t)
	token, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}
