package trivia

import (
	"context"

	"github.com/rs/zerolog"
)

// tokenLength is the expected length of an opentdb session token. A cheap
// structural sanity check on cached values, not cryptographic validation.
const tokenLength = 64

// TokenStore is a session-scoped key-value capability for caching the API
// token. Get returns "" when no token is stored.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
}

type tokenRequester interface {
	RequestToken(ctx context.Context) (string, error)
}

// TokenProvider memoizes the question source's session token in a TokenStore.
// Without a store it degrades to requesting a fresh token on every call.
type TokenProvider struct {
	client tokenRequester
	store  TokenStore
	logger zerolog.Logger
}

func NewTokenProvider(client tokenRequester, store TokenStore, logger zerolog.Logger) *TokenProvider {
	if store == nil {
		store = NopTokenStore{}
	}
	return &TokenProvider{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Token returns a cached token when the store holds a plausible one,
// otherwise requests a new token and best-effort caches it. Store failures
// degrade to the no-cache path; request failures propagate.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	cached, err := p.store.Get(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("token store read failed, requesting fresh token")
	} else if len(cached) == tokenLength {
		return cached, nil
	}

	token, err := p.client.RequestToken(ctx)
	if err != nil {
		return "", err
	}

	if err := p.store.Set(ctx, token); err != nil {
		p.logger.Warn().Err(err).Msg("token store write failed")
	}
	return token, nil
}
