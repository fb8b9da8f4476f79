package auth

import (
	"context"
	"time"

	"ktucyber/internal/cache"
)

const usedTokenKeyPrefix = "used_token:"

// TokenStoreInterface tracks spent verification and reset tokens so a token
// is honored at most once even while its signature is still valid.
type TokenStoreInterface interface {
	MarkUsed(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
	IsUsed(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps spent token IDs in Redis until their natural expiry.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new used-token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// MarkUsed records a token ID as spent. Returns false if the token was
// already spent. The TTL should match the token's remaining lifetime.
func (s *TokenStore) MarkUsed(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	key := usedTokenKeyPrefix + tokenID
	return s.cache.SetNX(ctx, key, []byte("1"), ttl)
}

// IsUsed reports whether a token ID has been spent.
func (s *TokenStore) IsUsed(ctx context.Context, tokenID string) (bool, error) {
	key := usedTokenKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}
