package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token represents a bearer access token held by the token manager.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenStore holds the current token behind a mutex so concurrent calls on
// one client never observe a torn read-modify-write.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the current token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the current token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear drops the current token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

// DecodeExpiry reads the exp claim from a JWT without verifying its
// signature; the remote API is the authority on token validity, the claim is
// only used to avoid sending tokens that are already stale. The returned time
// is zero when the token carries no exp claim.
func DecodeExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}

	parser := jwt.NewParser()

	_, _, err := parser.ParseUnverified(token, &claims)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing token: %w", err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}

	return claims.ExpiresAt.Time, nil
}
