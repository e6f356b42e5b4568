package memory

import (
	"context"
	"sync"
)

// RefreshTokenStore is a mutex-guarded set of live refresh tokens. A single
// mutual-exclusion boundary covers insertion at login and membership checks
// at verification, so concurrent requests never see torn state.
//
// Entries are never aged out; see ports.RefreshTokenStore for the documented
// gap this mirrors.
type RefreshTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewRefreshTokenStore() *RefreshTokenStore {
	return &RefreshTokenStore{tokens: make(map[string]struct{})}
}

func (s *RefreshTokenStore) Add(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = struct{}{}
	return nil
}

func (s *RefreshTokenStore) Contains(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok, nil
}

func (s *RefreshTokenStore) Remove(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
