// Package memory provides in-process implementations of the credential store
// ports, used for local development and as the default when no MongoDB/Redis
// backends are configured.
package memory

import (
	"context"
	"sync"

	"github.com/veridian/identity-service/internal/core/domain"
)

// UserRepository is a concurrency-safe in-memory user table keyed by
// username.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewUserRepository builds an empty repository, optionally pre-seeded.
func NewUserRepository(seed ...*domain.User) *UserRepository {
	r := &UserRepository{users: make(map[string]*domain.User, len(seed))}
	for _, u := range seed {
		clone := *u
		r.users[u.Username] = &clone
	}
	return r
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	if clone.ID == "" {
		clone.ID = clone.Username
	}
	r.users[clone.Username] = &clone
	out := clone
	return &out, nil
}

// SetDisabled flips the disabled flag on an existing user. Administrative
// mutation used by operational tooling and tests.
func (r *UserRepository) SetDisabled(_ context.Context, username string, disabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Disabled = disabled
	return nil
}
