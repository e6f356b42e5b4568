package ports

import (
	"context"

	"github.com/veridian/identity-service/internal/core/domain"
)

// UserRepository is the lookup-by-username collaborator backing the
// credential store. Implementations return domain.ErrUserNotFound when no
// record matches.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
