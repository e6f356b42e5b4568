package ports

import (
	"context"

	"github.com/veridian/identity-service/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.TokenPair, *domain.User, error)
	// IssueAccess mints a fresh short-lived access token for a principal that
	// already proved itself, e.g. through a live refresh token.
	IssueAccess(user *domain.User) (string, error)
}
