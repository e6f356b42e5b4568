package ports

import (
	"context"

	"github.com/veridian/identity-service/internal/core/domain"
)

// SessionService turns bearer tokens back into live principals. Every
// resolution re-reads the credential store so role changes and disablement
// take effect immediately, never the stale claim data.
type SessionService interface {
	// ResolveAccess yields the principal behind an access token, or
	// domain.ErrUnauthenticated for every failure mode.
	ResolveAccess(ctx context.Context, token string) (*domain.User, error)

	// ResolveRefresh yields the principal behind a refresh token together
	// with the original token string so the caller can rotate or revoke it.
	// The live-set membership check precedes signature verification.
	ResolveRefresh(ctx context.Context, token string) (*domain.User, string, error)

	// RequireActive rejects disabled principals with domain.ErrInactiveAccount.
	RequireActive(user *domain.User) error
}
