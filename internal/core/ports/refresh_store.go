package ports

import "context"

// RefreshTokenStore is the live set of currently-honored refresh tokens.
// Membership is validity: a refresh token not in the set is dead regardless
// of its signature. Remove is the revocation hook.
//
// Known gap: the set never prunes entries whose embedded expiry has passed.
// An expired-but-registered token is only caught at decode time, and entries
// stay in the set until explicitly removed.
type RefreshTokenStore interface {
	Add(ctx context.Context, token string) error
	Contains(ctx context.Context, token string) (bool, error)
	Remove(ctx context.Context, token string) error
}
