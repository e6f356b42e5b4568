package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/password"
	"github.com/veridian/identity-service/internal/core/ports"
	"github.com/veridian/identity-service/internal/core/token"
)

const defaultRefreshTTL = 7 * 24 * time.Hour

// AuthService implements registration and password login. Login is the only
// operation in the core that mutates state: it registers the freshly minted
// refresh token in the live set.
type AuthService struct {
	repo       ports.UserRepository
	refreshSet ports.RefreshTokenStore
	codec      *token.Codec
	refreshTTL time.Duration
	audit      ports.AuditPublisher
}

func NewAuthService(repo ports.UserRepository, refreshSet ports.RefreshTokenStore, codec *token.Codec, refreshTTL time.Duration, audit ports.AuditPublisher) *AuthService {
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &AuthService{repo: repo, refreshSet: refreshSet, codec: codec, refreshTTL: refreshTTL, audit: audit}
}

func (s *AuthService) Register(ctx context.Context, username, pass, role string) (*domain.User, error) {
	if username == "" || pass == "" || !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	return s.repo.Create(ctx, user)
}

// Login verifies the password and mints the token pair. Unknown username and
// wrong password are indistinguishable in the returned error; the difference
// is preserved only in the audit trail.
func (s *AuthService) Login(ctx context.Context, username, pass string) (*domain.TokenPair, *domain.User, error) {
	if username == "" || pass == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.publish(domain.AuditEvent{Type: domain.AuditLoginFailed, Username: username, Detail: "unknown username"})
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		s.publish(domain.AuditEvent{Type: domain.AuditLoginFailed, Username: username, Detail: "password mismatch"})
		return nil, nil, domain.ErrInvalidCredentials
	}

	// Access tokens carry only the subject; role and disabled state are
	// re-resolved from the store on every verification.
	access, err := s.codec.Mint(token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Username},
	}, 0)
	if err != nil {
		return nil, nil, err
	}

	refresh, err := s.codec.Mint(token.Claims{
		Role:             user.Role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Username},
	}, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	if err := s.refreshSet.Add(ctx, refresh); err != nil {
		return nil, nil, err
	}

	s.publish(domain.AuditEvent{Type: domain.AuditLoginSucceeded, Username: username})
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// IssueAccess mints a fresh access token for an already-verified principal.
// Used by the refresh flow; carries the same claim shape as login-time access
// tokens (subject only).
func (s *AuthService) IssueAccess(user *domain.User) (string, error) {
	access, err := s.codec.Mint(token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Username},
	}, 0)
	if err != nil {
		return "", err
	}
	s.publish(domain.AuditEvent{Type: domain.AuditTokenRefreshed, Username: user.Username})
	return access, nil
}

func (s *AuthService) publish(event domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Publish(event)
	}
}
