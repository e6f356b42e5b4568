package service

import (
	"context"
	"errors"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
	"github.com/veridian/identity-service/internal/core/token"
)

// SessionService resolves bearer tokens into live principals. Every decode
// failure collapses to domain.ErrUnauthenticated so callers cannot probe
// whether a token was expired, forged, or malformed; the internal cause is
// published to the audit pipeline instead.
type SessionService struct {
	repo       ports.UserRepository
	refreshSet ports.RefreshTokenStore
	codec      *token.Codec
	audit      ports.AuditPublisher
}

func NewSessionService(repo ports.UserRepository, refreshSet ports.RefreshTokenStore, codec *token.Codec, audit ports.AuditPublisher) *SessionService {
	return &SessionService{repo: repo, refreshSet: refreshSet, codec: codec, audit: audit}
}

func (s *SessionService) ResolveAccess(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		s.publish(domain.AuditEvent{Type: domain.AuditTokenRejected, Detail: err.Error()})
		return nil, domain.ErrUnauthenticated
	}
	return s.resolveSubject(ctx, claims.Subject)
}

// ResolveRefresh honors a refresh token only if it is still a member of the
// live set AND its signature and claims decode. The membership check comes
// first: tokens outside the set never reach the codec.
func (s *SessionService) ResolveRefresh(ctx context.Context, tokenString string) (*domain.User, string, error) {
	live, err := s.refreshSet.Contains(ctx, tokenString)
	if err != nil {
		return nil, "", err
	}
	if !live {
		s.publish(domain.AuditEvent{Type: domain.AuditTokenRejected, Detail: "refresh token not in live set"})
		return nil, "", domain.ErrUnauthenticated
	}

	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		s.publish(domain.AuditEvent{Type: domain.AuditTokenRejected, Detail: err.Error()})
		return nil, "", domain.ErrUnauthenticated
	}
	if claims.Role == "" {
		s.publish(domain.AuditEvent{Type: domain.AuditTokenRejected, Username: claims.Subject, Detail: "refresh token missing role claim"})
		return nil, "", domain.ErrUnauthenticated
	}

	user, err := s.resolveSubject(ctx, claims.Subject)
	if err != nil {
		return nil, "", err
	}
	return user, tokenString, nil
}

func (s *SessionService) RequireActive(user *domain.User) error {
	if user.Disabled {
		return domain.ErrInactiveAccount
	}
	return nil
}

// resolveSubject re-reads the credential store so disablement and role
// changes made after issuance take effect on the very next request.
func (s *SessionService) resolveSubject(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.publish(domain.AuditEvent{Type: domain.AuditTokenRejected, Username: username, Detail: "subject no longer exists"})
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *SessionService) publish(event domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Publish(event)
	}
}
