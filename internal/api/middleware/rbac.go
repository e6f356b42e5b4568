package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-service/internal/api/metrics"
	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

// RBAC enforces role-based access control. The allowed-role set is bound once
// at route registration; each protected operation declares its own. Denial is
// the typed domain error so the boundary layer decides the response shape.
func RBAC(audit ports.AuditPublisher, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := Principal(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[user.Role]; !ok {
				metrics.AuthzDenialsTotal.WithLabelValues(user.Role).Inc()
				if audit != nil {
					audit.Publish(domain.AuditEvent{
						Type:     domain.AuditAccessDenied,
						Username: user.Username,
						Detail:   "role " + user.Role + " not allowed on " + c.Path(),
					})
				}
				return domain.ErrPermissionDenied
			}
			return next(c)
		}
	}
}
