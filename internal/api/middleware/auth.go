package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-service/internal/api/metrics"
	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

const principalKey = "principal"

// BearerToken extracts the bearer credential from the Authorization header.
// Transport-level extraction lives here; everything after the raw string is
// the session service's concern.
func BearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

// Auth resolves the bearer access token into a live principal and injects it
// into the request context. Any resolution failure surfaces as the single
// collapsed unauthenticated error.
func Auth(session ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := BearerToken(c)
			if err != nil {
				return err
			}

			user, err := session.ResolveAccess(c.Request().Context(), token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("access", "rejected").Inc()
				return err
			}
			metrics.TokenVerificationsTotal.WithLabelValues("access", "ok").Inc()

			c.Set(principalKey, user)
			c.Set("username", user.Username)
			c.Set("role", user.Role)

			return next(c)
		}
	}
}

// ActiveUser rejects principals whose account has been disabled since the
// token was issued. Must run after Auth.
func ActiveUser(session ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := Principal(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if err := session.RequireActive(user); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// Principal returns the authenticated user injected by Auth.
func Principal(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(principalKey).(*domain.User)
	return user, ok
}
