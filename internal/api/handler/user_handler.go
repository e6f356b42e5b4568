package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-service/internal/api/middleware"
	"github.com/veridian/identity-service/internal/core/domain"
)

// UserHandler serves the authenticated principal's own record.
type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the current principal as resolved from the live store, not from
// token claims.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := middleware.Principal(c)
	if !ok {
		return domain.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, user)
}
