package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

const defaultAuditLimit = 50

// AuditHandler exposes the authentication audit trail to administrators.
type AuditHandler struct {
	query ports.AuditQuery
}

func NewAuditHandler(query ports.AuditQuery) *AuditHandler {
	return &AuditHandler{query: query}
}

type auditResponse struct {
	Events []domain.AuditEvent `json:"events"`
}

// List returns the most recent audit events, newest first.
//
// @Summary      Recent audit events
// @Tags         audit
// @Produce      json
// @Param        limit  query     int  false  "maximum events to return"
// @Success      200    {object}  auditResponse
// @Failure      401    {object}  map[string]string
// @Router       /admin/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit := int64(defaultAuditLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	events, err := h.query.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, auditResponse{Events: events})
}
