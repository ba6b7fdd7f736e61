package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk-web/internal/api/metrics"
	"github.com/staffdesk/staffdesk-web/internal/api/middleware"
	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/web/templates"
)

// ProfileHandler serves the role info page and the view-role toggle.
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// Show handles GET /profile.
func (h *ProfileHandler) Show(c echo.Context) error {
	role := middleware.RoleFrom(c)
	return render(c, http.StatusOK, templates.RoleInfoPage(templates.RoleInfoData{
		Page: templates.Page{Role: role},
	}))
}

// ToggleRole handles POST /role/toggle. The role is a display preference
// stored in a session cookie, so flipping it just rewrites the cookie and
// reloads whatever page the user was on.
func (h *ProfileHandler) ToggleRole(c echo.Context) error {
	next := domain.RoleAdmin
	if middleware.RoleFrom(c) == domain.RoleAdmin {
		next = domain.RoleUser
	}
	middleware.SetRole(c, next)
	metrics.ActionsTotal.WithLabelValues(metrics.ActionToggleRole, metrics.OutcomeSuccess).Inc()

	if isHTMX(c) {
		c.Response().Header().Set("HX-Refresh", "true")
		return c.NoContent(http.StatusOK)
	}
	target := c.Request().Referer()
	if target == "" {
		target = "/"
	}
	return c.Redirect(http.StatusSeeOther, target)
}
