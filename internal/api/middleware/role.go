package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
)

// roleCookie carries the view role between requests. It is a session cookie
// (no Max-Age), so closing the browser resets the role to the default. The
// role is a display gate only, never an authorization boundary; real
// authorization belongs to the backend.
const roleCookie = "staffdesk_role"

const roleContextKey = "view_role"

// ViewRole resolves the current view role from the session cookie and
// injects it into the request context. Unknown or missing values fall back
// to "user".
func ViewRole() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := domain.RoleUser
			if cookie, err := c.Cookie(roleCookie); err == nil {
				if cookie.Value == domain.RoleAdmin || cookie.Value == domain.RoleUser {
					role = cookie.Value
				}
			}
			c.Set(roleContextKey, role)
			return next(c)
		}
	}
}

// RoleFrom returns the view role injected by ViewRole, defaulting to "user".
func RoleFrom(c echo.Context) string {
	if role, ok := c.Get(roleContextKey).(string); ok && role != "" {
		return role
	}
	return domain.RoleUser
}

// SetRole writes the view role back to the session cookie.
func SetRole(c echo.Context, role string) {
	c.SetCookie(&http.Cookie{
		Name:     roleCookie,
		Value:    role,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireRole rejects requests whose view role is not in the allowed set.
// The matching controls are hidden from other roles, so hitting this without
// them means a hand-crafted request; 403 with a plain message is enough.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := allowed[RoleFrom(c)]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "this action is not available in the current view role")
			}
			return next(c)
		}
	}
}
