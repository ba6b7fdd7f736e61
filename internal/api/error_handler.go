package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk-web/internal/api/middleware"
	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/infrastructure/backend"
	"github.com/staffdesk/staffdesk-web/internal/web/templates"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain and backend errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a toast fragment for htmx requests and a full error page otherwise.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		renderError(c, code, msg)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known errors → deterministic HTTP codes.
	var se *backend.StatusError
	var te *backend.TransportError
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, "Employee not found"
	case errors.Is(err, domain.ErrTimeReportNotFound):
		return http.StatusNotFound, "Time report not found"
	case errors.As(err, &se):
		return http.StatusBadGateway, "The server rejected the request."
	case errors.As(err, &te):
		return http.StatusBadGateway, "Could not reach the backend service."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong."
}

func renderError(c echo.Context, code int, msg string) {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)

	if c.Request().Header.Get("HX-Request") == "true" {
		comp := templates.FlashFragment(templates.Flash{Level: "error", Message: msg})
		_ = comp.Render(c.Request().Context(), c.Response().Writer)
		return
	}

	role := middleware.RoleFrom(c)
	if code == http.StatusNotFound {
		_ = templates.NotFoundPage(role, msg).Render(c.Request().Context(), c.Response().Writer)
		return
	}
	_ = templates.ErrorPage(role, msg).Render(c.Request().Context(), c.Response().Writer)
}
