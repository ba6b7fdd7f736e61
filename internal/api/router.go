package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk-web/internal/api/handler"
	"github.com/staffdesk/staffdesk-web/internal/api/middleware"
	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/core/ports"
	"github.com/staffdesk/staffdesk-web/internal/core/service"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(backendAPI ports.BackendAPI, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("staffdesk"))
	e.Use(middleware.ViewRole())

	// --- Dependencies ---
	employeeService := service.NewEmployeeService(backendAPI, log)
	reportService := service.NewTimeReportService(backendAPI, backendAPI, log)

	employeeHandler := handler.NewEmployeeHandler(employeeService)
	reportHandler := handler.NewTimeReportHandler(reportService)
	profileHandler := handler.NewProfileHandler()

	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	userOnly := middleware.RequireRole(domain.RoleUser)

	// --- Pages and actions ---
	e.GET("/", employeeHandler.List)
	e.POST("/employees", employeeHandler.Create, adminOnly)
	e.DELETE("/employees/:id", employeeHandler.Delete, adminOnly)
	e.GET("/employees/:id", employeeHandler.Profile)

	e.GET("/time-reports", reportHandler.List)
	e.POST("/time-reports", reportHandler.Submit, userOnly)
	e.PATCH("/time-reports/approve/:id", reportHandler.Approve, adminOnly)
	e.DELETE("/time-reports/:id", reportHandler.Delete, adminOnly)

	e.GET("/profile", profileHandler.Show)
	e.POST("/role/toggle", profileHandler.ToggleRole)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(backendAPI)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the backend reachable?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
