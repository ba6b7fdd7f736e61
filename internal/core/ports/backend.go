package ports

import (
	"context"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
)

// CreateEmployeeInput carries the fields for POST /api/employees.
type CreateEmployeeInput struct {
	Name    string
	Email   string
	IsAdmin bool
}

// CreateTimeReportInput carries the fields for POST /api/time-reports.
// Reports are always submitted unapproved.
type CreateTimeReportInput struct {
	EmployeeID int64
	StartTime  domain.Timestamp
	EndTime    domain.Timestamp
}

// EmployeeAPI is the employee surface of the backend REST API.
type EmployeeAPI interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// TimeReportAPI is the time-report surface of the backend REST API.
type TimeReportAPI interface {
	ListTimeReports(ctx context.Context) ([]domain.TimeReport, error)
	CreateTimeReport(ctx context.Context, input CreateTimeReportInput) (*domain.TimeReport, error)
	UpdateApproval(ctx context.Context, id int64, approved bool) (*domain.TimeReport, error)
	DeleteTimeReport(ctx context.Context, id int64) error
}

// BackendAPI is the full client contract; implemented by infrastructure/backend.
type BackendAPI interface {
	EmployeeAPI
	TimeReportAPI
	// Ping reports whether the backend is reachable, for readiness probes.
	Ping(ctx context.Context) error
}
