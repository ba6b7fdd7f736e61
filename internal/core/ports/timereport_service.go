package ports

import (
	"context"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
)

// ReportRow is a time report decorated with the employee display name
// resolved at render time. The name is never stored.
type ReportRow struct {
	Report       domain.TimeReport
	EmployeeName string
}

// TimeReportBoard is the page-facing time-report use-case surface.
type TimeReportBoard interface {
	// Overview fetches time reports and employees concurrently, joins the
	// display names, and returns the rows. If either fetch fails the
	// previously displayed rows are returned untouched with the error.
	Overview(ctx context.Context) ([]ReportRow, error)
	// Rows returns the current joined snapshot without refetching.
	Rows() []ReportRow
	Submit(ctx context.Context, input CreateTimeReportInput) (*domain.TimeReport, error)
	// SetApproval sets the approval flag and patches the local copy.
	SetApproval(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error
}
