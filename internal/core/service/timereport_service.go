package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/core/ports"
)

// overviewData is the paired fetch result the report page needs: both
// collections, committed together or not at all.
type overviewData struct {
	reports   []domain.TimeReport
	employees []domain.Employee
}

// TimeReportService implements ports.TimeReportBoard. The report list page
// needs two collections, time reports and employees, so Overview fetches
// both concurrently and commits only when both arrive; either failure leaves
// the previously displayed data untouched.
type TimeReportService struct {
	reports   ports.TimeReportAPI
	employees ports.EmployeeAPI
	logger    zerolog.Logger

	resource *Resource[overviewData]
	cache    *Collection[domain.TimeReport]

	mu    sync.RWMutex
	names []domain.Employee // last successfully fetched employee list, for the join
}

func NewTimeReportService(reports ports.TimeReportAPI, employees ports.EmployeeAPI, logger zerolog.Logger) *TimeReportService {
	s := &TimeReportService{
		reports:   reports,
		employees: employees,
		logger:    logger,
		cache:     NewCollection(func(r domain.TimeReport) int64 { return r.ID }),
	}
	s.resource = NewResource(s.fetchOverview)
	// Committing through the resource keeps the token check and the snapshot
	// swap atomic: a stale paired fetch can never reach the collections.
	s.resource.OnCommit(func(d overviewData) {
		s.cache.ReplaceAll(d.reports)
		s.mu.Lock()
		s.names = d.employees
		s.mu.Unlock()
	})
	return s
}

func (s *TimeReportService) fetchOverview(ctx context.Context) (overviewData, error) {
	var d overviewData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.reports.ListTimeReports(gctx)
		if err != nil {
			return err
		}
		d.reports = list
		return nil
	})
	g.Go(func() error {
		list, err := s.employees.ListEmployees(gctx)
		if err != nil {
			return err
		}
		d.employees = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return overviewData{}, err
	}
	return d, nil
}

// Overview refetches reports and employees in parallel and returns the rows
// joined with employee display names. A stale response (a newer Overview
// committed meanwhile) is discarded before it reaches the snapshot.
func (s *TimeReportService) Overview(ctx context.Context) ([]ports.ReportRow, error) {
	if _, err := s.resource.Refetch(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch time report overview")
		return s.Rows(), err
	}
	return s.Rows(), nil
}

// Rows joins the current snapshot with the last fetched employee names.
func (s *TimeReportService) Rows() []ports.ReportRow {
	s.mu.RLock()
	employees := s.names
	s.mu.RUnlock()
	return JoinEmployeeName(s.cache.Items(), employees)
}

// Submit creates an unapproved report on the backend and inserts the created
// record into the local snapshot.
func (s *TimeReportService) Submit(ctx context.Context, input ports.CreateTimeReportInput) (*domain.TimeReport, error) {
	created, err := s.reports.CreateTimeReport(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).Int64("employee_id", input.EmployeeID).Msg("failed to submit time report")
		return nil, err
	}
	s.cache.Insert(*created)
	s.logger.Info().Int64("report_id", created.ID).Int64("employee_id", created.EmployeeID).Msg("time report submitted")
	return created, nil
}

// SetApproval sets the approval flag on the backend, then flips the local
// copy. Each patch only touches its own report, so out-of-order resolution
// of two toggles cannot corrupt other rows.
func (s *TimeReportService) SetApproval(ctx context.Context, id int64, approved bool) error {
	if _, err := s.reports.UpdateApproval(ctx, id, approved); err != nil {
		s.logger.Error().Err(err).Int64("report_id", id).Msg("failed to update approval")
		return err
	}
	s.cache.PatchByID(id, func(r *domain.TimeReport) { r.IsApproved = approved })
	s.logger.Info().Int64("report_id", id).Bool("approved", approved).Msg("approval updated")
	return nil
}

// Delete removes the report on the backend and drops it from the snapshot.
func (s *TimeReportService) Delete(ctx context.Context, id int64) error {
	if err := s.reports.DeleteTimeReport(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("report_id", id).Msg("failed to delete time report")
		return err
	}
	s.cache.Remove(id)
	s.logger.Info().Int64("report_id", id).Msg("time report deleted")
	return nil
}
