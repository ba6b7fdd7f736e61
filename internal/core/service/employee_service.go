package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/core/ports"
)

// EmployeeService implements ports.EmployeeDirectory on top of the backend
// REST client. It holds the page's transient collection snapshot; every
// successful write applies the equivalent local patch.
type EmployeeService struct {
	api    ports.EmployeeAPI
	logger zerolog.Logger

	resource *Resource[[]domain.Employee]
	cache    *Collection[domain.Employee]
}

func NewEmployeeService(api ports.EmployeeAPI, logger zerolog.Logger) *EmployeeService {
	s := &EmployeeService{
		api:    api,
		logger: logger,
		cache:  NewCollection(func(e domain.Employee) int64 { return e.ID }),
	}
	s.resource = NewResource(api.ListEmployees)
	// Committing through the resource keeps the token check and the snapshot
	// swap atomic: a stale fetch can never reach the collection.
	s.resource.OnCommit(s.cache.ReplaceAll)
	return s
}

// Refresh refetches the employee list. On failure the previous snapshot is
// preserved and returned alongside the error so the page keeps rendering the
// last known data. A stale response (a newer Refresh committed meanwhile) is
// discarded before it reaches the snapshot.
func (s *EmployeeService) Refresh(ctx context.Context) ([]domain.Employee, error) {
	if _, err := s.resource.Refetch(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch employees")
		return s.cache.Items(), err
	}
	return s.cache.Items(), nil
}

// Cached returns the current snapshot without touching the network.
func (s *EmployeeService) Cached() []domain.Employee {
	return s.cache.Items()
}

// Get returns one employee by id, refreshing first if nothing is cached yet.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	if s.cache.Len() == 0 {
		if _, err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	for _, e := range s.cache.Items() {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

// Add creates the employee on the backend and inserts the created record
// into the local snapshot. The snapshot is untouched when the write fails.
func (s *EmployeeService) Add(ctx context.Context, input ports.CreateEmployeeInput) (*domain.Employee, error) {
	created, err := s.api.CreateEmployee(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to add employee")
		return nil, err
	}
	s.cache.Insert(*created)
	s.logger.Info().Int64("employee_id", created.ID).Str("name", created.Name).Str("role", created.Role()).Msg("employee added")
	return created, nil
}

// Remove deletes the employee on the backend and drops it from the snapshot.
func (s *EmployeeService) Remove(ctx context.Context, id int64) error {
	if err := s.api.DeleteEmployee(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to remove employee")
		return err
	}
	s.cache.Remove(id)
	s.logger.Info().Int64("employee_id", id).Msg("employee removed")
	return nil
}
