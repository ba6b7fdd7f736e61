package ports

import (
	"context"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
)

// EmployeeDirectory is the page-facing employee use-case surface. It owns a
// transient collection snapshot: Refresh replaces it from the backend, while
// Add and Remove apply the optimistic local patch after a successful write so
// the next render reflects the change without a round trip.
type EmployeeDirectory interface {
	// Refresh refetches the employee collection. On failure the previous
	// snapshot is preserved and returned alongside the error.
	Refresh(ctx context.Context) ([]domain.Employee, error)
	// Cached returns the current snapshot without touching the network.
	Cached() []domain.Employee
	// Get returns one employee by id, refreshing first if nothing is cached.
	// Returns domain.ErrEmployeeNotFound when the id is unknown.
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	Add(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error)
	Remove(ctx context.Context, id int64) error
}
