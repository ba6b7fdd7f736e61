package service

import (
	"context"
	"sync"
	"sync/atomic"
)

// Status is the request lifecycle state of a fetched resource.
type Status string

const (
	StatusPending Status = "pending"
	StatusError   Status = "error"
	StatusSuccess Status = "success"
)

// Snapshot is a point-in-time view of a resource.
type Snapshot[T any] struct {
	Status Status
	Data   T
	Err    error
}

// Resource wraps a fetch function with lifecycle state. A failed fetch sets
// StatusError but keeps the last successful data. Overlapping refetches are
// not deduplicated; instead each fetch carries a monotonically increasing
// token and a response whose token is no longer current is discarded, so a
// slow early response can never overwrite a later one.
type Resource[T any] struct {
	fetch    func(context.Context) (T, error)
	onCommit func(T)
	token    atomic.Uint64

	mu     sync.Mutex
	status Status
	data   T
	err    error
}

// NewResource builds a Resource in the pending state.
func NewResource[T any](fetch func(context.Context) (T, error)) *Resource[T] {
	return &Resource[T]{fetch: fetch, status: StatusPending}
}

// OnCommit registers fn to run, under the resource lock, each time a fresh
// successful result is stored. Stale and failed fetches never trigger it, so
// downstream state updated here inherits the token protection. Must be called
// before the first Refetch.
func (r *Resource[T]) OnCommit(fn func(T)) {
	r.onCommit = fn
}

// Refetch issues the fetch and returns the resulting data. On failure the
// last successful data is returned alongside the error. A stale response
// (a newer Refetch started meanwhile) is discarded and the current snapshot
// returned instead.
func (r *Resource[T]) Refetch(ctx context.Context) (T, error) {
	tok := r.token.Add(1)
	data, err := r.fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if tok != r.token.Load() {
		// A newer fetch superseded this one while it was in flight.
		return r.data, r.err
	}
	if err != nil {
		r.status = StatusError
		r.err = err
		return r.data, err
	}
	r.status = StatusSuccess
	r.data = data
	r.err = nil
	if r.onCommit != nil {
		r.onCommit(data)
	}
	return data, nil
}

// Snapshot returns the current lifecycle state, data, and error.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot[T]{Status: r.status, Data: r.data, Err: r.err}
}
