package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestResource_StartsPending(t *testing.T) {
	r := NewResource(func(ctx context.Context) ([]int, error) { return nil, nil })

	snap := r.Snapshot()
	if snap.Status != StatusPending {
		t.Errorf("status = %q, want %q", snap.Status, StatusPending)
	}
}

func TestResource_SuccessStoresData(t *testing.T) {
	r := NewResource(func(ctx context.Context) ([]int, error) { return []int{1, 2}, nil })

	data, err := r.Refetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 2 {
		t.Fatalf("data = %v, want [1 2]", data)
	}

	snap := r.Snapshot()
	if snap.Status != StatusSuccess || snap.Err != nil {
		t.Errorf("snapshot = %+v, want success with nil error", snap)
	}
}

func TestResource_ErrorKeepsLastData(t *testing.T) {
	fail := false
	r := NewResource(func(ctx context.Context) ([]int, error) {
		if fail {
			return nil, errors.New("backend down")
		}
		return []int{1, 2, 3}, nil
	})

	if _, err := r.Refetch(context.Background()); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}

	fail = true
	data, err := r.Refetch(context.Background())
	if err == nil {
		t.Fatal("expected error from failing fetch")
	}
	if len(data) != 3 {
		t.Errorf("failed refetch must return last good data, got %v", data)
	}

	snap := r.Snapshot()
	if snap.Status != StatusError {
		t.Errorf("status = %q, want %q", snap.Status, StatusError)
	}
	if len(snap.Data) != 3 {
		t.Errorf("snapshot data = %v, want last good data", snap.Data)
	}
}

func TestResource_StaleResponseDiscarded(t *testing.T) {
	// The first fetch blocks until released; a second fetch starts and
	// finishes meanwhile. When the first finally resolves, its (older)
	// result must not overwrite the newer one.
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	r := NewResource(func(ctx context.Context) ([]int, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return []int{1}, nil
		}
		return []int{2}, nil
	})

	firstDone := make(chan []int, 1)
	go func() {
		data, _ := r.Refetch(context.Background())
		firstDone <- data
	}()

	// Let the first fetch claim its token before starting the second.
	<-started

	data, err := r.Refetch(context.Background())
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if len(data) != 1 || data[0] != 2 {
		t.Fatalf("second fetch data = %v, want [2]", data)
	}

	close(release)
	firstData := <-firstDone

	// The stale fetch sees the newer snapshot, not its own result.
	if len(firstData) != 1 || firstData[0] != 2 {
		t.Errorf("stale fetch returned %v, want the newer snapshot [2]", firstData)
	}
	snap := r.Snapshot()
	if len(snap.Data) != 1 || snap.Data[0] != 2 {
		t.Errorf("snapshot data = %v, want [2]", snap.Data)
	}
}
