package service

import (
	"testing"
	"time"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
)

func mustTS(t *testing.T, s string) domain.Timestamp {
	t.Helper()
	parsed, err := time.Parse(domain.TimeLayout, s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return domain.Timestamp{Time: parsed}
}

func TestFilterByName(t *testing.T) {
	employees := []domain.Employee{
		{ID: 1, Name: "Jane Doe"},
		{ID: 2, Name: "John Smith"},
		{ID: 3, Name: "Janet Jones"},
	}

	got := FilterByName(employees, "jane")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("FilterByName(jane) = %+v, want Jane Doe and Janet Jones", got)
	}

	got = FilterByName(employees, "SMITH")
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("filter must be case-insensitive, got %+v", got)
	}

	got = FilterByName(employees, "")
	if len(got) != 3 {
		t.Errorf("empty term must return everything, got %d items", len(got))
	}

	got = FilterByName(employees, "zzz")
	if len(got) != 0 {
		t.Errorf("no match must return empty, got %+v", got)
	}
}

func TestPartitionByFlag(t *testing.T) {
	reports := []domain.TimeReport{
		{ID: 1, IsApproved: true},
		{ID: 2, IsApproved: false},
		{ID: 3, IsApproved: true},
	}

	approved, pending := PartitionByFlag(reports, func(r domain.TimeReport) bool { return r.IsApproved })

	if len(approved) != 2 || approved[0].ID != 1 || approved[1].ID != 3 {
		t.Errorf("approved = %+v, want ids 1,3 in order", approved)
	}
	if len(pending) != 1 || pending[0].ID != 2 {
		t.Errorf("pending = %+v, want id 2", pending)
	}
}

func TestJoinEmployeeName(t *testing.T) {
	reports := []domain.TimeReport{
		{ID: 10, EmployeeID: 1},
		{ID: 11, EmployeeID: 2},
	}
	employees := []domain.Employee{
		{ID: 1, Name: "A"},
		{ID: 3, Name: "B"},
	}

	rows := JoinEmployeeName(reports, employees)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].EmployeeName != "A" {
		t.Errorf("row 0 name = %q, want %q", rows[0].EmployeeName, "A")
	}
	if rows[1].EmployeeName != UnknownEmployeeName {
		t.Errorf("row 1 name = %q, want %q", rows[1].EmployeeName, UnknownEmployeeName)
	}
}

func TestJoinEmployeeName_EmptyInputs(t *testing.T) {
	if rows := JoinEmployeeName(nil, nil); len(rows) != 0 {
		t.Errorf("nil inputs must yield no rows, got %+v", rows)
	}

	rows := JoinEmployeeName([]domain.TimeReport{{ID: 1, EmployeeID: 9}}, nil)
	if len(rows) != 1 || rows[0].EmployeeName != UnknownEmployeeName {
		t.Errorf("missing employee list must fall back to %q, got %+v", UnknownEmployeeName, rows)
	}
}

func TestComputeDurationHours(t *testing.T) {
	r := domain.TimeReport{
		StartTime: mustTS(t, "2024-03-01T09:00:00"),
		EndTime:   mustTS(t, "2024-03-01T11:30:00"),
	}
	if got := ComputeDurationHours(r); got != 2.5 {
		t.Errorf("duration = %v, want 2.5", got)
	}

	r.EndTime = mustTS(t, "2024-03-01T09:10:00")
	if got := ComputeDurationHours(r); got != 0.17 {
		t.Errorf("duration = %v, want 0.17 (rounded to two decimals)", got)
	}

	r.EndTime = r.StartTime
	if got := ComputeDurationHours(r); got != 0 {
		t.Errorf("zero-length report duration = %v, want 0", got)
	}
}
