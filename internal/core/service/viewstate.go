package service

import (
	"math"
	"strings"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/core/ports"
)

// UnknownEmployeeName is the fallback label when a report references an
// employee missing from the fetched collection.
const UnknownEmployeeName = "Unknown"

// FilterByName returns the employees whose display name contains term,
// case-insensitively. An empty term returns the input unchanged; order is
// preserved.
func FilterByName(employees []domain.Employee, term string) []domain.Employee {
	if term == "" {
		return employees
	}
	needle := strings.ToLower(term)
	out := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

// PartitionByFlag splits items into those satisfying pred and the rest,
// preserving relative order within each subsequence.
func PartitionByFlag[T any](items []T, pred func(T) bool) (match, rest []T) {
	for _, item := range items {
		if pred(item) {
			match = append(match, item)
		} else {
			rest = append(rest, item)
		}
	}
	return match, rest
}

// JoinEmployeeName decorates each report with the display name of its owning
// employee. Employees are indexed by id first so the join costs one lookup
// per report instead of a linear scan.
func JoinEmployeeName(reports []domain.TimeReport, employees []domain.Employee) []ports.ReportRow {
	byID := make(map[int64]string, len(employees))
	for _, e := range employees {
		byID[e.ID] = e.Name
	}
	rows := make([]ports.ReportRow, 0, len(reports))
	for _, r := range reports {
		name, ok := byID[r.EmployeeID]
		if !ok {
			name = UnknownEmployeeName
		}
		rows = append(rows, ports.ReportRow{Report: r, EmployeeName: name})
	}
	return rows
}

// ComputeDurationHours returns the report length in fractional hours rounded
// to two decimal places for display. Negative durations are a caller
// validation bug and are not handled here.
func ComputeDurationHours(r domain.TimeReport) float64 {
	h := r.EndTime.Sub(r.StartTime.Time).Hours()
	return math.Round(h*100) / 100
}
