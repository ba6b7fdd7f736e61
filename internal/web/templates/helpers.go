package templates

import (
	"fmt"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/core/service"
)

// hoursDisplay renders a report's length as fractional hours with two
// decimals, e.g. "2.50".
func hoursDisplay(report domain.TimeReport) string {
	return fmt.Sprintf("%.2f", service.ComputeDurationHours(report))
}

// tsDisplay renders a timestamp in the backend wire format. Absent endpoints
// print the literal "null" so open-ended reports are visibly incomplete.
func tsDisplay(t domain.Timestamp) string {
	if t.IsZero() {
		return "null"
	}
	return t.String()
}
