package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the wire format for all backend timestamps:
// ISO-8601 date and time without zone offset.
const TimeLayout = "2006-01-02T15:04:05"

// Timestamp wraps time.Time so JSON round-trips use TimeLayout rather than
// RFC 3339. The backend rejects zone-suffixed values.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses a TimeLayout string into a Timestamp.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return Timestamp{t}, nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(TimeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// String renders the wire format, used directly by templates.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// TimeReport is a transient copy of a backend time report. Reports are
// created unapproved; the approval flag is toggled by admin actions.
type TimeReport struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	StartTime  Timestamp `json:"startTime"`
	EndTime    Timestamp `json:"endTime"`
	IsApproved bool      `json:"isApproved"`
}
