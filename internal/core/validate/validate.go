// Package validate holds the pure form-validation predicates. They run before
// any backend call to give immediate feedback; the backend remains the
// authority, so a rejected server-side write must still surface to the user.
package validate

import (
	"regexp"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
)

// Fixed rejection messages shown next to the offending field.
const (
	MsgInvalidName   = "Name must contain at least two names, using only letters, hyphens, and apostrophes."
	MsgInvalidEmail  = "Invalid email: must include '@' and a domain (e.g., example@domain.com)."
	MsgTimesRequired = "Please select both start and end times."
	MsgTimeOrder     = "End time must not precede start time."
)

// FieldError is a recoverable, user-correctable validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Two or more space-separated tokens, each made of letters (any script,
// accents included), hyphens, and straight or typographic apostrophes.
var nameRe = regexp.MustCompile(`^[\p{L}'’-]+( [\p{L}'’-]+)+$`)

// local@domain.tld: no whitespace, exactly one "@", a dot in the domain.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Name accepts full display names such as "Jane Doe" or "Mary-Jane O'Brien".
func Name(s string) error {
	if !nameRe.MatchString(s) {
		return &FieldError{Field: "name", Message: MsgInvalidName}
	}
	return nil
}

// Email accepts canonical local@domain.tld addresses.
func Email(s string) error {
	if !emailRe.MatchString(s) {
		return &FieldError{Field: "email", Message: MsgInvalidEmail}
	}
	return nil
}

// TimeRange rejects absent endpoints and ranges where end precedes start.
// end == start is allowed (a zero-hour report). The caller supplies zero
// values for fields the user left empty.
func TimeRange(start, end domain.Timestamp) error {
	if start.IsZero() || end.IsZero() {
		return &FieldError{Field: "time", Message: MsgTimesRequired}
	}
	if end.Before(start.Time) {
		return &FieldError{Field: "time", Message: MsgTimeOrder}
	}
	return nil
}
