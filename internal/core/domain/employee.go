package domain

import "errors"

// View roles. The role is a presentation gate deciding which controls render;
// it is never sent to the backend as a credential.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrEmployeeNotFound = errors.New("employee not found")
var ErrTimeReportNotFound = errors.New("time report not found")

// Employee is a transient, re-fetchable copy of a backend employee record.
// The backend assigns identifiers; the UI never mutates existing fields.
type Employee struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Role returns the display role implied by the admin flag.
func (e Employee) Role() string {
	if e.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
