package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError means the round trip never produced a usable answer: DNS
// failure, refused connection, timeout, or a 2xx whose body could not be
// decoded. The operation is abandoned; there is no automatic retry.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend unreachable: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means the backend answered with a non-2xx status. Body holds a
// truncated copy of the response for logging.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d %s", e.Code, http.StatusText(e.Code))
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}
