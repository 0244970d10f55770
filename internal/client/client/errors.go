package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable is returned when the remote API could not be reached at all.
var ErrUnavailable = errors.New("Network error. Please check your connection.")

// StatusError is a non-2xx answer from the remote API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func newStatusError(code int, message string) *StatusError {
	if message == "" {
		message = fmt.Sprintf("Server error: %d", code)
	}
	return &StatusError{Code: code, Message: message}
}

// IsServerError reports whether err carries a 5xx status.
func IsServerError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= http.StatusInternalServerError
}

// IsNotFound reports whether err carries a 404 status.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}
