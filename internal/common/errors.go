// Package common defines sentinel errors shared by the client data layer and
// the HTTP surface. Callers should use errors.Is to match these values; the
// message strings are user-facing.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Input errors.
	ErrorValidation = errors.New("validation error")

	// Read path errors, returned only when neither the network nor a usable
	// cache can answer.
	ErrFetchUsers = errors.New("Failed to fetch users. Please try again later.")
	ErrFetchUser  = errors.New("Failed to fetch user. Please try again later.")

	// Write path errors without a more specific transport cause.
	ErrCreateUser = errors.New("Failed to create user. Please try again.")
	ErrUpdateUser = errors.New("Failed to update user. Please try again.")
	ErrDeleteUser = errors.New("Failed to delete user. Please try again.")

	ErrRestoreUsers = errors.New("Failed to restore users. Please try again.")
)

type causeError struct {
	msg   error
	cause error
}

func (e *causeError) Error() string   { return e.msg.Error() }
func (e *causeError) Unwrap() []error { return []error{e.msg, e.cause} }

// WithCause returns an error whose message is exactly that of msg while
// errors.Is and errors.As still see cause.
func WithCause(msg, cause error) error {
	if cause == nil {
		return msg
	}
	return &causeError{msg: msg, cause: cause}
}
