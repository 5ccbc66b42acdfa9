package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrServer        = errors.New("server error")
)

// APIError carries the HTTP status and message of a failed call. It
// unwraps to one of the sentinel errors above.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (HTTP %d)", e.kind, e.Status)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error { return e.kind }
