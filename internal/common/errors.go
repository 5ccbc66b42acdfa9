// Package common defines shared constants and sentinel errors used across
// the TukTask server, migration job and CLI. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid, malformed or revoked token).
	ErrInvalidToken = errors.New("invalid token")
)
