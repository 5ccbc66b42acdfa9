// Package client talks to the TukTask HTTP API on behalf of the CLI.
//
// Server responses are mapped onto the sentinel errors in errors.go so the
// CLI can react without parsing messages:
//
//	400 -> ErrBadRequest      409 -> ErrAlreadyExists
//	401 -> ErrUnauthorized    transport failure -> ErrUnavailable
//
// The server's message, when present, is kept in *APIError.
package client
