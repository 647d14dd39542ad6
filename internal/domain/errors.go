package domain

import "errors"

// Sentinel errors for the HTTP surface and the reconciliation loop. Callers
// match with errors.Is; handlers map them to status codes without exposing
// wrapped detail to the client.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrUpstreamFailure    = errors.New("upstream failure")
)
