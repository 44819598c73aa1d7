package ingest

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrSessionNotFound = errors.New("session_not_found")
)
