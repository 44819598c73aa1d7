package session

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid_request")
	ErrParticipantNotFound = errors.New("participant_not_found")
	ErrSessionNotFound     = errors.New("session_not_found")
	ErrSessionEnded        = errors.New("session_already_ended")
)
