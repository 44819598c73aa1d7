package replay

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid_request")
	ErrReplayNotFound    = errors.New("replay_not_found")
	ErrReplayFileMissing = errors.New("replay_file_missing")
)
