package pipeline

import "errors"

var (
	ErrNoTextBody   = errors.New("email has no text body")
	ErrInvalidAlarm = errors.New("email body is not a valid alarm")
)
