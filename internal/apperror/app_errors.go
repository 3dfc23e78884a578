package apperror

import "errors"

var (
	ErrTimeout         = errors.New("request timed out")
	ErrNoHandler       = errors.New("no handler for address")
	ErrUnknownAction   = errors.New("wrong action")
	ErrNoAction        = errors.New("no action field in json")
	ErrUnexpectedReply = errors.New("unexpected reply type")
	ErrLoginFailed     = errors.New("could not start a session")
)
