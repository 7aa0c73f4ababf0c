package service

import "errors"

var (
	ErrEmptyUsername      = errors.New("username must not be empty")
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrInsufficientPoints = errors.New("pattern needs at least the minimum number of points")
	ErrTooManyPoints      = errors.New("pattern exceeds the maximum number of points")
	ErrMissingImage       = errors.New("reference image path must not be empty")
	ErrUnknownUser        = errors.New("unknown user")
	ErrEmptyPattern       = errors.New("no pattern points submitted")
	ErrSessionClosed      = errors.New("login session is closed")
)
