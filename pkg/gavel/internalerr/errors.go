package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidJacket = errors.New("invalid jacket code")
	ErrNoTranscript  = errors.New("hearing has no transcript text")
	ErrInvalidRoster = errors.New("invalid roster data")
	ErrInvalidConfig = errors.New("invalid configuration")
)
