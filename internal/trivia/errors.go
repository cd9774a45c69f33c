package trivia

import "errors"

// Request validation errors, raised before any network call is attempted.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidToken      = errors.New("invalid token")
)
