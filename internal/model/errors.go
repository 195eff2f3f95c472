package model

import "errors"

// Common errors used across the application. Call sites wrap these with
// detail via fmt.Errorf("...: %w", ...); transports match with errors.Is.
var (
	// ErrInvalidInput covers malformed arguments: an empty or over-long
	// display name, an out-of-range difficulty, a leaderboard limit
	// outside [1,100].
	ErrInvalidInput = errors.New("invalid input")

	// ErrUserNotFound means the operation requires a registered identity
	// that does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrOutOfRange means a pagination offset lies beyond the available
	// history.
	ErrOutOfRange = errors.New("offset out of range")

	// ErrGameNotFound means no game with the given ID has been recorded.
	ErrGameNotFound = errors.New("game not found")
)
