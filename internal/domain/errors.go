package domain

import "errors"

// Sentinels shared by the user, profile and reading entities. Callers wrap
// them with detail and test with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrInvalidID  = errors.New("invalid ID")

	// ErrUnauthorized marks access to an entity owned by another user.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrIncompleteProfile is returned when a birth profile lacks the
	// facts required to compute a chart.
	ErrIncompleteProfile = errors.New("birth profile incomplete")
)
