package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when a reading cannot be produced for any general reason
	ErrGenerationFailed = errors.New("failed to generate chart reading")

	// ErrInvalidResponse is returned when the model response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during reading generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyChart is returned when a request carries no chart
	ErrEmptyChart = errors.New("reading request has no chart")
)
