package gemini

import "errors"

// ErrNilLogger is returned when the generator is constructed without a logger.
var ErrNilLogger = errors.New("logger cannot be nil")
