package store

import (
	"errors"
	"fmt"
)

// Base errors. Stores return the entity-specific variants below, which
// wrap these, so callers can match either.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrTransactionFailed = errors.New("transaction failed")
)

var (
	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)
	ErrProfileNotFound = fmt.Errorf("%w: birth profile", ErrNotFound)
	ErrReadingNotFound = fmt.Errorf("%w: reading", ErrNotFound)
	ErrTaskNotFound    = fmt.Errorf("%w: task", ErrNotFound)

	// ErrEmailExists is returned when registering an address that is
	// already taken.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError reports whether err is any entity's not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is a uniqueness violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
