package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/ziwei-api/internal/store"
)

// Service sentinel errors. The API layer maps them to status codes; any
// other error reaching a handler is a 500.
var (
	// ErrNotOwned indicates a resource belongs to another user.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrProfileNotFound indicates the birth profile does not exist.
	ErrProfileNotFound = errors.New("birth profile not found")

	// ErrReadingNotFound indicates the reading does not exist.
	ErrReadingNotFound = errors.New("reading not found")
)

// ServiceError wraps an unexpected failure with the service and operation
// it happened in.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
	}
	return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{Service: service, Op: op, Err: err}
}

// wrapError maps store not-found errors to service sentinels and wraps
// everything else. Sentinels pass through unwrapped.
func wrapError(service, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotOwned), errors.Is(err, ErrProfileNotFound), errors.Is(err, ErrReadingNotFound):
		return err
	case errors.Is(err, store.ErrProfileNotFound):
		return ErrProfileNotFound
	case errors.Is(err, store.ErrReadingNotFound):
		return ErrReadingNotFound
	default:
		return NewServiceError(service, op, err)
	}
}
