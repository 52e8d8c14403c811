package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/ziwei-api/internal/api/shared"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/phrazzld/ziwei-api/internal/redact"
	"github.com/phrazzld/ziwei-api/internal/service"
	"github.com/phrazzld/ziwei-api/internal/service/auth"
	"github.com/phrazzld/ziwei-api/internal/store"
)

// domainValidationErrors have messages written for end users, so they are
// echoed back verbatim.
var domainValidationErrors = []error{
	domain.ErrInvalidEmail,
	domain.ErrEmptyEmail,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyPassword,
	domain.ErrEmptyProfileName,
	domain.ErrProfileNameTooLong,
	domain.ErrInvalidLunarDate,
	domain.ErrInvalidBirthHour,
	domain.ErrInvalidYearPillar,
}

func matchValidationError(err error) (error, bool) {
	for _, sentinel := range domainValidationErrors {
		if errors.Is(err, sentinel) {
			return sentinel, true
		}
	}
	return nil, false
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	if _, ok := matchValidationError(err); ok {
		return http.StatusBadRequest
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrReadingNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// A stored profile that cannot be charted yet
	case errors.Is(err, domain.ErrIncompleteProfile):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, ziwei.ErrInvalidInput),
		errors.Is(err, ziwei.ErrInvalidSymbol),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default, including ziwei.ErrLookupMiss: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}
	if sentinel, ok := matchValidationError(err); ok {
		return sentinel.Error()
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"

	case errors.Is(err, service.ErrProfileNotFound), errors.Is(err, store.ErrProfileNotFound):
		return "Birth profile not found"

	case errors.Is(err, service.ErrReadingNotFound), errors.Is(err, store.ErrReadingNotFound):
		return "Reading not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, domain.ErrIncompleteProfile):
		return "Birth profile has no year stem-branch yet"

	// Engine input errors describe the offending field and value only.
	case errors.Is(err, ziwei.ErrInvalidInput), errors.Is(err, ziwei.ErrInvalidSymbol):
		return redact.Error(err)

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, store.ErrInvalidEntity), errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err. fallback
// replaces the generic message for unmapped errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
