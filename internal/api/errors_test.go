package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/ziwei-api/internal/api"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/phrazzld/ziwei-api/internal/service"
	"github.com/phrazzld/ziwei-api/internal/service/auth"
	"github.com/phrazzld/ziwei-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired refresh token", auth.ErrExpiredRefreshToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"profile not found", service.ErrProfileNotFound, http.StatusNotFound},
		{"reading not found", service.ErrReadingNotFound, http.StatusNotFound},
		{"user not found in service error", service.NewServiceError("user", "get", store.ErrUserNotFound), http.StatusNotFound},
		{"email exists", service.NewServiceError("user", "create", store.ErrEmailExists), http.StatusConflict},
		{"incomplete profile", fmt.Errorf("%w: %w", domain.ErrIncompleteProfile, ziwei.ErrInvalidInput), http.StatusUnprocessableEntity},
		{"invalid birth facts", fmt.Errorf("%w: lunar month 13", ziwei.ErrInvalidInput), http.StatusBadRequest},
		{"invalid symbol", fmt.Errorf("%w: branch %q", ziwei.ErrInvalidSymbol, "x"), http.StatusBadRequest},
		{"invalid id", fmt.Errorf("%w: id has invalid format", domain.ErrInvalidID), http.StatusBadRequest},
		{"domain validation", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"lookup miss", fmt.Errorf("%w: bureau table", ziwei.ErrLookupMiss), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"wrong token type", auth.ErrWrongTokenType, "Invalid refresh token"},
		{"not owned", service.ErrNotOwned, "You do not own this resource"},
		{"profile not found", service.ErrProfileNotFound, "Birth profile not found"},
		{"email exists", service.NewServiceError("user", "create", store.ErrEmailExists), "Email already exists"},
		{"domain validation keeps sentinel text", fmt.Errorf("wrap: %w", domain.ErrInvalidEmail), "invalid email format"},
		{"engine input", fmt.Errorf("%w: lunar day 31", ziwei.ErrInvalidInput), "invalid birth facts: lunar day 31"},
		{
			"incomplete profile",
			fmt.Errorf("%w: %w: profile x has no year stem-branch", domain.ErrIncompleteProfile, ziwei.ErrInvalidInput),
			"Birth profile has no year stem-branch yet",
		},
		{
			"internal details hidden",
			errors.New("dial tcp db.internal.example.com:5432: connection refused"),
			"An unexpected error occurred",
		},
		{"lookup miss hidden", fmt.Errorf("%w: star table", ziwei.ErrLookupMiss), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.GetSafeErrorMessage(tt.err))
		})
	}
}
