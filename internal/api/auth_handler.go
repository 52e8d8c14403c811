package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/api/shared"
	"github.com/phrazzld/ziwei-api/internal/config"
	"github.com/phrazzld/ziwei-api/internal/platform/logger"
	"github.com/phrazzld/ziwei-api/internal/redact"
	"github.com/phrazzld/ziwei-api/internal/service"
	"github.com/phrazzld/ziwei-api/internal/service/auth"
	"github.com/phrazzld/ziwei-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	users            service.UserService
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	authConfig       *config.AuthConfig
	logger           *slog.Logger
	timeFunc         func() time.Time
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	users service.UserService,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	authConfig *config.AuthConfig,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		users:            users,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		authConfig:       authConfig,
		logger:           log.With("component", "auth_handler"),
		timeFunc:         time.Now,
	}
}

// WithTimeFunc replaces the clock used for expiry timestamps.
func (h *AuthHandler) WithTimeFunc(timeFunc func() time.Time) *AuthHandler {
	h.timeFunc = timeFunc
	return h
}

// tokenPair is an access and refresh token issued together.
type tokenPair struct {
	access    string
	refresh   string
	expiresAt string
}

func (h *AuthHandler) issueTokens(ctx context.Context, userID uuid.UUID) (tokenPair, error) {
	access, err := h.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return tokenPair{}, err
	}
	refresh, err := h.jwtService.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return tokenPair{}, err
	}
	lifetime := time.Duration(h.authConfig.TokenLifetimeMinutes) * time.Minute
	return tokenPair{
		access:    access,
		refresh:   refresh,
		expiresAt: h.timeFunc().Add(lifetime).UTC().Format(time.RFC3339),
	}, nil
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	tokens, err := h.issueTokens(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate tokens", "error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID:       user.ID,
		AccessToken:  tokens.access,
		RefreshToken: tokens.refresh,
		ExpiresAt:    tokens.expiresAt,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid credentials", err,
				shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid credentials", err,
			shared.WithElevatedLogLevel())
		return
	}

	tokens, err := h.issueTokens(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate tokens", "error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:       user.ID,
		AccessToken:  tokens.access,
		RefreshToken: tokens.refresh,
		ExpiresAt:    tokens.expiresAt,
	})
}

// RefreshToken handles POST /api/auth/refresh. A valid refresh token is
// exchanged for a new token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid refresh token")
		return
	}

	tokens, err := h.issueTokens(r.Context(), claims.UserID)
	if err != nil {
		log.Error("failed to generate tokens", "error", redact.Error(err), "user_id", claims.UserID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	log.Debug("refreshed token pair", "user_id", claims.UserID)
	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  tokens.access,
		RefreshToken: tokens.refresh,
		ExpiresAt:    tokens.expiresAt,
	})
}
