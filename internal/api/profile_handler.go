package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/ziwei-api/internal/api/shared"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/phrazzld/ziwei-api/internal/platform/logger"
	"github.com/phrazzld/ziwei-api/internal/service"
)

// ProfileHandler serves the caller's stored birth profiles and the charts
// computed from them. Every route requires authentication.
type ProfileHandler struct {
	profiles service.ProfileService
	charts   service.ChartService
	logger   *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(
	profiles service.ProfileService,
	charts service.ChartService,
	log *slog.Logger,
) *ProfileHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ProfileHandler{
		profiles: profiles,
		charts:   charts,
		logger:   log.With("component", "profile_handler"),
	}
}

// CreateProfile handles POST /api/profiles.
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req ProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	facts, err := req.Facts()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	profile, err := h.profiles.CreateProfile(r.Context(), userID, facts)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create profile")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("profile created",
		"profile_id", profile.ID, "user_id", userID)
	shared.RespondWithJSON(w, r, http.StatusCreated, profileToResponse(profile))
}

// ListProfiles handles GET /api/profiles.
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	profiles, err := h.profiles.ListProfiles(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list profiles")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profilesToResponse(profiles))
}

// GetProfile handles GET /api/profiles/{id}.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, profileID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), userID, profileID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profileToResponse(profile))
}

// UpdateProfile handles PUT /api/profiles/{id}. The body replaces every
// fact of the profile.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, profileID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req ProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	facts, err := req.Facts()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	profile, err := h.profiles.UpdateProfile(r.Context(), userID, profileID, facts)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profileToResponse(profile))
}

// DeleteProfile handles DELETE /api/profiles/{id}.
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, profileID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.profiles.DeleteProfile(r.Context(), userID, profileID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetChart handles GET /api/profiles/{id}/chart.
func (h *ProfileHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	userID, profileID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	chart, err := h.charts.ProfileChart(r.Context(), userID, profileID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute chart")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, chart)
}

// GetRelations handles GET /api/profiles/{id}/relations/{palace}.
func (h *ProfileHandler) GetRelations(w http.ResponseWriter, r *http.Request) {
	userID, profileID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	palace, err := ziwei.ParsePalace(chi.URLParam(r, "palace"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	chart, rel, err := h.charts.ProfileRelations(r.Context(), userID, profileID, palace)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute relations")
		return
	}

	resp, err := relationsToResponse(chart, palace, rel)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute relations")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetPatterns handles GET /api/profiles/{id}/patterns.
func (h *ProfileHandler) GetPatterns(w http.ResponseWriter, r *http.Request) {
	userID, profileID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	chart, matches, err := h.charts.ProfilePatterns(r.Context(), userID, profileID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to analyze patterns")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, patternsToResponse(chart, matches))
}

// ListCharts handles GET /api/profiles/charts. Profiles that cannot be
// charted are reported per entry rather than failing the request.
func (h *ProfileHandler) ListCharts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	charts, err := h.charts.ProfileCharts(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute charts")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profileChartsToResponse(charts))
}
