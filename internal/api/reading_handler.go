package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/ziwei-api/internal/api/shared"
	"github.com/phrazzld/ziwei-api/internal/platform/logger"
	"github.com/phrazzld/ziwei-api/internal/service"
)

// ReadingHandler requests and serves generated chart readings.
type ReadingHandler struct {
	readings service.ReadingService
	logger   *slog.Logger
}

// NewReadingHandler creates a new ReadingHandler.
func NewReadingHandler(readings service.ReadingService, log *slog.Logger) *ReadingHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ReadingHandler{
		readings: readings,
		logger:   log.With("component", "reading_handler"),
	}
}

// RequestReading handles POST /api/profiles/{id}/readings. The reading is
// generated in the background; the response carries it in pending state
// and clients poll GET /api/readings/{id}.
func (h *ReadingHandler) RequestReading(w http.ResponseWriter, r *http.Request) {
	userID, profileID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	reading, err := h.readings.RequestReading(r.Context(), userID, profileID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to request reading")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("reading requested",
		"reading_id", reading.ID, "profile_id", profileID)
	shared.RespondWithJSON(w, r, http.StatusAccepted, readingToResponse(reading))
}

// GetReading handles GET /api/readings/{id}.
func (h *ReadingHandler) GetReading(w http.ResponseWriter, r *http.Request) {
	userID, readingID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	reading, err := h.readings.GetUserReading(r.Context(), userID, readingID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get reading")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, readingToResponse(reading))
}
