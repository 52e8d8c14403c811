package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/ziwei-api/internal/api/shared"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/phrazzld/ziwei-api/internal/service"
)

// ChartHandler serves charts computed from birth facts in the request
// body. Nothing is stored.
type ChartHandler struct {
	charts service.ChartService
	logger *slog.Logger
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(charts service.ChartService, log *slog.Logger) *ChartHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ChartHandler{
		charts: charts,
		logger: log.With("component", "chart_handler"),
	}
}

// decodeFacts reads and converts birth facts, writing a 400 on failure.
func decodeFacts(w http.ResponseWriter, r *http.Request, req *BirthFactsRequest) (ziwei.BirthFacts, bool) {
	if !decodeAndValidate(w, r, req) {
		return ziwei.BirthFacts{}, false
	}
	facts, err := req.Facts()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return ziwei.BirthFacts{}, false
	}
	return facts, true
}

// ComputeChart handles POST /api/charts.
func (h *ChartHandler) ComputeChart(w http.ResponseWriter, r *http.Request) {
	var req BirthFactsRequest
	facts, ok := decodeFacts(w, r, &req)
	if !ok {
		return
	}

	chart, err := h.charts.ComputeChart(r.Context(), facts)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute chart")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, chart)
}

// Relations handles POST /api/charts/relations.
func (h *ChartHandler) Relations(w http.ResponseWriter, r *http.Request) {
	var req RelationsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	facts, err := req.Facts()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	palace, err := ziwei.ParsePalace(req.Palace)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	chart, rel, err := h.charts.RelationsOf(r.Context(), facts, palace)
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

// Patterns handles POST /api/charts/patterns.
func (h *ChartHandler) Patterns(w http.ResponseWriter, r *http.Request) {
	var req BirthFactsRequest
	facts, ok := decodeFacts(w, r, &req)
	if !ok {
		return
	}

	chart, matches, err := h.charts.AnalyzePatterns(r.Context(), facts)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to analyze patterns")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, patternsToResponse(chart, matches))
}
