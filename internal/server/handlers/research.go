// internal/server/handlers/research.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"nichescout/internal/domain/market"
	"nichescout/internal/service/research"
)

// ResearchHandler handles market research HTTP requests
type ResearchHandler struct {
	researcher market.Researcher
	reports    research.ReportStore
}

// NewResearchHandler creates a new research handler
func NewResearchHandler(researcher market.Researcher, reports research.ReportStore) *ResearchHandler {
	return &ResearchHandler{
		researcher: researcher,
		reports:    reports,
	}
}

// RunResearch runs one niche identification pass and returns the report
func (h *ResearchHandler) RunResearch(w http.ResponseWriter, r *http.Request) {
	report, err := h.researcher.IdentifyNiche(r.Context())
	if err != nil {
		var collErr *market.CollectionError
		var trendErr *market.TrendAnalysisError

		switch {
		case errors.Is(err, market.ErrNoViableNiche):
			respondWithError(w, http.StatusNotFound, "No viable niche identified", nil)
		case errors.As(err, &collErr):
			respondWithError(w, http.StatusBadGateway, "Market data collection failed", err)
		case errors.As(err, &trendErr):
			respondWithError(w, http.StatusBadGateway, "Trend analysis failed", err)
		default:
			respondWithError(w, http.StatusInternalServerError, "Research failed", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// ListReports returns stored niche reports
func (h *ResearchHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	filter := market.ReportFilter{
		Niche: r.URL.Query().Get("niche"),
	}

	if minStr := r.URL.Query().Get("min_potential"); minStr != "" {
		minPotential, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid min_potential", err)
			return
		}
		filter.MinPotential = minPotential
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		filter.Limit = limit
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid offset", err)
			return
		}
		filter.Offset = offset
	}

	reports, err := h.reports.ListReports(r.Context(), filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list reports", err)
		return
	}

	respondWithJSON(w, http.StatusOK, reports)
}

// GetReport returns a stored niche report by ID
func (h *ResearchHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing report ID", nil)
		return
	}

	report, err := h.reports.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, market.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Report not found", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get report", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}
	if err != nil {
		response["detail"] = err.Error()
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
