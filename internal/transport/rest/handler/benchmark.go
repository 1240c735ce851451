package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pulsecheck/internal/service"
	"pulsecheck/internal/transport/rest/middleware"
)

// BenchmarkHandler handles population statistics endpoints
type BenchmarkHandler struct {
	benchmarkSvc *service.BenchmarkService
}

// NewBenchmarkHandler creates a new benchmark handler
func NewBenchmarkHandler(benchmarkSvc *service.BenchmarkService) *BenchmarkHandler {
	return &BenchmarkHandler{benchmarkSvc: benchmarkSvc}
}

// GetStats handles GET /v1/benchmark/{version}
func (h *BenchmarkHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	version := mux.Vars(r)["version"]

	statistics, err := h.benchmarkSvc.PopulationStats(r.Context(), version)
	if errors.Is(err, service.ErrCatalogNotFound) {
		writeError(w, http.StatusNotFound, "unknown survey version")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, statistics)
}

// GetPercentile handles GET /v1/benchmark/{version}/percentile?score=N
func (h *BenchmarkHandler) GetPercentile(w http.ResponseWriter, r *http.Request) {
	version := mux.Vars(r)["version"]

	score, err := strconv.Atoi(r.URL.Query().Get("score"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "score query parameter is required")
		return
	}

	rank, ok, err := h.benchmarkSvc.PercentileForScore(r.Context(), version, score)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{"available": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"available":  true,
		"percentile": rank,
	})
}

// ExclusionRequest is the request body for flagging synthetic records
type ExclusionRequest struct {
	Exclude bool `json:"exclude"`
}

// SetExclusion handles PUT /v1/responses/{id}/exclusion (admin)
func (h *BenchmarkHandler) SetExclusion(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdminID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	responseID := mux.Vars(r)["id"]

	var req ExclusionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.benchmarkSvc.MarkExcluded(r.Context(), responseID, req.Exclude)
	if errors.Is(err, service.ErrResponseNotFound) {
		writeError(w, http.StatusNotFound, "response not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"excludeFromStats": req.Exclude})
}
