package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"pulsecheck/internal/model"
	"pulsecheck/internal/scoring"
	"pulsecheck/internal/service"
	"pulsecheck/internal/transport/rest/middleware"
)

// CatalogHandler handles question catalog endpoints
type CatalogHandler struct {
	catalogSvc *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogSvc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// GetLatest handles GET /v1/catalog
func (h *CatalogHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalogSvc.GetLatest(r.Context())
	if errors.Is(err, service.ErrCatalogNotFound) {
		writeError(w, http.StatusNotFound, "no catalog published")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, catalog)
}

// GetVersion handles GET /v1/catalog/{version}
func (h *CatalogHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	version := mux.Vars(r)["version"]

	catalog, err := h.catalogSvc.GetVersion(r.Context(), version)
	if errors.Is(err, service.ErrCatalogNotFound) {
		writeError(w, http.StatusNotFound, "catalog version not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, catalog)
}

// Publish handles POST /v1/catalog (admin)
func (h *CatalogHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdminID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var catalog model.Catalog
	if err := json.NewDecoder(r.Body).Decode(&catalog); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.catalogSvc.Publish(r.Context(), &catalog)
	var cfgErr *scoring.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		writeError(w, http.StatusUnprocessableEntity, cfgErr.Error())
	case errors.Is(err, service.ErrVersionAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusCreated, catalog)
	}
}
