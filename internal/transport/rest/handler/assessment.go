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

// AssessmentHandler handles response submission and assessment retrieval
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
	authSvc       *service.AuthService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService, authSvc *service.AuthService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentSvc: assessmentSvc,
		authSvc:       authSvc,
	}
}

// SubmitRequest is the request body for submitting a completed questionnaire
type SubmitRequest struct {
	SurveyVersion string          `json:"surveyVersion"`
	Answers       model.AnswerSet `json:"answers"`
}

// SubmitResponse wraps the assessment with a token the respondent can use to
// fetch it again later
type SubmitResponse struct {
	Assessment *model.Assessment `json:"assessment"`
	Token      string            `json:"token"`
}

// Submit handles POST /v1/responses
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SurveyVersion == "" {
		writeError(w, http.StatusBadRequest, "surveyVersion is required")
		return
	}

	assessment, err := h.assessmentSvc.Submit(r.Context(), req.SurveyVersion, req.Answers)
	var valErr *scoring.ValidationError
	var cfgErr *scoring.ConfigurationError
	switch {
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":      valErr.Error(),
			"missingIds": valErr.MissingIDs,
			"extraIds":   valErr.ExtraIDs,
		})
		return
	case errors.As(err, &cfgErr):
		// Corrupt catalog deployment; nothing the caller can fix.
		writeError(w, http.StatusInternalServerError, cfgErr.Error())
		return
	case errors.Is(err, service.ErrCatalogNotFound):
		writeError(w, http.StatusNotFound, "unknown survey version")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := h.authSvc.GenerateRespondentToken(assessment.ResponseID, assessment.SurveyVersion)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, SubmitResponse{
		Assessment: assessment,
		Token:      token,
	})
}

// Get handles GET /v1/responses/{id}/assessment. Respondents may only fetch
// the response their token was issued for; admins may fetch any.
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	responseID := mux.Vars(r)["id"]

	if middleware.GetAdminID(r.Context()) == "" && middleware.GetResponseID(r.Context()) != responseID {
		writeError(w, http.StatusForbidden, "token not valid for this response")
		return
	}

	assessment, err := h.assessmentSvc.Get(r.Context(), responseID)
	if errors.Is(err, service.ErrResponseNotFound) {
		writeError(w, http.StatusNotFound, "response not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}
