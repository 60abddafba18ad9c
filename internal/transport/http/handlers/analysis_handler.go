package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	analysissvc "github.com/ivankudzin/soulmate/backend/internal/services/analysis"
	"github.com/ivankudzin/soulmate/backend/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/soulmate/backend/internal/transport/http/errors"
)

type AnalysisHandler struct {
	service *analysissvc.Service
}

func NewAnalysisHandler(service *analysissvc.Service) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

func (h *AnalysisHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "ANALYSIS_SERVICE_UNAVAILABLE", "analysis service is unavailable")
		return
	}

	var req dto.AnalysisRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "text is required")
		return
	}
	if utf8.RuneCountInString(text) > analysissvc.MaxInputRunes {
		writeBadRequest(w, "VALIDATION_ERROR", "text is too long")
		return
	}

	result := h.service.Analyze(r.Context(), text)

	httperrors.Write(w, http.StatusOK, dto.AnalysisResponse{
		PersonalityTraits: result.PersonalityTraits,
		MentalState:       result.MentalState,
		Suggestions:       result.Suggestions,
		Summary:           result.Summary,
	})
}
