package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ivankudzin/soulmate/backend/internal/domain/model"
	"github.com/ivankudzin/soulmate/backend/internal/domain/rules"
	predictionsvc "github.com/ivankudzin/soulmate/backend/internal/services/prediction"
	ratesvc "github.com/ivankudzin/soulmate/backend/internal/services/rate"
	"github.com/ivankudzin/soulmate/backend/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/soulmate/backend/internal/transport/http/errors"
)

type PredictionHandler struct {
	service *predictionsvc.Service
	limiter *ratesvc.Limiter
}

func NewPredictionHandler(service *predictionsvc.Service) *PredictionHandler {
	return &PredictionHandler{service: service}
}

// AttachLimiter enables per-IP request limits. Without it every request is
// allowed through.
func (h *PredictionHandler) AttachLimiter(limiter *ratesvc.Limiter) {
	h.limiter = limiter
}

func (h *PredictionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PREDICTION_SERVICE_UNAVAILABLE", "prediction service is unavailable")
		return
	}

	if h.limiter != nil {
		retryAfter, allowed, err := h.limiter.AllowPrediction(r.Context(), clientIPFromRequest(r))
		switch {
		case err != nil:
			// Limiter outages never block predictions; the request passes.
			log.Printf("warning: rate limiter check failed, allowing request: %v", err)
		case !allowed:
			w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
				Code:          "RATE_LIMITED",
				Message:       "too many prediction requests, try again later",
				RetryAfterSec: retryAfter,
			})
			return
		}
	}

	var req dto.PredictionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	profile, ok := profileFromRequest(w, req)
	if !ok {
		return
	}

	result := h.service.Predict(r.Context(), profile)

	httperrors.Write(w, http.StatusOK, dto.PredictionResponse{
		Title:            result.Title,
		Description:      result.Description,
		Tip:              result.Tip,
		ImageDescription: result.ImageDescription,
		ImageURL:         result.ImageURL,
		Radar:            result.Radar,
		Zodiac:           profile.Zodiac,
	})
}

func profileFromRequest(w http.ResponseWriter, req dto.PredictionRequest) (model.Profile, bool) {
	if req.Gender != model.GenderMale && req.Gender != model.GenderFemale {
		writeBadRequest(w, "VALIDATION_ERROR", "gender must be 男 or 女")
		return model.Profile{}, false
	}

	birthdate, err := time.Parse(birthdateLayout, req.Birthdate)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "birthdate must be formatted as YYYY-MM-DD")
		return model.Profile{}, false
	}

	if req.Introvert < 0 || req.Introvert > 100 || req.Emotional < 0 || req.Emotional > 100 {
		writeBadRequest(w, "VALIDATION_ERROR", "personality sliders must be between 0 and 100")
		return model.Profile{}, false
	}

	keywords := rules.NormalizeKeywords(req.Keywords)
	if len(keywords) == 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "at least one known keyword is required")
		return model.Profile{}, false
	}

	return model.Profile{
		Gender:    req.Gender,
		Birthdate: birthdate,
		Zodiac:    rules.SignFromBirthdate(birthdate),
		Personality: model.Personality{
			Introvert: req.Introvert,
			Emotional: req.Emotional,
		},
		Keywords: keywords,
	}, true
}
