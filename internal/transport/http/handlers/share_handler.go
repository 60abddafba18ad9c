package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	sharesvc "github.com/ivankudzin/soulmate/backend/internal/services/share"
	"github.com/ivankudzin/soulmate/backend/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/soulmate/backend/internal/transport/http/errors"
)

type ShareHandler struct {
	service *sharesvc.Service
}

func NewShareHandler(service *sharesvc.Service) *ShareHandler {
	return &ShareHandler{service: service}
}

func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SHARE_SERVICE_UNAVAILABLE", "share service is unavailable")
		return
	}

	var req dto.ShareCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	id, err := h.service.Create(r.Context(), req.Kind, req.Payload)
	if err != nil {
		switch {
		case errors.Is(err, sharesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "kind and payload are required")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to create share card")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.ShareCreateResponse{ID: id})
}

func (h *ShareHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SHARE_SERVICE_UNAVAILABLE", "share service is unavailable")
		return
	}

	id := chi.URLParam(r, "shareID")

	card, err := h.service.Fetch(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, sharesvc.ErrNotFound):
			writeNotFound(w, "SHARE_NOT_FOUND", "share card not found or expired")
		case errors.Is(err, sharesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "share id is required")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load share card")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ShareCardResponse{
		ID:        id,
		Kind:      card.Kind,
		Payload:   card.Payload,
		CreatedAt: card.CreatedAt,
	})
}
