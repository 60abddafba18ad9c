package handlers

import (
	"net/http"
	"strings"
	"time"

	statssvc "github.com/ivankudzin/soulmate/backend/internal/services/stats"
	"github.com/ivankudzin/soulmate/backend/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/soulmate/backend/internal/transport/http/errors"
)

type AdminStatsHandler struct {
	service *statssvc.Service
	now     func() time.Time
}

func NewAdminStatsHandler(service *statssvc.Service) *AdminStatsHandler {
	return &AdminStatsHandler{
		service: service,
		now:     time.Now,
	}
}

func (h *AdminStatsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "STATS_SERVICE_UNAVAILABLE", "stats service is unavailable")
		return
	}

	day := h.now().UTC()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := time.Parse(birthdateLayout, raw)
		if err != nil {
			writeBadRequest(w, "VALIDATION_ERROR", "date must be formatted as YYYY-MM-DD")
			return
		}
		day = parsed
	}

	counts, err := h.service.DailySnapshot(r.Context(), day)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load daily stats")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AdminStatsResponse{
		Date:   day.Format(birthdateLayout),
		Counts: counts,
	})
}
