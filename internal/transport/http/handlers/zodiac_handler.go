package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/ivankudzin/soulmate/backend/internal/domain/rules"
	"github.com/ivankudzin/soulmate/backend/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/soulmate/backend/internal/transport/http/errors"
)

const birthdateLayout = "2006-01-02"

type ZodiacHandler struct{}

func NewZodiacHandler() *ZodiacHandler {
	return &ZodiacHandler{}
}

func (h *ZodiacHandler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "date query parameter is required")
		return
	}

	date, err := time.Parse(birthdateLayout, raw)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "date must be formatted as YYYY-MM-DD")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ZodiacResponse{
		Date:   date.Format(birthdateLayout),
		Zodiac: rules.SignFromBirthdate(date),
	})
}
