package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ivankudzin/soulmate/backend/internal/config"
	analysissvc "github.com/ivankudzin/soulmate/backend/internal/services/analysis"
	predictionsvc "github.com/ivankudzin/soulmate/backend/internal/services/prediction"
	ratesvc "github.com/ivankudzin/soulmate/backend/internal/services/rate"
	sharesvc "github.com/ivankudzin/soulmate/backend/internal/services/share"
	statssvc "github.com/ivankudzin/soulmate/backend/internal/services/stats"
	"github.com/ivankudzin/soulmate/backend/internal/transport/http/handlers"
)

type Dependencies struct {
	PredictionService *predictionsvc.Service
	AnalysisService   *analysissvc.Service
	ShareService      *sharesvc.Service
	StatsService      *statssvc.Service
	RateLimiter       *ratesvc.Limiter
	Admin             config.AdminConfig
	Logger            *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	zodiacHandler := handlers.NewZodiacHandler()
	predictionHandler := handlers.NewPredictionHandler(deps.PredictionService)
	predictionHandler.AttachLimiter(deps.RateLimiter)
	analysisHandler := handlers.NewAnalysisHandler(deps.AnalysisService)
	shareHandler := handlers.NewShareHandler(deps.ShareService)
	adminStatsHandler := handlers.NewAdminStatsHandler(deps.StatsService)
	adminAuthMW := AdminAuthMiddleware(deps.Admin, deps.Logger)

	r.Get("/healthz", healthHandler.Handle)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/zodiac", zodiacHandler.Handle)
		r.Post("/predictions", predictionHandler.Handle)
		r.Post("/analyses", analysisHandler.Handle)
		r.Post("/share", shareHandler.Create)
		r.Get("/share/{shareID}", shareHandler.Get)
	})
	r.Route("/admin", func(r chi.Router) {
		r.Use(adminAuthMW)
		r.Get("/stats", adminStatsHandler.Handle)
	})
}
