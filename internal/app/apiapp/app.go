package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ivankudzin/soulmate/backend/internal/config"
	aiinfra "github.com/ivankudzin/soulmate/backend/internal/infra/ai"
	"github.com/ivankudzin/soulmate/backend/internal/infra/httpclient"
	s3infra "github.com/ivankudzin/soulmate/backend/internal/infra/s3"
	redrepo "github.com/ivankudzin/soulmate/backend/internal/repo/redis"
	analysissvc "github.com/ivankudzin/soulmate/backend/internal/services/analysis"
	portraitsvc "github.com/ivankudzin/soulmate/backend/internal/services/portrait"
	predictionsvc "github.com/ivankudzin/soulmate/backend/internal/services/prediction"
	ratesvc "github.com/ivankudzin/soulmate/backend/internal/services/rate"
	sharesvc "github.com/ivankudzin/soulmate/backend/internal/services/share"
	statssvc "github.com/ivankudzin/soulmate/backend/internal/services/stats"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(_ context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	rateRepo := redrepo.NewRateRepo(redisClient)
	shareRepo := redrepo.NewShareRepo(redisClient)
	statsRepo := redrepo.NewStatsRepo(redisClient)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Region:    cfg.S3.Region,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, portraits will not be re-hosted", zap.Error(err))
	} else {
		s3Client = c
	}

	textGenerator, imageGenerator := buildGenerators(cfg.AI, log)

	statsService := statssvc.NewService(statsRepo)

	predictionService := predictionsvc.NewService(textGenerator, imageGenerator)
	predictionService.AttachObserver(statsService)
	if s3Client != nil {
		portraitService := portraitsvc.NewService(
			portraitsvc.NewS3Storage(s3Client, cfg.S3.Bucket),
			httpclient.New(0),
		)
		predictionService.AttachPortraitStore(portraitService)
	}

	analysisService := analysissvc.NewService(textGenerator)
	analysisService.AttachObserver(statsService)

	shareService := sharesvc.NewService(shareRepo, cfg.Share.CardTTL)
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Limits.PredictPerMinute, cfg.Limits.PredictPerDay)

	RegisterRoutes(r, Dependencies{
		PredictionService: predictionService,
		AnalysisService:   analysisService,
		ShareService:      shareService,
		StatsService:      statsService,
		RateLimiter:       rateLimiter,
		Admin:             cfg.Admin,
		Logger:            log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

// buildGenerators returns nil generators when no credentials are configured.
// The services treat nil as "serve fallback content", so the app still runs.
func buildGenerators(cfg config.AIConfig, log *zap.Logger) (predictionsvc.TextGenerator, predictionsvc.ImageGenerator) {
	if cfg.APIKey == "" {
		log.Warn("ai api key is not configured, serving fallback content only")
		return nil, nil
	}

	var text predictionsvc.TextGenerator
	if cfg.CompatibleMode {
		client, err := aiinfra.NewOpenAIClient(aiinfra.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.CompatibleURL,
			Model:   cfg.TextModel,
		})
		if err != nil {
			log.Warn("openai-compatible client init failed", zap.Error(err))
		} else {
			text = client
		}
	} else {
		client, err := aiinfra.NewTextClient(aiinfra.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.TextURL,
			Model:   cfg.TextModel,
		})
		if err != nil {
			log.Warn("text generation client init failed", zap.Error(err))
		} else {
			text = client
		}
	}

	var image predictionsvc.ImageGenerator
	imageClient, err := aiinfra.NewImageClient(aiinfra.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.ImageURL,
		Model:   cfg.ImageModel,
	}, cfg.ImageSize)
	if err != nil {
		log.Warn("image generation client init failed", zap.Error(err))
	} else {
		image = imageClient
	}

	return text, image
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
