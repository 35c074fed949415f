package router

import (
	"context"
	"net/http"

	"tunegen/internal/api/v1/handler"
	"tunegen/internal/config"
	"tunegen/internal/identity"
	"tunegen/internal/middleware"
	"tunegen/internal/musicgen"
	"tunegen/internal/repository"
	"tunegen/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	// 1. Open DB connection pool
	pool, err := pgxpool.New(context.Background(), cfg.DBConnectionString)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open DB pool")
		return nil, nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// 2. External clients
	verifier := identity.New(cfg.IdentityURL, cfg.IdentityKey)
	vendor := musicgen.New(cfg.MusicAPIBaseURL, cfg.MusicAPIKey)

	// 3. Validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Repositories & services & handlers
	userRepo := repository.NewUserRepo(pool)
	trackRepo := repository.NewTrackRepo(pool)

	genSvc := service.NewGenerationService(userRepo, vendor, logger)
	trackSvc := service.NewTrackService(trackRepo, logger)
	userSvc := service.NewUserService(userRepo)

	genHandler := handler.NewGenerationHandler(genSvc, validate, logger)
	trackHandler := handler.NewTrackHandler(trackSvc, validate, logger)
	profileHandler := handler.NewProfileHandler(userSvc, validate, logger)
	healthHandler := handler.NewHealthHandler(cfg)

	// 5. Middleware
	authMw := middleware.Auth(verifier, logger)

	var store middleware.CounterStore
	if cfg.RedisAddr != "" {
		store = middleware.NewRedisCounterStore(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("Rate limiter using Redis store")
	} else {
		store = middleware.NewMemoryCounterStore()
	}
	limiter := middleware.NewRateLimiter(store, cfg.RateLimitMax, cfg.RateLimitWindow)

	// 6. Routes
	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)
	genHandler.RegisterRoutes(mux, authMw)
	trackHandler.RegisterRoutes(mux, authMw)
	profileHandler.RegisterRoutes(mux, authMw)

	// 7. Cross-cutting chain. Any origin is allowed.
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	var h http.Handler = mux
	h = middleware.MaxBody(h)
	h = limiter.Middleware(h)
	h = c.Handler(h)
	h = middleware.SecurityHeaders(h)
	h = middleware.RequestLogger(logger)(h)

	return h, pool, nil
}
