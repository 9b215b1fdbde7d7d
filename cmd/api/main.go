package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/medmarket/backend/internal/adapters/cache"
	"github.com/medmarket/backend/internal/adapters/database"
	"github.com/medmarket/backend/internal/adapters/events"
	"github.com/medmarket/backend/internal/adapters/search"
	"github.com/medmarket/backend/internal/api/handlers"
	"github.com/medmarket/backend/internal/api/middleware"
	"github.com/medmarket/backend/internal/api/routes"
	"github.com/medmarket/backend/internal/application/services"
	"github.com/medmarket/backend/internal/domain/providers"
	"github.com/medmarket/backend/internal/domain/repositories"
	"github.com/medmarket/backend/internal/infrastructure/clients/postgres"
	"github.com/medmarket/backend/internal/infrastructure/clients/redis"
	"github.com/medmarket/backend/internal/infrastructure/clients/typesense"
	"github.com/medmarket/backend/internal/infrastructure/observability"
	"github.com/medmarket/backend/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client. The application degrades gracefully without
	// it: no cache, no real-time streams.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Initialize Typesense client; suggestions are disabled without it
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Typesense client, suggestions disabled")
		typesenseClient = nil
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
	}

	// Initialize adapters
	userAdapter := database.NewUserAdapter(pgClient)
	baseAdAdapter := database.NewAdAdapter(pgClient)

	var adAdapter repositories.AdRepository
	if cacheProvider != nil {
		adAdapter = database.NewCachedAdAdapter(baseAdAdapter, cacheProvider)
	} else {
		adAdapter = baseAdAdapter
	}

	feedbackAdapter := database.NewFeedbackAdapter(pgClient)
	appointmentAdapter := database.NewAppointmentAdapter(pgClient)
	favoriteAdapter := database.NewFavoriteAdapter(pgClient)
	cityAdapter := database.NewCityAdapter(pgClient)
	categoryAdapter := database.NewCategoryAdapter(pgClient)
	ratingAdapter := database.NewRatingAdapter(pgClient)

	var searchRepo repositories.DoctorSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	// Initialize services
	ratingService := services.NewRatingService(feedbackAdapter, ratingAdapter, userAdapter, searchRepo, eventBus).
		WithMetrics(metrics)
	feedbackService := services.NewFeedbackService(feedbackAdapter, adAdapter, userAdapter, ratingService)
	doctorService := services.NewDoctorService(userAdapter, adAdapter, cityAdapter, categoryAdapter, searchRepo)
	favoriteService := services.NewFavoriteService(favoriteAdapter, adAdapter, userAdapter)
	appointmentService := services.NewAppointmentService(appointmentAdapter, adAdapter, userAdapter, cfg.Policy.AppointmentRequireOwner)
	profileService := services.NewProfileService(userAdapter, cityAdapter)

	// Cache invalidation keeps cached ads consistent with rating fanout
	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation service")
		}
	}

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	// Auth middleware; discovery and streams stay public
	var auth *middleware.AuthMiddleware
	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set, authentication disabled")
	} else {
		auth = middleware.NewAuthMiddleware(
			cfg.Auth.JWTSecret,
			[]string{"/health"},
			[]string{"/api/doctors", "/api/stream/"},
		)
	}

	// Set up router
	router := routes.NewRouter(
		profileHandler,
		doctorHandler,
		feedbackHandler,
		favoriteHandler,
		appointmentHandler,
		sseHandler,
		auth,
		metrics,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("error during server shutdown")
	}

	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
