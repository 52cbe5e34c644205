// Package main is the entrypoint for the CarHub API server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/carhub/carhub/internal/config"
	"github.com/carhub/carhub/internal/handler"
	"github.com/carhub/carhub/internal/metrics"
	"github.com/carhub/carhub/internal/middleware"
	"github.com/carhub/carhub/internal/repository"
	"github.com/carhub/carhub/internal/server"
	"github.com/carhub/carhub/internal/service"
	"github.com/carhub/carhub/internal/storage"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize document store
	repo, err := repository.New(ctx, cfg.MongoURL, cfg.MongoDatabase)
	if err != nil {
		logger.Error("failed to connect to document store", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to document store", "database", cfg.MongoDatabase)

	// Initialize image host
	images, err := storage.New(ctx, storage.Options{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to configure image host", "error", err)
		os.Exit(1)
	}

	// Initialize services
	recorder := metrics.NewInMemory()
	authService := service.NewAuthService(repo, []byte(cfg.JWTSecret), recorder)
	listingService := service.NewListingService(repo, images, logger, recorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo)
	metricsHandler := handler.NewMetricsHandler(recorder)
	authHandler := handler.NewAuthHandler(authService, logger)
	listingHandler := handler.NewListingHandler(listingService, logger, cfg.MaxUploadSize)

	// Setup router
	r := setupRouter(h, healthHandler, metricsHandler, authHandler, listingHandler, recorder, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("mongodb", repo.Close)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	authHandler *handler.AuthHandler,
	listingHandler *handler.ListingHandler,
	recorder metrics.Recorder,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: cfg.IsDevelopment(),
		// Multipart image uploads are the largest legitimate bodies.
		MaxRequestBodySize: cfg.MaxUploadSize,
	}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health and observability endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	// Root info endpoint
	r.Get("/", h.Hello)

	authCfg := middleware.AuthConfig{
		Logger:  logger,
		Secret:  []byte(cfg.JWTSecret),
		Metrics: recorder,
	}

	// Credential endpoints (no auth required)
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})

	// Listing endpoints
	r.Route("/api/cars", func(r chi.Router) {
		// Public browse endpoint
		r.Get("/allcars", listingHandler.AllCars)

		// Owner-scoped endpoints behind token verification
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Post("/createcar", listingHandler.Create)
			r.Get("/usercars", listingHandler.UserCars)
			r.Get("/search", listingHandler.Search)
			r.Get("/car/{id}", listingHandler.Get)
			r.Put("/car/{id}", listingHandler.Update)
			r.Delete("/car/{id}", listingHandler.Delete)
			r.Delete("/car/{id}/image", listingHandler.DeleteImage)
			r.Post("/car/{id}/upload-images", listingHandler.UploadImages)
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
