package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"movie-database-service/internal/auth"
	"movie-database-service/internal/config"
	"movie-database-service/internal/database"
	"movie-database-service/internal/handler"
	"movie-database-service/internal/middleware"
	"movie-database-service/internal/repository"
	"movie-database-service/internal/service"
	"movie-database-service/internal/tmdb"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx := context.Background()

	// Connect to PostgreSQL
	db, err := database.NewPostgres(ctx, cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	var counter middleware.Counter
	rdb, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without rate limiting", "error", err)
	} else {
		defer rdb.Close()
		counter = rdb
	}

	// Initialize layers
	titleRepo := repository.NewTitleRepository(db)
	individualRepo := repository.NewIndividualRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	userRepo := repository.NewUserRepository(db)
	genreRepo := repository.NewGenreRepository(db)

	featured := service.NewFeaturedSelector(titleRepo, nil)
	titleSvc := service.NewTitleService(titleRepo, ratingRepo, featured)
	individualSvc := service.NewIndividualService(individualRepo, titleRepo)
	ratingSvc := service.NewRatingService(ratingRepo)
	genreSvc := service.NewGenreService(genreRepo, titleRepo)

	tokens, err := auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		slog.Error("failed to create token issuer", "error", err)
		os.Exit(1)
	}
	authSvc := auth.NewService(userRepo, auth.NewHasher())

	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL)
	if cfg.TMDB.APIKey == "" {
		slog.Warn("TMDB_API_KEY not set, TMDB routes will return errors")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Database Service",
		ServerHeader: "Movie-Database-Service",
		ErrorHandler: handler.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// API routes
	limiter := middleware.NewRateLimiter(counter, "auth", cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds)
	handler.RegisterRoutes(app.Group("/api/v2"), handler.Handlers{
		Titles:      handler.NewTitleHandler(titleSvc),
		Genres:      handler.NewGenreHandler(genreSvc),
		Individuals: handler.NewIndividualHandler(individualSvc),
		Auth:        handler.NewAuthHandler(authSvc, tokens),
		Ratings:     handler.NewRatingHandler(ratingSvc),
		TMDB:        handler.NewTMDBHandler(tmdbClient),
	}, middleware.RequireAuth(tokens), limiter.Handler())

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down movie database service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie database service", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
