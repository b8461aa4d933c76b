package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocabquest/internal/config"
	"vocabquest/internal/database"
	"vocabquest/internal/generator"
	"vocabquest/internal/handlers"
	"vocabquest/internal/scheduler"
	"vocabquest/internal/scoring"
	"vocabquest/internal/security"
	"vocabquest/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize security primitives
	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenDuration)
	limiter := security.NewRateLimiter(10, time.Minute)

	// Initialize services
	authService := service.NewAuthService(db, tokens)
	progressService := service.NewProgressService(db)
	emailService, err := service.NewEmailService(db, progressService, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	var notifier service.Notifier
	if emailService.IsEnabled() {
		notifier = emailService
	}
	attemptService := service.NewAttemptService(db, scoring.DefaultPolicies(), notifier)

	generatorClient := generator.New(cfg.GeneratorBaseURL, cfg.GeneratorAPIKey)
	contentService := service.NewContentService(db, generatorClient, cfg.PracticeSetSize)

	// Initialize handlers
	middleware := handlers.NewMiddleware(tokens, limiter)
	authHandler := handlers.NewAuthHandler(authService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)
	unitHandler := handlers.NewUnitHandler(contentService)
	progressHandler := handlers.NewProgressHandler(progressService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /api/leaderboard/{testType}", progressHandler.Leaderboard)

	// Authenticated routes
	mux.HandleFunc("GET /api/units", middleware.RequireAuth(unitHandler.List))
	mux.HandleFunc("GET /api/units/{unitId}/questions", middleware.RequireAuth(unitHandler.Questions))
	mux.HandleFunc("GET /api/units/{unitId}/practice", middleware.RequireAuth(unitHandler.Practice))
	mux.HandleFunc("POST /api/attempts", middleware.RequireAuth(attemptHandler.Submit))
	mux.HandleFunc("GET /api/progress", middleware.RequireAuth(progressHandler.Progress))
	mux.HandleFunc("GET /api/progress/stats", middleware.RequireAuth(progressHandler.Stats))
	mux.HandleFunc("GET /api/progress/recent", middleware.RequireAuth(progressHandler.Recent))
	mux.HandleFunc("GET /api/progress/struggling", middleware.RequireAuth(progressHandler.Struggling))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start background jobs
	jobs := scheduler.New(emailService, limiter)
	jobs.Start()
	defer jobs.Stop()

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
