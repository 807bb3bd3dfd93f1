package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rafiq/internal/agent"
	"rafiq/internal/config"
	"rafiq/internal/database"
	"rafiq/internal/handlers"
	"rafiq/internal/repository"
	"rafiq/internal/security"
	"rafiq/internal/service"
)

func main() {
	// Load .env if present; real env vars win
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Repositories
	guardianRepo := repository.NewGuardianRepository(db)
	childRepo := repository.NewChildRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)

	// Tutoring backend: remote service when configured, otherwise the
	// built-in scripted personas
	var tutor agent.Tutor
	if cfg.AgentBaseURL != "" {
		tutor = agent.NewClient(cfg.AgentBaseURL, cfg.AgentAPIKey, cfg.AgentTimeout)
		log.Printf("Tutoring agent backend: %s", cfg.AgentBaseURL)
	} else {
		tutor = agent.NewScripted()
		log.Println("Tutoring agent backend: built-in scripted personas")
	}

	// Services
	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	authService := service.NewAuthService(guardianRepo, tokens, emailService)
	familyService := service.NewFamilyService(guardianRepo, childRepo)
	lessonService := service.NewLessonService(lessonRepo)
	assessmentService := service.NewAssessmentService(assessmentRepo)
	badgeService := service.NewBadgeService(badgeRepo)
	sessionService := service.NewSessionService(
		sessionRepo, childRepo, lessonRepo, tutor,
		assessmentService, badgeService,
		cfg.SessionBudgetMinutes, cfg.AbandonAfter,
	)
	progressService := service.NewProgressService(childRepo, sessionRepo, badgeRepo)
	retentionService := service.NewRetentionService(childRepo, sessionRepo, assessmentRepo)

	if err := badgeService.Seed(); err != nil {
		log.Printf("Warning: Failed to seed badge catalog: %v", err)
	}

	// Handlers
	limiter := security.NewRateLimiter(20, time.Minute)
	middleware := handlers.NewMiddleware(authService, tokens, limiter)
	oauthFlow := handlers.NewOAuthFlow(authService, cfg)
	authHandler := handlers.NewAuthHandler(authService, oauthFlow)
	guardianHandler := handlers.NewGuardianHandler(familyService)
	childHandler := handlers.NewChildHandler(familyService, badgeService)
	lessonHandler := handlers.NewLessonHandler(lessonService)
	agentHandler := handlers.NewAgentHandler()
	sessionHandler := handlers.NewSessionHandler(sessionService)
	dashboardHandler := handlers.NewDashboardHandler(familyService, progressService, assessmentService, badgeService)

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/refresh", middleware.RateLimit(authHandler.Refresh))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/verify-email", authHandler.VerifyEmail)
	mux.HandleFunc("GET /api/auth/oauth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /api/auth/oauth/{provider}/callback", authHandler.OAuthCallback)

	// Guardian account
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("GET /api/guardian/profile", middleware.RequireAuth(guardianHandler.GetProfile))
	mux.HandleFunc("PATCH /api/guardian/profile", middleware.RequireAuth(guardianHandler.UpdateProfile))
	mux.HandleFunc("DELETE /api/guardian/profile", middleware.RequireAuth(guardianHandler.Deactivate))

	// Children
	mux.HandleFunc("POST /api/children", middleware.RequireAuth(childHandler.Create))
	mux.HandleFunc("GET /api/children", middleware.RequireAuth(childHandler.List))
	mux.HandleFunc("GET /api/children/{id}", middleware.RequireAuth(childHandler.Get))
	mux.HandleFunc("PATCH /api/children/{id}", middleware.RequireAuth(childHandler.Update))
	mux.HandleFunc("PATCH /api/children/{id}/controls", middleware.RequireAuth(childHandler.UpdateControls))
	mux.HandleFunc("DELETE /api/children/{id}", middleware.RequireAuth(childHandler.Delete))
	mux.HandleFunc("GET /api/children/{id}/badges", middleware.RequireAuth(childHandler.Badges))
	mux.HandleFunc("GET /api/children/{id}/sessions", middleware.RequireAuth(sessionHandler.History))
	mux.HandleFunc("GET /api/children/{id}/progress", middleware.RequireAuth(dashboardHandler.Progress))
	mux.HandleFunc("GET /api/children/{id}/assessments", middleware.RequireAuth(dashboardHandler.Assessments))

	// Lesson catalog
	mux.HandleFunc("GET /api/lessons", middleware.RequireAuth(lessonHandler.List))
	mux.HandleFunc("GET /api/lessons/{id}", middleware.RequireAuth(lessonHandler.Get))
	mux.HandleFunc("POST /api/lessons", middleware.RequireAuth(lessonHandler.Create))
	mux.HandleFunc("POST /api/lessons/{id}/publish", middleware.RequireAuth(lessonHandler.Publish))

	// Tutor agents
	mux.HandleFunc("GET /api/agents", middleware.RequireAuth(agentHandler.List))
	mux.HandleFunc("GET /api/agents/{id}", middleware.RequireAuth(agentHandler.Get))

	// Learning sessions
	mux.HandleFunc("POST /api/sessions", middleware.RequireAuth(sessionHandler.Start))
	mux.HandleFunc("GET /api/sessions/{id}", middleware.RequireAuth(sessionHandler.Get))
	mux.HandleFunc("POST /api/sessions/{id}/messages", middleware.RequireAuth(sessionHandler.SendMessage))
	mux.HandleFunc("POST /api/sessions/{id}/pause", middleware.RequireAuth(sessionHandler.Pause))
	mux.HandleFunc("POST /api/sessions/{id}/resume", middleware.RequireAuth(sessionHandler.Resume))
	mux.HandleFunc("POST /api/sessions/{id}/end", middleware.RequireAuth(sessionHandler.End))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard/overview", middleware.RequireAuth(dashboardHandler.Overview))
	mux.HandleFunc("GET /api/badges", middleware.RequireAuth(dashboardHandler.Badges))

	handler := middleware.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background reapers
	go reapAbandonedSessions(sessionService, cfg.ReaperInterval)
	go purgeExpiredData(retentionService, cfg.RetentionInterval)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// reapAbandonedSessions periodically terminates idle sessions
func reapAbandonedSessions(sessions *service.SessionService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := sessions.ReapAbandoned(time.Now().UTC()); err != nil {
			log.Printf("Session reaper failed: %v", err)
		}
	}
}

// purgeExpiredData periodically enforces per-child data retention
func purgeExpiredData(retention *service.RetentionService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := retention.PurgeExpired(time.Now().UTC()); err != nil {
			log.Printf("Retention purge failed: %v", err)
		}
	}
}
