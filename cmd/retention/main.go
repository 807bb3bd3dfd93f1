package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"rafiq/internal/config"
	"rafiq/internal/database"
	"rafiq/internal/repository"
	"rafiq/internal/service"
)

// One-shot retention purge, for running from cron instead of relying
// on the server's background loop.
func main() {
	godotenv.Load()

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	childRepo := repository.NewChildRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	retention := service.NewRetentionService(childRepo, sessionRepo, assessmentRepo)

	removed, err := retention.PurgeExpired(time.Now().UTC())
	if err != nil {
		log.Fatalf("Retention purge failed: %v", err)
	}
	log.Printf("Retention purge finished: %d sessions removed", removed)
}
