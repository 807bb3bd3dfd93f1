package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	// Database (sqlite by default, postgres/mysql via DATABASE_TYPE + DATABASE_URL)
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	// Auth tokens
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// OAuth providers
	GoogleClientID       string
	GoogleClientSecret   string
	AppleClientID        string
	AppleClientSecret    string
	OAuthRedirectBaseURL string

	// Tutoring agent backend
	AgentBaseURL string
	AgentAPIKey  string
	AgentTimeout time.Duration

	// Email (Amazon SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	// Session lifecycle
	SessionBudgetMinutes int
	AbandonAfter         time.Duration
	ReaperInterval       time.Duration
	RetentionInterval    time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort: getEnv("PORT", "8080"),

		DatabaseType: getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./rafiq.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		AppleClientID:        getEnv("APPLE_CLIENT_ID", ""),
		AppleClientSecret:    getEnv("APPLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),

		AgentBaseURL: getEnv("AGENT_BASE_URL", ""),
		AgentAPIKey:  getEnv("AGENT_API_KEY", ""),
		AgentTimeout: getDuration("AGENT_TIMEOUT", 15*time.Second),

		AWSRegion:    getEnv("AWS_REGION", "me-central-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Rafiq"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:3000"),

		SessionBudgetMinutes: getInt("SESSION_BUDGET_MINUTES", 30),
		AbandonAfter:         getDuration("SESSION_ABANDON_AFTER", 30*time.Minute),
		ReaperInterval:       getDuration("SESSION_REAPER_INTERVAL", 5*time.Minute),
		RetentionInterval:    getDuration("RETENTION_PURGE_INTERVAL", 24*time.Hour),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt reads an integer environment variable or returns a default value
func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getDuration reads a duration environment variable or returns a default value
func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
