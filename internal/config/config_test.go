package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "", cfg.AgentBaseURL)
	assert.Equal(t, 30, cfg.SessionBudgetMinutes)
	assert.Equal(t, 30*time.Minute, cfg.AbandonAfter)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("SESSION_BUDGET_MINUTES", "45")
	t.Setenv("AGENT_BASE_URL", "http://tutor.internal:9090")

	cfg := Load()

	assert.Equal(t, "9999", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 45, cfg.SessionBudgetMinutes)
	assert.Equal(t, "http://tutor.internal:9090", cfg.AgentBaseURL)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "soon")
	t.Setenv("SESSION_BUDGET_MINUTES", "lots")

	cfg := Load()

	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 30, cfg.SessionBudgetMinutes)
}
