package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rafiq/internal/agent"
	"rafiq/internal/models"
	"rafiq/internal/schema"
	"rafiq/internal/service"
	"rafiq/internal/session"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation errors", schema.ValidationErrors{{Field: "email", Constraint: "is invalid"}}, http.StatusBadRequest},
		{"state error", &session.StateError{Action: "pause", Status: models.SessionCompleted}, http.StatusConflict},
		{"session not found", service.ErrSessionNotFound, http.StatusNotFound},
		{"child not found", service.ErrChildNotFound, http.StatusNotFound},
		{"unknown agent", service.ErrUnknownAgent, http.StatusNotFound},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"chat disabled", service.ErrChatDisabled, http.StatusForbidden},
		{"daily limit", service.ErrDailyLimitReached, http.StatusForbidden},
		{"voice not allowed", service.ErrVoiceNotAllowed, http.StatusForbidden},
		{"agent mismatch", service.ErrAgentMismatch, http.StatusUnprocessableEntity},
		{"agent unavailable", agent.ErrAgentUnavailable, http.StatusServiceUnavailable},
		{"wrapped sentinel", errors.New("wrapped: " + service.ErrSessionNotFound.Error()), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var env envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestRespondErrorCarriesViolations(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, schema.ValidationErrors{
		{Field: "email", Constraint: "is invalid"},
		{Field: "password", Constraint: "is too short"},
	})

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "validation failed", env.Message)
	require.Len(t, env.Errors, 2)
	assert.Equal(t, "email", env.Errors[0].Field)
}

func TestRespondJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Empty(t, env.Message)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "abc", data["id"])
}
