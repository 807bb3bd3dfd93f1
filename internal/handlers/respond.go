package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"rafiq/internal/agent"
	"rafiq/internal/schema"
	"rafiq/internal/service"
	"rafiq/internal/session"
)

// envelope is the uniform JSON response shape
type envelope struct {
	Success bool                     `json:"success"`
	Data    interface{}              `json:"data,omitempty"`
	Message string                   `json:"message,omitempty"`
	Errors  []schema.ValidationError `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Message: message}); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError maps domain errors to HTTP statuses: validation
// failures carry the full violation list, illegal state transitions
// are conflicts, ownership failures are not-found.
func respondError(w http.ResponseWriter, err error) {
	var verrs schema.ValidationErrors
	if errors.As(err, &verrs) {
		writeError(w, http.StatusBadRequest, "validation failed", verrs)
		return
	}

	var stateErr *session.StateError
	if errors.As(err, &stateErr) {
		writeError(w, http.StatusConflict, stateErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, service.ErrGuardianNotFound),
		errors.Is(err, service.ErrChildNotFound),
		errors.Is(err, service.ErrLessonNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrUnknownAgent):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, service.ErrAccountDisabled),
		errors.Is(err, service.ErrChildInactive),
		errors.Is(err, service.ErrChatDisabled),
		errors.Is(err, service.ErrSubjectDisabled),
		errors.Is(err, service.ErrVoiceNotAllowed),
		errors.Is(err, service.ErrDailyLimitReached):
		writeError(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, service.ErrAgentMismatch):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, agent.ErrAgentUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		log.Printf("Internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

func writeError(w http.ResponseWriter, status int, message string, verrs []schema.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: false, Message: message, Errors: verrs}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// decodeBody parses a JSON request body into dst
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
