package handlers

import (
	"net/http"
	"strconv"

	"rafiq/internal/models"
	"rafiq/internal/schema"
	"rafiq/internal/service"
)

// SessionHandler serves the learning-session lifecycle endpoints
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// sessionView decorates a session with its derived display progress
type sessionView struct {
	*models.Session
	ProgressPercent float64 `json:"progressPercent"`
}

func (h *SessionHandler) view(s *models.Session) sessionView {
	return sessionView{Session: s, ProgressPercent: h.sessionService.ProgressPercent(s)}
}

// Start handles POST /api/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	var req schema.StartSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	sess, err := h.sessionService.Start(guardian.ID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.view(sess))
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	sess, err := h.sessionService.Get(guardian.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.view(sess))
}

// History handles GET /api/children/{id}/sessions
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	sessions, err := h.sessionService.History(guardian.ID, r.PathValue("id"), limit)
	if err != nil {
		respondError(w, err)
		return
	}

	views := make([]sessionView, 0, len(sessions))
	for _, sess := range sessions {
		views = append(views, h.view(sess))
	}
	respondJSON(w, http.StatusOK, views)
}

// SendMessage handles POST /api/sessions/{id}/messages
func (h *SessionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	var req schema.SendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	sess, reply, err := h.sessionService.SendMessage(r.Context(), guardian.ID, r.PathValue("id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session": h.view(sess),
		"reply":   reply,
	})
}

// Pause handles POST /api/sessions/{id}/pause
func (h *SessionHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sessionService.Pause)
}

// Resume handles POST /api/sessions/{id}/resume
func (h *SessionHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sessionService.Resume)
}

// End handles POST /api/sessions/{id}/end
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	sess, assessment, err := h.sessionService.End(guardian.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session":    h.view(sess),
		"assessment": assessment,
	})
}

func (h *SessionHandler) transition(w http.ResponseWriter, r *http.Request, fn func(string, string) (*models.Session, error)) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	sess, err := fn(guardian.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.view(sess))
}
