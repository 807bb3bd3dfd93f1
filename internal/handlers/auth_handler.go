package handlers

import (
	"net/http"

	"rafiq/internal/schema"
	"rafiq/internal/service"
)

// AuthHandler serves guardian authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
	oauth       *OAuthFlow
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, oauth *OAuthFlow) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		oauth:       oauth,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req schema.RegisterGuardianRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	guardian, pair, err := h.authService.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"guardian": guardian,
		"tokens":   pair,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req schema.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	guardian, pair, err := h.authService.Login(req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"guardian": guardian,
		"tokens":   pair,
	})
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req schema.RefreshTokenRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	pair, err := h.authService.Refresh(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"tokens": pair})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so the
// client simply discards them; the endpoint exists so clients have a
// uniform flow.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, "logged out")
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	guardian, ok := GuardianFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	respondJSON(w, http.StatusOK, guardian)
}

// VerifyEmail handles GET /api/auth/verify-email?token=...
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if err := h.authService.VerifyEmail(token); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "email verified")
}
